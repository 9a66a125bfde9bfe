package signature

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashData hashes data with SHA-256.
func HashData(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// HashDataHex hashes data with SHA-256 and returns the canonical
// lowercase hex form.
func HashDataHex(data []byte) string {
	return hex.EncodeToString(HashData(data))
}
