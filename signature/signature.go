package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
)

// SignData hashes the message with SHA-256 and signs the digest with
// PKCS#1 v1.5.
func SignData(privateKey *rsa.PrivateKey, data []byte) ([]byte, error) {
	digest := sha256.Sum256(data)
	return rsa.SignPKCS1v15(rand.Reader, privateKey, crypto.SHA256, digest[:])
}

// VerifyData verifies a PKCS#1 v1.5 signature over the SHA-256 digest
// of the message.
func VerifyData(publicKey *rsa.PublicKey, data, sig []byte) error {
	digest := sha256.Sum256(data)
	return rsa.VerifyPKCS1v15(publicKey, crypto.SHA256, digest[:], sig)
}
