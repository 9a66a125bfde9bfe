package signature

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// defaultKeyBits is the RSA modulus size for generated keypairs.
const defaultKeyBits = 2048

// GenerateKey generates a new signing keypair.
func GenerateKey() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, defaultKeyBits)
}

// MarshalPrivateKeyPEM encodes a private key to PEM format.
func MarshalPrivateKeyPEM(key *rsa.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

// ParsePrivateKeyPEM decodes a PEM-encoded private key. Malformed key
// material is an error, so holders can fail fast at construction time.
func ParsePrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no pem block in key material")
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("cannot parse private key: %w", err)
	}

	return key, nil
}

// MarshalPublicKeyPEM encodes a public key to PEM format.
func MarshalPublicKeyPEM(pkey *rsa.PublicKey) ([]byte, error) {
	data, err := x509.MarshalPKIXPublicKey(pkey)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: data,
	}), nil
}

// ParsePublicKeyPEM decodes a PEM-encoded public key.
func ParsePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no pem block in key material")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("cannot parse public key: %w", err)
	}

	pkey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("expected rsa public key, got %T", parsed)
	}

	return pkey, nil
}
