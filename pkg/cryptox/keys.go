package cryptox

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// Signer key algorithms, named after their JOSE "alg" values.
const (
	AlgorithmEdDSA = "EdDSA"
	AlgorithmES256 = "ES256"
)

// GenerateSigningKey generates a private key for alg and returns it PEM
// encoded (PKCS8). RSA is not offered.
func GenerateSigningKey(alg string) ([]byte, error) {
	switch alg {
	case AlgorithmEdDSA:
		return GenerateEd25519Key()
	case AlgorithmES256:
		return GenerateES256Key()
	default:
		return nil, fmt.Errorf("cryptox: unsupported signing algorithm %q", alg)
	}
}

// GenerateEd25519Key generates a new Ed25519 private key in PKCS8 PEM.
func GenerateEd25519Key() ([]byte, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate Ed25519 key: %w", err)
	}
	return marshalPKCS8PEM(privateKey)
}

// GenerateES256Key generates a new ECDSA P-256 private key in PKCS8 PEM.
func GenerateES256Key() ([]byte, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate ECDSA key: %w", err)
	}
	return marshalPKCS8PEM(privateKey)
}

func marshalPKCS8PEM(key any) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}
