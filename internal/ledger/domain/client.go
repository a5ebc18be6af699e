package domain

import (
	"time"

	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
)

// Client is a registered tenant.
type Client struct {
	ID         string
	SecretHash string // argon2id PHC string, never the secret itself
	Signer     Signer
	DataStore  DataStore
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Signer is the per-tenant key pair minted at registration.
type Signer struct {
	Algorithm           string   // EdDSA or ES256
	KeyID               string   // kid of PublicKey
	PublicKey           jwtx.JWK // public half, safe to hand out
	PrivateKeyEncrypted []byte   // AES-256-GCM sealed PKCS8 PEM, tenant id as AAD
}
