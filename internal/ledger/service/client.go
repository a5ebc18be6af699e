package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tabledger/internal/ledger/domain"
	"github.com/aussiebroadwan/tabledger/internal/ledger/store"
	"github.com/aussiebroadwan/tabledger/pkg/cryptox"
	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
	"github.com/aussiebroadwan/tabledger/pkg/slogx"
	"github.com/google/uuid"
)

type ClientService struct {
	Store           store.Store
	Sealer          *cryptox.KeySealer
	SignerAlgorithm string // defaults to EdDSA
	StoreTimeout    time.Duration
}

// RegisterClientInput is a registration request after transport decoding.
type RegisterClientInput struct {
	ID                  string
	Secret              *string // generated when nil
	DataStore           domain.DataStore
	AllowSelfSignedData bool
}

// PublicSigner is a tenant signer without its private half.
type PublicSigner struct {
	Algorithm string
	KeyID     string
	PublicKey jwtx.JWK
}

// ClientView is a client as shown to operators: no secret hash and no
// private key material.
type ClientView struct {
	ID        string
	Signer    PublicSigner
	DataStore domain.DataStore
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegisteredClient is the one response that ever carries the plaintext secret.
type RegisteredClient struct {
	ClientView
	Secret string
}

// Register creates a tenant. Exactly one of any number of concurrent calls
// for the same id succeeds; the rest get ErrAlreadyExists. The insert is the
// only uniqueness check and it is never retried.
func (s *ClientService) Register(ctx context.Context, in RegisterClientInput) (RegisteredClient, error) {
	l := slogx.FromContext(ctx)

	if err := validIdentifier("id", in.ID); err != nil {
		return RegisteredClient{}, err
	}
	if in.Secret != nil && (*in.Secret == "" || len(*in.Secret) > cryptox.MaxSecretLength) {
		return RegisteredClient{}, invalid("secret must be between 1 and %d bytes", cryptox.MaxSecretLength)
	}
	if err := in.DataStore.Validate(); err != nil {
		return RegisteredClient{}, invalid("dataStore: %v", err)
	}

	signer, err := s.newSigner(in.ID)
	if err != nil {
		l.Error("failed to generate client signer", "error", err)
		return RegisteredClient{}, err
	}

	ds := in.DataStore
	if in.AllowSelfSignedData {
		ds.Entity = ds.Entity.WithSigningKey(signer.PublicKey)
		ds.Policy = ds.Policy.WithSigningKey(signer.PublicKey)
	}

	var secret string
	if in.Secret != nil {
		secret = *in.Secret
	} else if secret, err = cryptox.GenerateSecret(); err != nil {
		l.Error("failed to generate client secret", "error", err)
		return RegisteredClient{}, err
	}

	secretHash, err := cryptox.HashSecret(secret)
	if err != nil {
		l.Error("failed to hash client secret", "error", err)
		return RegisteredClient{}, err
	}

	sctx, cancel := withStoreTimeout(ctx, s.StoreTimeout)
	defer cancel()

	created, err := s.Store.Clients().CreateClient(sctx, domain.Client{
		ID:         in.ID,
		SecretHash: secretHash,
		Signer:     signer,
		DataStore:  ds,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Info("client registration rejected, id taken", "client_id", in.ID)
			return RegisteredClient{}, ErrAlreadyExists
		}
		l.Error("failed to create client", "error", err, "client_id", in.ID)
		return RegisteredClient{}, unavailable(err)
	}

	l.Info("client registered",
		"client_id", created.ID,
		"signer_alg", created.Signer.Algorithm,
		"signer_kid", created.Signer.KeyID,
		"self_signed_data", in.AllowSelfSignedData,
		"generated_secret", in.Secret == nil,
	)
	return RegisteredClient{ClientView: viewOf(created), Secret: secret}, nil
}

// GetClient returns the operator view of a tenant.
func (s *ClientService) GetClient(ctx context.Context, id string) (ClientView, error) {
	sctx, cancel := withStoreTimeout(ctx, s.StoreTimeout)
	defer cancel()

	c, err := s.Store.Clients().GetClientByID(sctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ClientView{}, ErrClientNotFound
		}
		return ClientView{}, unavailable(err)
	}
	return viewOf(c), nil
}

// VerifySecret reports whether secret belongs to tenant id. Unknown ids and
// wrong secrets both give (false, nil) after the same amount of hashing.
// An error means the store could not be asked.
func (s *ClientService) VerifySecret(ctx context.Context, id, secret string) (bool, error) {
	if secret == "" || len(secret) > cryptox.MaxSecretLength {
		return false, nil
	}

	sctx, cancel := withStoreTimeout(ctx, s.StoreTimeout)
	defer cancel()

	c, err := s.Store.Clients().GetClientByID(sctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.BurnVerify(secret)
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return cryptox.VerifySecret(secret, c.SecretHash) == nil, nil
}

func (s *ClientService) newSigner(clientID string) (domain.Signer, error) {
	alg := s.SignerAlgorithm
	if alg == "" {
		alg = cryptox.AlgorithmEdDSA
	}
	kid := uuid.NewString()

	pemKey, err := cryptox.GenerateSigningKey(alg)
	if err != nil {
		return domain.Signer{}, err
	}

	signer, err := jwtx.NewSigner(alg, kid, pemKey)
	if err != nil {
		return domain.Signer{}, err
	}

	// Bind the sealed key to its tenant so rows can't be swapped
	sealed, err := s.Sealer.Seal(pemKey, []byte(clientID))
	if err != nil {
		return domain.Signer{}, fmt.Errorf("seal signer key: %w", err)
	}

	return domain.Signer{
		Algorithm:           alg,
		KeyID:               kid,
		PublicKey:           signer.PublicJWK(),
		PrivateKeyEncrypted: sealed,
	}, nil
}

func viewOf(c domain.Client) ClientView {
	return ClientView{
		ID: c.ID,
		Signer: PublicSigner{
			Algorithm: c.Signer.Algorithm,
			KeyID:     c.Signer.KeyID,
			PublicKey: c.Signer.PublicKey,
		},
		DataStore: c.DataStore,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
