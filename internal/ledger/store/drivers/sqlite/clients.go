package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tabledger/internal/ledger/domain"
	"github.com/aussiebroadwan/tabledger/internal/ledger/store/drivers/sqlite/gen"
)

type clientsRepo struct {
	q *gen.Queries
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	pub, err := json.Marshal(c.Signer.PublicKey)
	if err != nil {
		return domain.Client{}, fmt.Errorf("sqlite: encode signer key: %w", err)
	}
	ds, err := json.Marshal(c.DataStore)
	if err != nil {
		return domain.Client{}, fmt.Errorf("sqlite: encode data store: %w", err)
	}

	now := toNanos(time.Now())
	row, err := r.q.CreateClient(ctx, gen.CreateClientParams{
		ID:                        c.ID,
		SecretHash:                c.SecretHash,
		SignerAlgorithm:           c.Signer.Algorithm,
		SignerKeyID:               c.Signer.KeyID,
		SignerPublicKey:           string(pub),
		SignerPrivateKeyEncrypted: c.Signer.PrivateKeyEncrypted,
		DataStore:                 string(ds),
		CreatedAt:                 now,
		UpdatedAt:                 now,
	})
	if err != nil {
		return domain.Client{}, mapErr(err)
	}
	return mapClient(row)
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row, err := r.q.GetClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, mapErr(err)
	}
	return mapClient(row)
}

func (r *clientsRepo) CountClientsByID(ctx context.Context, id string) (int64, error) {
	n, err := r.q.CountClientsByID(ctx, id)
	return n, mapErr(err)
}

func mapClient(row gen.Client) (domain.Client, error) {
	c := domain.Client{
		ID:         row.ID,
		SecretHash: row.SecretHash,
		Signer: domain.Signer{
			Algorithm:           row.SignerAlgorithm,
			KeyID:               row.SignerKeyID,
			PrivateKeyEncrypted: row.SignerPrivateKeyEncrypted,
		},
		CreatedAt: fromNanos(row.CreatedAt),
		UpdatedAt: fromNanos(row.UpdatedAt),
	}
	if err := json.Unmarshal([]byte(row.SignerPublicKey), &c.Signer.PublicKey); err != nil {
		return domain.Client{}, fmt.Errorf("sqlite: decode signer key: %w", err)
	}
	if err := json.Unmarshal([]byte(row.DataStore), &c.DataStore); err != nil {
		return domain.Client{}, fmt.Errorf("sqlite: decode data store: %w", err)
	}
	return c, nil
}
