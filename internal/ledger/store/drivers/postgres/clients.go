package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/tabledger/internal/ledger/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `id, secret_hash, signer_algorithm, signer_key_id, signer_public_key,
	signer_private_key_encrypted, data_store, created_at, updated_at`

type clientsRepo struct {
	pool *pgxpool.Pool
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	pub, err := json.Marshal(c.Signer.PublicKey)
	if err != nil {
		return domain.Client{}, fmt.Errorf("postgres: encode signer key: %w", err)
	}
	ds, err := json.Marshal(c.DataStore)
	if err != nil {
		return domain.Client{}, fmt.Errorf("postgres: encode data store: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO clients (id, secret_hash, signer_algorithm, signer_key_id, signer_public_key,
			signer_private_key_encrypted, data_store)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7::jsonb)
		RETURNING `+clientColumns,
		c.ID, c.SecretHash, c.Signer.Algorithm, c.Signer.KeyID, string(pub),
		c.Signer.PrivateKeyEncrypted, string(ds),
	)
	return scanClient(row)
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	return scanClient(row)
}

func (r *clientsRepo) CountClientsByID(ctx context.Context, id string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE id = $1`, id).Scan(&n)
	return n, mapErr(err)
}

func scanClient(row pgx.Row) (domain.Client, error) {
	var (
		c       domain.Client
		pub, ds []byte
	)
	err := row.Scan(
		&c.ID,
		&c.SecretHash,
		&c.Signer.Algorithm,
		&c.Signer.KeyID,
		&pub,
		&c.Signer.PrivateKeyEncrypted,
		&ds,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, mapErr(err)
	}

	if err := json.Unmarshal(pub, &c.Signer.PublicKey); err != nil {
		return domain.Client{}, fmt.Errorf("postgres: decode signer key: %w", err)
	}
	if err := json.Unmarshal(ds, &c.DataStore); err != nil {
		return domain.Client{}, fmt.Errorf("postgres: decode data store: %w", err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}
