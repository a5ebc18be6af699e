package postgres

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/tabledger/internal/ledger/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// amount is read back as text so it never passes through a float
const transferColumns = `id, client_id, chain_id, amount::text, rates, created_at`

type transfersRepo struct {
	pool *pgxpool.Pool
}

func (r *transfersRepo) CreateTransfer(ctx context.Context, t domain.Transfer) (domain.Transfer, error) {
	if !t.Amount.IsSet() {
		return domain.Transfer{}, fmt.Errorf("postgres: %w: unset", domain.ErrInvalidAmount)
	}
	rates, err := domain.EncodeRates(t.Rates)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("postgres: encode rates: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO transfers (id, client_id, chain_id, amount, rates, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5::jsonb, $6)
		RETURNING `+transferColumns,
		t.ID, t.ClientID, t.ChainID, t.Amount.String(), rates, t.CreatedAt.UTC(),
	)
	return scanTransfer(row)
}

func (r *transfersRepo) GetTransferByID(ctx context.Context, id string) (domain.Transfer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
	return scanTransfer(row)
}

func (r *transfersRepo) ListTransfersByClientID(ctx context.Context, clientID string) ([]domain.Transfer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transferColumns+` FROM transfers
		WHERE client_id = $1
		ORDER BY created_at, seq`,
		clientID,
	)
	if err != nil {
		return nil, mapErr(err)
	}

	transfers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transfer, error) {
		return scanTransfer(row)
	})
	if err != nil {
		return nil, mapErr(err)
	}
	if transfers == nil {
		transfers = []domain.Transfer{}
	}
	return transfers, nil
}

func scanTransfer(row pgx.Row) (domain.Transfer, error) {
	var (
		t             domain.Transfer
		amount, rates string
	)
	if err := row.Scan(&t.ID, &t.ClientID, &t.ChainID, &amount, &rates, &t.CreatedAt); err != nil {
		return domain.Transfer{}, mapErr(err)
	}

	var err error
	if t.Amount, err = domain.ParseAmount(amount); err != nil {
		return domain.Transfer{}, fmt.Errorf("postgres: transfer %s: %w", t.ID, err)
	}
	if t.Rates, err = domain.DecodeRates(rates); err != nil {
		return domain.Transfer{}, fmt.Errorf("postgres: transfer %s: %w", t.ID, err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}
