package sqlite

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/tabledger/internal/ledger/domain"
	"github.com/aussiebroadwan/tabledger/internal/ledger/store/drivers/sqlite/gen"
)

type transfersRepo struct {
	q *gen.Queries
}

func (r *transfersRepo) CreateTransfer(ctx context.Context, t domain.Transfer) (domain.Transfer, error) {
	if !t.Amount.IsSet() {
		return domain.Transfer{}, fmt.Errorf("sqlite: %w: unset", domain.ErrInvalidAmount)
	}
	rates, err := domain.EncodeRates(t.Rates)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("sqlite: encode rates: %w", err)
	}

	secs, nanos := toUnixParts(t.CreatedAt)
	row, err := r.q.CreateTransfer(ctx, gen.CreateTransferParams{
		ID:             t.ID,
		ClientID:       t.ClientID,
		ChainID:        t.ChainID,
		Amount:         t.Amount.String(),
		Rates:          rates,
		CreatedAt:      secs,
		CreatedAtNanos: nanos,
	})
	if err != nil {
		return domain.Transfer{}, mapErr(err)
	}
	return mapTransfer(row)
}

func (r *transfersRepo) GetTransferByID(ctx context.Context, id string) (domain.Transfer, error) {
	row, err := r.q.GetTransferByID(ctx, id)
	if err != nil {
		return domain.Transfer{}, mapErr(err)
	}
	return mapTransfer(row)
}

func (r *transfersRepo) ListTransfersByClientID(ctx context.Context, clientID string) ([]domain.Transfer, error) {
	rows, err := r.q.ListTransfersByClientID(ctx, clientID)
	if err != nil {
		return nil, mapErr(err)
	}

	transfers := make([]domain.Transfer, len(rows))
	for i, row := range rows {
		if transfers[i], err = mapTransfer(row); err != nil {
			return nil, err
		}
	}
	return transfers, nil
}

func mapTransfer(row gen.Transfer) (domain.Transfer, error) {
	amount, err := domain.ParseAmount(row.Amount)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("sqlite: transfer %s: %w", row.ID, err)
	}
	rates, err := domain.DecodeRates(row.Rates)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("sqlite: transfer %s: %w", row.ID, err)
	}

	return domain.Transfer{
		ID:        row.ID,
		ClientID:  row.ClientID,
		ChainID:   row.ChainID,
		Amount:    amount,
		Rates:     rates,
		CreatedAt: fromUnixParts(row.CreatedAt, row.CreatedAtNanos),
	}, nil
}
