package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tabledger/internal/ledger/domain"
	"github.com/aussiebroadwan/tabledger/internal/ledger/store"
	"github.com/aussiebroadwan/tabledger/pkg/idx"
	"github.com/aussiebroadwan/tabledger/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxBatchSize caps TrackBatch requests.
	MaxBatchSize = 500

	defaultBatchConcurrency = 8
)

type TransferService struct {
	Store            store.Store
	StoreTimeout     time.Duration
	BatchConcurrency int

	// Now is the clock for transfers that carry no timestamp.
	Now func() time.Time
}

// TrackTransferInput is one approved transfer to record.
type TrackTransferInput struct {
	ID        string // generated when empty
	ClientID  string
	ChainID   string
	Amount    domain.Amount
	Rates     domain.Rates
	CreatedAt *time.Time // now when nil
}

// BatchResult is the outcome of one TrackBatch item.
type BatchResult struct {
	Transfer domain.Transfer
	Err      error
}

// Track appends one transfer and returns it as decoded from the stored row.
func (s *TransferService) Track(ctx context.Context, in TrackTransferInput) (domain.Transfer, error) {
	l := slogx.FromContext(ctx)

	t, err := s.prepare(in)
	if err != nil {
		return domain.Transfer{}, err
	}

	sctx, cancel := withStoreTimeout(ctx, s.StoreTimeout)
	defer cancel()

	stored, err := s.Store.Transfers().CreateTransfer(sctx, t)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Transfer{}, ErrDuplicateID
		}
		l.Error("failed to track transfer", "error", err, "transfer_id", t.ID)
		return domain.Transfer{}, unavailable(err)
	}

	l.Debug("transfer tracked", "transfer_id", stored.ID, "chain_id", stored.ChainID)
	return stored, nil
}

// TrackBatch tracks each input independently with bounded concurrency.
// Results line up with inputs; one item failing never affects another.
// The error is only set when the batch itself is unacceptable.
func (s *TransferService) TrackBatch(ctx context.Context, ins []TrackTransferInput) ([]BatchResult, error) {
	if len(ins) == 0 || len(ins) > MaxBatchSize {
		return nil, invalid("batch must hold between 1 and %d transfers", MaxBatchSize)
	}

	limit := s.BatchConcurrency
	if limit <= 0 {
		limit = defaultBatchConcurrency
	}

	results := make([]BatchResult, len(ins))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, in := range ins {
		g.Go(func() error {
			t, err := s.Track(ctx, in)
			results[i] = BatchResult{Transfer: t, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// FindByClientID returns the tenant's transfers in chronological order. A
// tenant with no transfers, registered or not, gets an empty slice.
func (s *TransferService) FindByClientID(ctx context.Context, clientID string) ([]domain.Transfer, error) {
	if err := validIdentifier("clientId", clientID); err != nil {
		return nil, err
	}

	sctx, cancel := withStoreTimeout(ctx, s.StoreTimeout)
	defer cancel()

	transfers, err := s.Store.Transfers().ListTransfersByClientID(sctx, clientID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list transfers", "error", err)
		return nil, unavailable(err)
	}
	if transfers == nil {
		transfers = []domain.Transfer{}
	}
	return transfers, nil
}

func (s *TransferService) prepare(in TrackTransferInput) (domain.Transfer, error) {
	if err := validIdentifier("clientId", in.ClientID); err != nil {
		return domain.Transfer{}, err
	}
	if err := validIdentifier("chainId", in.ChainID); err != nil {
		return domain.Transfer{}, err
	}
	if !in.Amount.IsSet() {
		return domain.Transfer{}, ErrInvalidAmount
	}
	if err := in.Rates.Validate(); err != nil {
		return domain.Transfer{}, invalid("%v", err)
	}

	id := in.ID
	if id == "" {
		id = idx.New().String()
	} else if err := validIdentifier("id", id); err != nil {
		return domain.Transfer{}, err
	}

	var createdAt time.Time
	if in.CreatedAt != nil {
		createdAt = in.CreatedAt.UTC()
	} else if s.Now != nil {
		createdAt = s.Now().UTC()
	} else {
		createdAt = time.Now().UTC()
	}

	return domain.Transfer{
		ID:        id,
		ClientID:  in.ClientID,
		ChainID:   in.ChainID,
		Amount:    in.Amount,
		Rates:     in.Rates,
		CreatedAt: createdAt,
	}, nil
}
