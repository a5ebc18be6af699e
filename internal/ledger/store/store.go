package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tabledger/internal/ledger/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrUnavailable marks transient failures (busy database, lost
	// connection, deadline) that a caller may retry.
	ErrUnavailable = errors.New("store: unavailable")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this and expose sub-repositories per concern.
//
// There is deliberately no transaction API: every write that carries an
// invariant (client uniqueness, transfer id uniqueness, rate window
// counting) is a single atomic statement.
type Store interface {
	Clients() Clients
	Transfers() Transfers
	RateLimits() RateLimits

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Clients interface {
	// CreateClient inserts c in one statement. A second insert for the same
	// id fails with ErrAlreadyExists and writes nothing. CreatedAt and
	// UpdatedAt are set by the store and returned.
	CreateClient(ctx context.Context, c domain.Client) (domain.Client, error)

	// GetClientByID returns ErrNotFound for unknown ids.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// CountClientsByID is 0 or 1. Tests use it to check that a contested
	// registration left exactly one row.
	CountClientsByID(ctx context.Context, id string) (int64, error)
}

type Transfers interface {
	// CreateTransfer inserts t and returns the row as stored. A duplicate
	// id fails with ErrAlreadyExists.
	CreateTransfer(ctx context.Context, t domain.Transfer) (domain.Transfer, error)

	// GetTransferByID returns ErrNotFound for unknown ids.
	GetTransferByID(ctx context.Context, id string) (domain.Transfer, error)

	// ListTransfersByClientID returns the tenant's transfers ordered by
	// creation instant, ties broken by insertion order. Unknown tenants get
	// an empty slice.
	ListTransfersByClientID(ctx context.Context, clientID string) ([]domain.Transfer, error)
}

type RateLimits interface {
	// IncrWindow adds one hit to (key, windowStart) and returns the new
	// total, atomically.
	IncrWindow(ctx context.Context, key string, windowStart, expiresAt time.Time) (int64, error)

	// DeleteExpiredWindows removes windows whose expiry is before now.
	DeleteExpiredWindows(ctx context.Context, now time.Time) (int64, error)
}
