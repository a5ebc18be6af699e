package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/aussiebroadwan/tabledger/internal/ledger/store"
)

var (
	ErrAlreadyExists    = errors.New("client already exists")
	ErrClientNotFound   = errors.New("client not found")
	ErrDuplicateID      = errors.New("duplicate transfer id")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// DefaultStoreTimeout bounds every store call when no timeout is configured.
const DefaultStoreTimeout = 5 * time.Second

const maxIdentifierLength = 255

func withStoreTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, d)
}

// unavailable folds transient store failures into ErrStoreUnavailable and
// leaves everything else alone.
func unavailable(err error) error {
	if errors.Is(err, store.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// validIdentifier accepts non-empty printable identifiers without spaces.
func validIdentifier(field, v string) error {
	if v == "" {
		return invalid("%s is required", field)
	}
	if len(v) > maxIdentifierLength {
		return invalid("%s is longer than %d bytes", field, maxIdentifierLength)
	}
	if strings.IndexFunc(v, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return invalid("%s must not contain whitespace or control characters", field)
	}
	return nil
}
