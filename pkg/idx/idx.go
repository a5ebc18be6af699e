// Package idx mints lexicographically sortable identifiers (ULIDs) for
// transfers and request tracing.
package idx

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns an ID for the current UTC time. IDs minted in the same
// millisecond still sort in mint order.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt mints an ID whose timestamp component is t.
func NewAt(t time.Time) ID {
	// ulid.MonotonicEntropy is not safe for concurrent use.
	mu.Lock()
	defer mu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

// String returns the canonical string form.
func (id ID) String() string { return string(id) }

// Time extracts the embedded UTC timestamp, or the zero time when id is not
// a ULID.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
