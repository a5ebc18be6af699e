package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/tabledger/internal/ledger/store"
	"github.com/aussiebroadwan/tabledger/internal/ledger/store/drivers/sqlite/gen"
	_ "modernc.org/sqlite"
)

// defaultPragmas are appended to DSNs that carry no query string of their own.
const defaultPragmas = "_pragma=busy_timeout(5000)" +
	"&_pragma=journal_mode(WAL)" +
	"&_pragma=synchronous(NORMAL)" +
	"&_pragma=foreign_keys(1)"

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// DSNFromFile builds a DSN for a database file with the default pragmas.
func DSNFromFile(path string) string {
	return "file:" + path + "?" + defaultPragmas
}

func NewStore(dsn string) (*Store, error) {
	if !strings.Contains(dsn, "?") {
		dsn += "?" + defaultPragmas
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One writer at a time is all sqlite allows anyway; a single pooled
	// connection also keeps ":memory:" databases from splitting per conn.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return mapErr(s.db.PingContext(ctx))
}

func (s *Store) Clients() store.Clients       { return &clientsRepo{q: s.q} }
func (s *Store) Transfers() store.Transfers   { return &transfersRepo{q: s.q} }
func (s *Store) RateLimits() store.RateLimits { return &rateLimitsRepo{q: s.q} }

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

// toUnixParts splits t into unix seconds and a nanosecond remainder. Unlike
// toNanos it covers every instant a time.Time can hold.
func toUnixParts(t time.Time) (secs, nanos int64) {
	t = t.UTC()
	return t.Unix(), int64(t.Nanosecond())
}

func fromUnixParts(secs, nanos int64) time.Time {
	return time.Unix(secs, nanos).UTC()
}
