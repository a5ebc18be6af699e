package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/tabledger/internal/ledger/domain"
	"github.com/aussiebroadwan/tabledger/internal/ledger/store/drivers/sqlite"
	"github.com/aussiebroadwan/tabledger/pkg/cryptox"
	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "ledger-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(sqlite.DSNFromFile(filepath.Join(t.TempDir(), "ledger.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newSealer(t *testing.T) *cryptox.KeySealer {
	t.Helper()
	sealer, err := cryptox.NewKeySealer([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	return sealer
}

func dataStore() domain.DataStore {
	src := domain.DataSource{
		Type:     "http",
		Location: "https://data.example.com/v1",
		SigningKeys: []jwtx.JWK{
			{Kty: "OKP", Crv: "Ed25519", Kid: "tenant-key", X: "11qYAYKxCrfVS_7TyWQHOg7hcvPapiMlrwIaaPcHURo"},
		},
	}
	return domain.DataStore{Entity: src, Policy: src}
}

func strPtr(s string) *string { return &s }

var ctx = context.Background()
