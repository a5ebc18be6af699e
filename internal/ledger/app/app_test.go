package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/tabledger/internal/ledger/store/drivers/sqlite"
	"github.com/aussiebroadwan/tabledger/pkg/cryptox"
	"github.com/aussiebroadwan/tabledger/pkg/httpx"
	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
	"github.com/aussiebroadwan/tabledger/pkg/ledgersdk"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"LEDGER_DATABASE_DRIVER", "RATELIMIT_BACKEND", "PORT", "LEDGER_STORE_TIMEOUT", "RATELIMIT_STRICT_REQUESTS"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, RateLimitMemory, cfg.RateLimitBackend)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 5*time.Second, cfg.StoreTimeout)
	require.Equal(t, "EdDSA", cfg.SignerAlgorithm)
	require.Equal(t, httpx.StrictLimit, cfg.StrictLimit)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("LEDGER_DATABASE_DRIVER", "postgres")
	t.Setenv("LEDGER_DATABASE_URL", "postgres://ledger@db/ledger")
	t.Setenv("LEDGER_STORE_TIMEOUT", "750ms")
	t.Setenv("HOUSEKEEPING_INTERVAL", "3")
	t.Setenv("PORT", "not-a-number")
	t.Setenv("RATELIMIT_BACKEND", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "50")
	t.Setenv("RATELIMIT_STRICT_WINDOW_SEC", "10")

	cfg := LoadConfig()
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, "postgres://ledger@db/ledger", cfg.DatabaseURL)
	require.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	require.Equal(t, 3*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, RateLimitRedis, cfg.RateLimitBackend)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, 50, cfg.StrictLimit.RequestsPerWindow)
	require.Equal(t, 10*time.Second, cfg.StrictLimit.Window)
}

func TestBuildLimiters(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	cfg := Config{
		StrictLimit:   httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute},
		ModerateLimit: httpx.ModerateLimit,
		LenientLimit:  httpx.LenientLimit,
	}

	for _, backend := range []string{RateLimitMemory, RateLimitStore} {
		t.Run(backend, func(t *testing.T) {
			cfg.RateLimitBackend = backend
			l, err := BuildLimiters(cfg, st, nil)
			require.NoError(t, err)

			key := "build-" + backend
			for range 2 {
				d, err := l.Strict.Admit(t.Context(), key)
				require.NoError(t, err)
				require.True(t, d.Allowed)
			}
			d, err := l.Strict.Admit(t.Context(), key)
			require.NoError(t, err)
			require.False(t, d.Allowed)
		})
	}

	cfg.RateLimitBackend = RateLimitRedis
	_, err = BuildLimiters(cfg, st, nil)
	require.Error(t, err)

	cfg.RateLimitBackend = "carrier-pigeon"
	_, err = BuildLimiters(cfg, st, nil)
	require.Error(t, err)
}

func writeAdminJWKS(t *testing.T) string {
	t.Helper()
	pemKey, err := cryptox.GenerateSigningKey(cryptox.AlgorithmEdDSA)
	require.NoError(t, err)
	signer, err := jwtx.NewSigner(cryptox.AlgorithmEdDSA, "ops-1", pemKey)
	require.NoError(t, err)

	raw, err := json.Marshal(jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "admin.jwks.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		DatabaseDriver:       DriverSQLite,
		DatabaseFile:         filepath.Join(dir, "ledger.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		AdminJWKSFile:        writeAdminJWKS(t),
		AdminIssuer:          "tabledger-admin",
		RateLimitBackend:     RateLimitStore,
		StrictLimit:          httpx.StrictLimit,
		ModerateLimit:        httpx.ModerateLimit,
		LenientLimit:         httpx.LenientLimit,
		Env:                  "test",
		LogLevel:             "error",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestNewApplication(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)

	srv := httptest.NewServer(app.router)
	defer srv.Close()

	ready, err := ledgersdk.NewSDKClient(srv.URL).GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Store)
	require.Equal(t, "ok", ready.Checks.AdminKeys)

	// Admin routes are mounted and gated
	resp, err := http.Post(srv.URL+"/v1/clients", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	app.housekeepingService.Start()
	require.NoError(t, app.Shutdown())
}

func TestNewApplicationRejects(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.DatabaseDriver = "oracle"
		_, err := New(cfg)
		require.Error(t, err)
	})

	t.Run("postgres without url", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.DatabaseDriver = DriverPostgres
		_, err := New(cfg)
		require.Error(t, err)
	})

	t.Run("ephemeral master key in prod", func(t *testing.T) {
		t.Setenv(cryptox.MasterKeyEnv, "")
		cfg := testConfig(t)
		cfg.Env = "prod"
		_, err := New(cfg)
		require.Error(t, err)
	})

	t.Run("unreadable admin jwks", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.AdminJWKSFile = filepath.Join(t.TempDir(), "missing.json")
		_, err := New(cfg)
		require.Error(t, err)
	})
}

func TestAdminKeysOptional(t *testing.T) {
	cfg := testConfig(t)
	cfg.AdminJWKSFile = ""

	app, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = app.db.Close() }()

	srv := httptest.NewServer(app.router)
	defer srv.Close()

	_, err = ledgersdk.NewSDKClient(srv.URL).GetReadiness(t.Context())
	require.ErrorIs(t, err, ledgersdk.ErrUnavailable)
}
