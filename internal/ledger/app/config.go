package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/tabledger/pkg/httpx"
)

// Rate limit backends.
const (
	RateLimitMemory = "memory" // per-process token buckets
	RateLimitStore  = "store"  // fixed windows in the ledger database
	RateLimitRedis  = "redis"  // fixed windows in Redis, shared by every replica
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	DatabaseDriver string        // sqlite or postgres (default: sqlite)
	DatabaseFile   string        // SQLite database file (default: ./ledger.db)
	DatabaseURL    string        // Postgres connection URL, required for the postgres driver
	StoreTimeout   time.Duration // Bound on every store call (default: 5s)

	SignerAlgorithm string // Tenant signer algorithm, EdDSA or ES256 (default: EdDSA)
	MasterKeyPath   string // Optional: file holding the key that seals tenant signer keys
	PepperFile      string // File holding the secret hashing pepper (default: ./pepper)

	AdminJWKSFile string // JWKS file with the public keys that sign admin tokens
	AdminIssuer   string // Required "iss" of admin tokens (default: tabledger-admin)

	RateLimitBackend string // memory, store or redis (default: memory)
	RedisAddr        string // Redis address for the redis backend (default: localhost:6379)
	RedisPassword    string
	RedisDB          int
	StrictLimit      httpx.RateLimitConfig
	ModerateLimit    httpx.RateLimitConfig
	LenientLimit     httpx.RateLimitConfig

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Rate limit window pruning interval (default: 10m)
	BatchConcurrency     int           // Parallel inserts per batch request (default: 8)
}

func LoadConfig() Config {
	return Config{
		DatabaseDriver: getEnvOrDefault("LEDGER_DATABASE_DRIVER", DriverSQLite),
		DatabaseFile:   getEnvOrDefault("LEDGER_DATABASE_FILE", "ledger.db"),
		DatabaseURL:    os.Getenv("LEDGER_DATABASE_URL"),
		StoreTimeout:   getEnvDurationOrDefault("LEDGER_STORE_TIMEOUT", 5*time.Second),

		SignerAlgorithm: getEnvOrDefault("LEDGER_SIGNER_ALGORITHM", "EdDSA"),
		MasterKeyPath:   os.Getenv("LEDGER_MASTER_KEY_PATH"),
		PepperFile:      getEnvOrDefault("LEDGER_PEPPER_FILE", "pepper"),

		AdminJWKSFile: os.Getenv("LEDGER_ADMIN_JWKS_FILE"),
		AdminIssuer:   getEnvOrDefault("LEDGER_ADMIN_ISSUER", "tabledger-admin"),

		RateLimitBackend: getEnvOrDefault("RATELIMIT_BACKEND", RateLimitMemory),
		RedisAddr:        getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvIntOrDefault("REDIS_DB", 0),
		StrictLimit:      httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
		ModerateLimit:    httpx.ParseRateLimitFromEnv("MODERATE", httpx.ModerateLimit),
		LenientLimit:     httpx.ParseRateLimitFromEnv("LENIENT", httpx.LenientLimit),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),
		BatchConcurrency:     getEnvIntOrDefault("LEDGER_BATCH_CONCURRENCY", 8),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
