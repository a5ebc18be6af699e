// Package testsupport starts throwaway dependencies for integration tests.
// Tests using it are skipped when no Docker provider is reachable.
package testsupport

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	redisImage    = "redis:7-alpine"
	postgresImage = "postgres:16-alpine"

	postgresUser     = "ledger"
	postgresPassword = "ledger"
	postgresDB       = "ledger"
)

// StartRedis starts a Redis container and returns its host:port address.
func StartRedis(t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(60 * time.Second),
	}

	host, port := start(t, req, "6379")
	return fmt.Sprintf("%s:%s", host, port)
}

// StartPostgres starts a PostgreSQL container and returns a connection URL.
func StartPostgres(t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		// postgres logs this once for the init server and once for the real one
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}

	host, port := start(t, req, "5432")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, host, port, postgresDB)
}

func start(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return host, mappedPort.Port()
}
