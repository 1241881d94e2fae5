// Package testkit starts throwaway PostgreSQL and Redis containers for
// integration tests.
//
// Integration tests run only when GOPOST_INTEGRATION=1 and -short is not set;
// otherwise they are skipped.
package testkit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gopost/internal/pkg/pgxdb"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const (
	postgresImage = "postgres:17-alpine"
	redisImage    = "redis:7-alpine"
	startTimeout  = 2 * time.Minute
)

// RequireIntegration skips t unless integration tests are enabled.
func RequireIntegration(t *testing.T) {
	t.Helper()

	if testing.Short() || os.Getenv("GOPOST_INTEGRATION") != "1" {
		t.Skip("integration test: set GOPOST_INTEGRATION=1 to run")
	}
}

// PostgresURL starts a PostgreSQL container and returns its connection string.
func PostgresURL(t *testing.T) string {
	t.Helper()
	RequireIntegration(t)

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	ctr, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("gopost"),
		tcpostgres.WithUsername("gopost"),
		tcpostgres.WithPassword("gopost"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres connection string: %v", err)
	}

	return dsn
}

// Postgres starts a PostgreSQL container, applies the embedded migrations and
// returns a pool closed at test cleanup.
func Postgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := PostgresURL(t)

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pgxdb.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return pool
}

// RedisURL starts a Redis container and returns its redis:// URL.
func RedisURL(t *testing.T) string {
	t.Helper()
	RequireIntegration(t)

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	ctr, err := tcredis.Run(ctx, redisImage)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}

	url, err := ctr.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("redis connection string: %v", err)
	}

	return url
}

// Redis starts a Redis container and returns a client closed at test cleanup.
func Redis(t *testing.T) *redis.Client {
	t.Helper()

	opt, err := redis.ParseURL(RedisURL(t))
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	return client
}
