package pgxdb_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gopost/internal/pkg/pgxdb"
	"github.com/shandysiswandi/gopost/internal/pkg/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	dsn := testkit.PostgresURL(t)
	ctx := context.Background()

	pool, err := pgxdb.NewPool(ctx, pgxdb.PoolConfig{URL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pgxdb.Migrate(ctx, pool))
	require.NoError(t, pgxdb.Migrate(ctx, pool), "second run is a no-op")

	var applied int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)

	assertTable(t, pool, "users")
	assertTable(t, pool, "posts")
}

func assertTable(t *testing.T, pool *pgxpool.Pool, name string) {
	t.Helper()

	var exists bool
	err := pool.QueryRow(context.Background(), "SELECT to_regclass($1) IS NOT NULL", "public."+name).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, name)
}
