package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluiggi96/Doc-MYPE/internal/store"
)

// exerciseBackend checks the Backend contract shared by every implementation.
func exerciseBackend(t *testing.T, b store.Backend, key string) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := b.Load(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "fresh key must be absent")

	require.NoError(t, b.Save(ctx, key, []byte(`[{"id":"1"}]`)))
	require.NoError(t, b.Save(ctx, key, []byte(`[{"id":"2"}]`)))

	data, ok, err := b.Load(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"2"}]`, string(data))
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, store.NewMemoryBackend(), "test:memory")
}

func TestFileBackend(t *testing.T) {
	b, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	exerciseBackend(t, b, "test:file")
}

func TestPostgresBackend(t *testing.T) {
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS app_state (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		DELETE FROM app_state WHERE key = 'test:postgres';
	`)
	require.NoError(t, err)

	exerciseBackend(t, store.NewPostgresBackend(pool), "test:postgres")
}

func TestRedisBackend(t *testing.T) {
	_ = godotenv.Load("../../.env")
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set — skipping integration test")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Del(ctx, "test:redis").Err())

	exerciseBackend(t, store.NewRedisBackend(client), "test:redis")
}
