package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxConn is the subset of *pgxpool.Pool used by PostgresBackend.
type pgxConn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresBackend stores slots as rows of the app_state table (see migrations/001_app_state.sql).
type PostgresBackend struct {
	conn pgxConn
}

func NewPostgresBackend(conn pgxConn) *PostgresBackend {
	return &PostgresBackend{conn: conn}
}

func (b *PostgresBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := b.conn.QueryRow(ctx, "SELECT value::text FROM app_state WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (b *PostgresBackend) Save(ctx context.Context, key string, data []byte) error {
	_, err := b.conn.Exec(ctx, `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}
