// Package postgres implements the KVStore on a single Postgres table. Rows
// carry an optional expiry and an opaque jsonb metadata column, which is all
// the document layer asks of its storage engine.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"jsonatlas/internal/domain/repositories"
)

// Store is a pgx-backed KVStore. The table name is prefixed per environment
// so dev/test/prod share a database without sharing data.
type Store struct {
	pool   *pgxpool.Pool
	table  string
	logger *slog.Logger
}

// Config holds construction dependencies for the store.
type Config struct {
	Pool        *pgxpool.Pool
	TablePrefix string
	Logger      *slog.Logger
}

func New(cfg *Config) *Store {
	return &Store{
		pool:   cfg.Pool,
		table:  fmt.Sprintf("%skv_entries", cfg.TablePrefix),
		logger: cfg.Logger,
	}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			metadata   JSONB,
			expires_at TIMESTAMPTZ
		)
	`, s.table)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure kv schema: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	query := fmt.Sprintf(`
		SELECT value FROM %s
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())
	`, s.table)

	var value string
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if isNoRowsError(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Put(ctx context.Context, key, value string, opts repositories.PutOptions) error {
	var metadata []byte
	if opts.Metadata != nil {
		encoded, err := json.Marshal(opts.Metadata)
		if err != nil {
			return fmt.Errorf("kv put %s: encode metadata: %w", key, err)
		}
		metadata = encoded
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, metadata, expires_at)
		VALUES ($1, $2, $3, CASE WHEN $4::bigint > 0 THEN now() + make_interval(secs => $4) ELSE NULL END)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    metadata = EXCLUDED.metadata,
		    expires_at = EXCLUDED.expires_at
	`, s.table)

	ttlSeconds := int64(opts.TTL.Seconds())
	if _, err := s.pool.Exec(ctx, query, key, value, metadata, ttlSeconds); err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.table)

	if _, err := s.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}
