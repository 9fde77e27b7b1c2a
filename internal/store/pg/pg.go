// Package pg implements the installation store on Postgres. A single table
// holds one JSONB row per workspace; the upsert rides ON CONFLICT.
package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/crewmate/internal/install"
	"github.com/dropDatabas3/crewmate/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS slack_installations (
    id           TEXT PRIMARY KEY,
    installation JSONB NOT NULL,
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`

type Store struct {
	pool *pgxpool.Pool
}

// New conecta al DSN y asegura el esquema.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg: dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ensure schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) StoreInstallation(ctx context.Context, inst *install.Installation) error {
	key, ok := inst.Key()
	if !ok {
		return store.ErrMissingIdentity
	}
	payload, err := json.Marshal(inst)
	if err != nil {
		return fmt.Errorf("pg: encode installation %q: %w", key, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO slack_installations (id, installation, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE
		SET installation = EXCLUDED.installation, updated_at = now()`,
		key, payload)
	if err != nil {
		return fmt.Errorf("pg: store installation %q: %w", key, err)
	}
	return nil
}

func (s *Store) FetchInstallation(ctx context.Context, q store.Query) (*install.Installation, error) {
	key, ok := q.Key()
	if !ok {
		return nil, store.ErrMissingIdentity
	}
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT installation FROM slack_installations WHERE id = $1`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("pg: fetch installation %q: %w", key, err)
	}
	var inst install.Installation
	if err := json.Unmarshal(payload, &inst); err != nil {
		return nil, fmt.Errorf("pg: decode installation %q: %w", key, err)
	}
	return &inst, nil
}

func (s *Store) DeleteInstallation(ctx context.Context, q store.Query) error {
	key, ok := q.Key()
	if !ok {
		return store.ErrMissingIdentity
	}
	// DELETE de una fila ausente afecta 0 filas y no es error.
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM slack_installations WHERE id = $1`, key); err != nil {
		return fmt.Errorf("pg: delete installation %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
