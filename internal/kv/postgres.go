package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS namespaces (
    name TEXT PRIMARY KEY,
    payload BYTEA NOT NULL
);
`

// Postgres stores each namespace as one row. Every Set upserts the full
// payload.
type Postgres struct {
	DB *sql.DB
}

// NewPostgres wraps an existing database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

// OpenPostgres connects to the given DSN, verifies the connection and
// creates the namespaces table if it does not exist.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Postgres{DB: db}, nil
}

func (p *Postgres) Get(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := p.DB.QueryRowContext(ctx,
		`SELECT payload FROM namespaces WHERE name = $1`, name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get namespace %s: %w", name, err)
	}
	return payload, nil
}

func (p *Postgres) Set(ctx context.Context, name string, value []byte) error {
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO namespaces (name, payload) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload
	`, name, value)
	if err != nil {
		return fmt.Errorf("set namespace %s: %w", name, err)
	}
	return nil
}

func (p *Postgres) Remove(ctx context.Context, name string) error {
	_, err := p.DB.ExecContext(ctx, `DELETE FROM namespaces WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("remove namespace %s: %w", name, err)
	}
	return nil
}
