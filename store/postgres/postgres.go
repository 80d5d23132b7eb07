package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smallnest/kernelplay/store"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresCollectionStore implements store.CollectionStore using PostgreSQL.
// Documents are kept in a JSONB column keyed by collection name.
type PostgresCollectionStore struct {
	pool      DBPool
	tableName string
	rootKey   string
}

var _ store.CollectionStore = (*PostgresCollectionStore)(nil)

// PostgresOptions configuration for Postgres connection
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "collections"
	RootKey    string
}

// NewPostgresCollectionStore creates a new Postgres collection store
func NewPostgresCollectionStore(ctx context.Context, opts PostgresOptions) (*PostgresCollectionStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%w: create connection pool: %v", store.ErrIO, err)
	}

	s := NewPostgresCollectionStoreWithPool(pool, opts.TableName)
	s.rootKey = opts.RootKey
	return s, nil
}

// NewPostgresCollectionStoreWithPool creates a store over an existing pool.
// Useful for testing with mocks
func NewPostgresCollectionStoreWithPool(pool DBPool, tableName string) *PostgresCollectionStore {
	if tableName == "" {
		tableName = "collections"
	}
	return &PostgresCollectionStore{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the necessary table if it doesn't exist
func (s *PostgresCollectionStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name TEXT PRIMARY KEY,
			document JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("%w: create schema: %v", store.ErrIO, err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresCollectionStore) Close() {
	s.pool.Close()
}

// Load reads the named collection document.
func (s *PostgresCollectionStore) Load(ctx context.Context, name string) (store.Collection, error) {
	query := fmt.Sprintf("SELECT document FROM %s WHERE name = $1", s.tableName)

	var doc []byte
	if err := s.pool.QueryRow(ctx, query, name).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: load %s: %v", store.ErrIO, name, err)
	}

	c, err := store.Decode(doc, s.rootKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Save upserts the named collection document.
func (s *PostgresCollectionStore) Save(ctx context.Context, name string, c store.Collection) error {
	data, err := store.Encode(c, s.rootKey)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query, name, data); err != nil {
		return fmt.Errorf("%w: save %s: %v", store.ErrIO, name, err)
	}
	return nil
}

// Names lists stored collections in name order.
func (s *PostgresCollectionStore) Names(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT name FROM %s ORDER BY name ASC", s.tableName)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list collections: %v", store.ErrIO, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scan collection row: %v", store.ErrIO, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate collection rows: %v", store.ErrIO, err)
	}
	return names, nil
}

// Delete removes the named collection.
func (s *PostgresCollectionStore) Delete(ctx context.Context, name string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE name = $1", s.tableName)
	if _, err := s.pool.Exec(ctx, query, name); err != nil {
		return fmt.Errorf("%w: delete %s: %v", store.ErrIO, name, err)
	}
	return nil
}
