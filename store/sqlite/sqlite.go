package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smallnest/kernelplay/store"
)

// SqliteCollectionStore implements store.CollectionStore using SQLite.
// Each collection is one row holding the encoded document.
type SqliteCollectionStore struct {
	db        *sql.DB
	tableName string
	rootKey   string
}

var _ store.CollectionStore = (*SqliteCollectionStore)(nil)

// SqliteOptions configuration for SQLite connection
type SqliteOptions struct {
	Path      string
	TableName string // Default "collections"
	RootKey   string
}

// NewSqliteCollectionStore opens the database and creates the table if needed.
func NewSqliteCollectionStore(opts SqliteOptions) (*SqliteCollectionStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", store.ErrIO, err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "collections"
	}

	s := &SqliteCollectionStore{
		db:        db,
		tableName: tableName,
		rootKey:   opts.RootKey,
	}

	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// InitSchema creates the necessary table if it doesn't exist
func (s *SqliteCollectionStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name TEXT PRIMARY KEY,
			document TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: create schema: %v", store.ErrIO, err)
	}
	return nil
}

// Close closes the database connection
func (s *SqliteCollectionStore) Close() error {
	return s.db.Close()
}

// Load reads the named collection document.
func (s *SqliteCollectionStore) Load(ctx context.Context, name string) (store.Collection, error) {
	query := fmt.Sprintf("SELECT document FROM %s WHERE name = ?", s.tableName)

	var doc string
	err := s.db.QueryRowContext(ctx, query, name).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: load %s: %v", store.ErrIO, name, err)
	}

	c, err := store.Decode([]byte(doc), s.rootKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Save upserts the named collection document.
func (s *SqliteCollectionStore) Save(ctx context.Context, name string, c store.Collection) error {
	data, err := store.Encode(c, s.rootKey)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name, document, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, name, string(data)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: save %s: %v", store.ErrIO, name, err)
	}
	return nil
}

// Names lists stored collections in name order.
func (s *SqliteCollectionStore) Names(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT name FROM %s ORDER BY name ASC", s.tableName)

	rows, err := s.db.QueryContext(ctx, query)
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

// Delete removes the named collection. Deleting a missing collection is not an error.
func (s *SqliteCollectionStore) Delete(ctx context.Context, name string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE name = ?", s.tableName)
	if _, err := s.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("%w: delete %s: %v", store.ErrIO, name, err)
	}
	return nil
}
