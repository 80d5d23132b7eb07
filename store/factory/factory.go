// Package factory builds a store.CollectionStore from a backend name.
package factory

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/smallnest/kernelplay/store"
	"github.com/smallnest/kernelplay/store/file"
	"github.com/smallnest/kernelplay/store/memory"
	"github.com/smallnest/kernelplay/store/postgres"
	"github.com/smallnest/kernelplay/store/redis"
	"github.com/smallnest/kernelplay/store/sqlite"
)

// Backend names accepted by New.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSqlite   = "sqlite"
	BackendPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Backend string // Default "file"

	// BasePath is the data directory for the file backend and the default
	// location of the sqlite database.
	BasePath string

	// RootKey wraps documents as {"<RootKey>": [...]}. Ignored by the memory backend.
	RootKey string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	SqlitePath  string // Default BasePath/kernelplay.db
	PostgresURL string
	TableName   string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type closeFunc func()

func (f closeFunc) Close() error {
	f()
	return nil
}

// New creates a CollectionStore for opts.Backend. The returned closer
// releases connections held by the backend and is never nil.
//
// Supported backends:
//
//	"file"     - JSON files under BasePath (default)
//	"memory"   - in-memory, for tests
//	"redis"    - one key per collection
//	"sqlite"   - one row per collection at SqlitePath
//	"postgres" - one JSONB row per collection
func New(ctx context.Context, opts Options) (store.CollectionStore, io.Closer, error) {
	switch opts.Backend {
	case BackendFile, "":
		var fileOpts []file.Option
		if opts.RootKey != "" {
			fileOpts = append(fileOpts, file.WithRootKey(opts.RootKey))
		}
		return file.NewFileCollectionStore(opts.BasePath, fileOpts...), nopCloser{}, nil

	case BackendMemory:
		return memory.NewMemoryCollectionStore(), nopCloser{}, nil

	case BackendRedis:
		s := redis.NewRedisCollectionStore(redis.RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
			RootKey:  opts.RootKey,
		})
		return s, s, nil

	case BackendSqlite:
		path := opts.SqlitePath
		if path == "" {
			path = filepath.Join(opts.BasePath, "kernelplay.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("%w: create %s: %v", store.ErrIO, filepath.Dir(path), err)
		}
		s, err := sqlite.NewSqliteCollectionStore(sqlite.SqliteOptions{
			Path:      path,
			TableName: opts.TableName,
			RootKey:   opts.RootKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil

	case BackendPostgres:
		s, err := postgres.NewPostgresCollectionStore(ctx, postgres.PostgresOptions{
			ConnString: opts.PostgresURL,
			TableName:  opts.TableName,
			RootKey:    opts.RootKey,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := s.InitSchema(ctx); err != nil {
			s.Close()
			return nil, nil, err
		}
		return s, closeFunc(s.Close), nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend: %q (supported: file, memory, redis, sqlite, postgres)", opts.Backend)
	}
}
