package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/smallnest/kernelplay/store"
)

// FileCollectionStore keeps each collection as a JSON file under a base directory.
//
// Layout:
//
//	base/
//	  musiclibrary/recentlyplayed.json   # "musiclibrary/recentlyplayed"
//	  todolist/todo.json                 # "todolist/todo"
type FileCollectionStore struct {
	basePath string
	rootKey  string
}

var _ store.CollectionStore = (*FileCollectionStore)(nil)

// Option configures a FileCollectionStore.
type Option func(*FileCollectionStore)

// WithRootKey stores documents as {"<key>": [...]} instead of a bare array.
func WithRootKey(key string) Option {
	return func(s *FileCollectionStore) {
		s.rootKey = key
	}
}

// NewFileCollectionStore creates a store rooted at basePath.
// The directory is not created until the first Save.
func NewFileCollectionStore(basePath string, opts ...Option) *FileCollectionStore {
	s := &FileCollectionStore{basePath: basePath}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file backing the named collection.
func (s *FileCollectionStore) Path(name string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(name)+".json")
}

// Load reads and parses the collection file.
func (s *FileCollectionStore) Load(ctx context.Context, name string) (store.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validName(name); err != nil {
		return nil, err
	}

	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", store.ErrIO, path, err)
	}

	c, err := store.Decode(data, s.rootKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save replaces the collection file. The document is written to a temporary
// file in the same directory and renamed over the target. An existing file
// keeps its permissions; new files are created 0644.
func (s *FileCollectionStore) Save(ctx context.Context, name string, c store.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validName(name); err != nil {
		return err
	}

	data, err := store.Encode(c, s.rootKey)
	if err != nil {
		return err
	}

	path := s.Path(name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", store.ErrIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", store.ErrIO, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: chmod %s: %v", store.ErrIO, tmpName, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", store.ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", store.ErrIO, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", store.ErrIO, path, err)
	}
	return nil
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty collection name", store.ErrNotFound)
	}
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(name)))
	if clean != name || strings.HasPrefix(clean, "../") || clean == ".." || filepath.IsAbs(name) {
		return fmt.Errorf("%w: invalid collection name %q", store.ErrNotFound, name)
	}
	return nil
}
