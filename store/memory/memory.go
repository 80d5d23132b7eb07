package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/smallnest/kernelplay/store"
)

// MemoryCollectionStore keeps collections in memory. Data is lost on restart.
// Loaded collections are copies, so callers cannot mutate stored state in place.
type MemoryCollectionStore struct {
	mu          sync.RWMutex
	collections map[string]store.Collection
}

var _ store.CollectionStore = (*MemoryCollectionStore)(nil)

// NewMemoryCollectionStore creates an empty in-memory store.
func NewMemoryCollectionStore() *MemoryCollectionStore {
	return &MemoryCollectionStore{
		collections: make(map[string]store.Collection),
	}
}

// Load returns a copy of the named collection.
func (s *MemoryCollectionStore) Load(ctx context.Context, name string) (store.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return c.Clone(), nil
}

// Save stores a copy of c under name.
func (s *MemoryCollectionStore) Save(ctx context.Context, name string, c store.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil {
		c = store.Collection{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections[name] = c.Clone()
	return nil
}

// Names returns the names of all stored collections.
func (s *MemoryCollectionStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	return names
}
