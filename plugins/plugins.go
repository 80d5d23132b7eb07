// Package plugins holds the plugins shipped with the playground. Each
// subpackage builds one plugin.Plugin; the data-backed ones read and write
// named collections through a store.CollectionStore.
package plugins

import (
	"context"
	"fmt"

	"github.com/smallnest/kernelplay/store"
)

// LoadJSON loads the named collection and returns it serialised as JSON.
func LoadJSON(ctx context.Context, s store.CollectionStore, name string) (string, error) {
	c, err := s.Load(ctx, name)
	if err != nil {
		return "", err
	}
	data, err := store.Encode(c, "")
	if err != nil {
		return "", fmt.Errorf("serialise %s: %w", name, err)
	}
	return string(data), nil
}
