// Package seed ships the sample collections the plugins read and write, and
// copies them into an empty collection store.
package seed

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/smallnest/kernelplay/log"
	"github.com/smallnest/kernelplay/store"
)

//go:embed collections
var collections embed.FS

const root = "collections"

// Names lists the bundled collections, e.g. "todolist/todo".
func Names() []string {
	var names []string
	_ = fs.WalkDir(collections, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".json" {
			return err
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(p, root+"/"), ".json"))
		return nil
	})
	sort.Strings(names)
	return names
}

// Collection decodes one bundled collection.
func Collection(name string) (store.Collection, error) {
	data, err := collections.ReadFile(path.Join(root, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("%w: bundled %s", store.ErrNotFound, name)
	}
	return store.Decode(data, "")
}

// Option configures Seed.
type Option func(*options)

type options struct {
	overwrite bool
	logger    log.Logger
}

// WithOverwrite replaces collections that already exist.
func WithOverwrite() Option {
	return func(o *options) {
		o.overwrite = true
	}
}

// WithLogger reports each seeded collection at info level.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Seed saves every bundled collection that s does not hold yet and returns
// the names it wrote. Existing collections are left alone unless
// WithOverwrite is given.
func Seed(ctx context.Context, s store.CollectionStore, opts ...Option) ([]string, error) {
	o := &options{logger: &log.NoOpLogger{}}
	for _, opt := range opts {
		opt(o)
	}

	var written []string
	for _, name := range Names() {
		if !o.overwrite {
			_, err := s.Load(ctx, name)
			if err == nil {
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				return written, fmt.Errorf("check %s: %w", name, err)
			}
		}

		c, err := Collection(name)
		if err != nil {
			return written, err
		}
		if err := s.Save(ctx, name, c); err != nil {
			return written, fmt.Errorf("seed %s: %w", name, err)
		}
		o.logger.Info("seeded collection %s (%d records)", name, len(c))
		written = append(written, name)
	}
	return written, nil
}
