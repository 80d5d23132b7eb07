package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"
)

var (
	// ErrNotFound is returned when the backing document of a collection does not exist.
	ErrNotFound = errors.New("collection not found")

	// ErrMalformed is returned when a stored document is not a JSON array of objects.
	ErrMalformed = errors.New("collection document is malformed")

	// ErrIO is returned for read or write failures of the backing medium.
	ErrIO = errors.New("collection store I/O failure")
)

// Record is a flat set of named primitive fields, e.g. one song or one task.
type Record map[string]any

// String returns the field as a string, or "" when missing.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Collection is the ordered set of records persisted as one document.
type Collection []Record

// Clone returns a copy that shares no maps with c.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, r := range c {
		cp := make(Record, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}

// CollectionStore persists whole collections by name.
// Load and Save always operate on the complete document.
type CollectionStore interface {
	// Load reads the named collection.
	// It fails with ErrNotFound if there is no document and ErrMalformed if it does not parse.
	Load(ctx context.Context, name string) (Collection, error)

	// Save replaces the named collection.
	Save(ctx context.Context, name string, c Collection) error
}

// Decode parses a collection document. If rootKey is set the document is
// expected to be an object holding the array under that key.
func Decode(data []byte, rootKey string) (Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if rootKey == "" {
		var c Collection
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if c == nil {
			return nil, fmt.Errorf("%w: document is not an array", ErrMalformed)
		}
		if err := expectEOF(dec); err != nil {
			return nil, err
		}
		for i, r := range c {
			if r == nil {
				return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformed, i)
			}
		}
		return c, nil
	}

	var envelope map[string]json.RawMessage
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	raw, ok := envelope[rootKey]
	if !ok {
		return nil, fmt.Errorf("%w: missing root key %q", ErrMalformed, rootKey)
	}
	return Decode(raw, "")
}

// expectEOF rejects anything but whitespace after the first JSON value.
func expectEOF(dec *json.Decoder) error {
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after document", ErrMalformed)
	}
	return nil
}

// Encode serializes a collection as indented JSON, wrapping it under rootKey when set.
func Encode(c Collection, rootKey string) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	var v any = c
	if rootKey != "" {
		v = map[string]any{rootKey: c}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode collection: %v", ErrIO, err)
	}
	return data, nil
}

type lockKey struct {
	s    CollectionStore
	name string
}

// locks serialises read-modify-write cycles per store and collection name
// within the process. Entries are never removed.
var locks sync.Map

func lockFor(s CollectionStore, name string) *sync.Mutex {
	key := lockKey{s: s, name: name}
	if !reflect.TypeOf(s).Comparable() {
		// uncomparable store values share one lock per name
		key.s = nil
	}
	mu, _ := locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Update loads the named collection, passes it to fn and saves the result
// when fn reports a change. Concurrent Update calls for the same store and
// name are serialised.
func Update(ctx context.Context, s CollectionStore, name string, fn func(Collection) (Collection, bool, error)) error {
	mu := lockFor(s, name)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.Load(ctx, name)
	if err != nil {
		return err
	}
	updated, changed, err := fn(c)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.Save(ctx, name, updated)
}

// Outcome reports what a single-record mutation did.
type Outcome int

const (
	// NotFound means no record matched and nothing was written.
	NotFound Outcome = iota
	// Updated means the first matching record was changed and the collection saved.
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case NotFound:
		return "not found"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// UpdateFirst applies fn to the first record for which match returns true and
// saves the collection. Later matches are left alone. When nothing matches
// the collection is not rewritten and NotFound is returned.
func UpdateFirst(ctx context.Context, s CollectionStore, name string, match func(Record) bool, fn func(Record)) (Outcome, error) {
	outcome := NotFound
	err := Update(ctx, s, name, func(c Collection) (Collection, bool, error) {
		for _, r := range c {
			if match(r) {
				fn(r)
				outcome = Updated
				return c, true, nil
			}
		}
		return c, false, nil
	})
	if err != nil {
		return NotFound, err
	}
	return outcome, nil
}
