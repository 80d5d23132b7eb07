// Package store persists named collections of flat records.
//
// A collection is the ordered set of records one plugin works on: the music
// library, the recently played list, concert dates, ingredients, the to-do
// list or the currency table. A collection is always read and written whole;
// there is no partial read, no index and no schema.
//
// # Core Concepts
//
// ## Records and Collections
//
//	type Record map[string]any
//	type Collection []Record
//
// Numbers decode as json.Number so a Load followed by a Save reproduces the
// stored values exactly.
//
// ## Store Interface
//
//	type CollectionStore interface {
//	    Load(ctx context.Context, name string) (Collection, error)
//	    Save(ctx context.Context, name string, c Collection) error
//	}
//
// Load fails with ErrNotFound when there is no document for name and with
// ErrMalformed when the document is not a JSON array of objects. Other
// failures of the backing medium are reported as ErrIO. Test with errors.Is.
//
// ## Read-modify-write
//
// Update loads a collection, hands it to a callback and saves the result only
// when the callback reports a change:
//
//	err := store.Update(ctx, s, "todolist/todo", func(c store.Collection) (store.Collection, bool, error) {
//		for _, r := range c {
//			if r.String("task") == "Buy groceries" {
//				r["completed"] = true
//				return c, true, nil
//			}
//		}
//		return c, false, nil
//	})
//
// Updates of the same collection through the same store are serialised within
// the process. Nothing guards against a second process writing concurrently.
//
// # Available Implementations
//
//   - store/file: one JSON file per collection, atomic replace on save
//   - store/memory: in-process map, for tests
//   - store/redis: one string key per collection
//   - store/sqlite: one row per collection
//   - store/postgres: one JSONB row per collection
//
// store/factory selects one of them by name.
//
// # Document Envelopes
//
// Decode and Encode accept a root key. With a root key the document is an
// object holding the array under that key, e.g. {"todoList": [...]}. File,
// Redis, SQLite and Postgres stores take the root key as an option.
package store
