// Package sqlite provides SQLite-backed storage for collections.
//
// Each collection is a single row keyed by name. The document column holds the
// encoded JSON array, so the stored form matches what the file backend writes.
//
// # Basic Usage
//
//	s, err := sqlite.NewSqliteCollectionStore(sqlite.SqliteOptions{
//		Path:      "./data/kernelplay.db",
//		TableName: "collections", // Optional table name
//	})
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	songs, err := s.Load(ctx, "musiclibrary/musiclibrary")
//
// # Schema
//
//	CREATE TABLE IF NOT EXISTS collections (
//		name TEXT PRIMARY KEY,
//		document TEXT NOT NULL,
//		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
//
// The table is created by NewSqliteCollectionStore. Save is an upsert.
//
// The driver is github.com/mattn/go-sqlite3, which requires cgo.
package sqlite
