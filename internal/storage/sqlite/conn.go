// Package sqlite is the local storage backend. It implements the same
// repository interfaces the Supabase backend does, against a single database
// file, so the server runs fully offline when configured with
// storage.driver=sqlite.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) the database file at path and enables WAL journal
// mode and foreign keys.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
