package models

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

var (
	db   *sql.DB      // DuckDB handle backing the notes store
	dbMu sync.RWMutex // Serializes writes against concurrent reads
)

// InitDB opens the DuckDB database at path and runs migrations.
// An empty path opens an in-memory database.
func InitDB(path string) error {
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return serr.Wrap(err, "failed to create database directory", "path", path)
			}
		}
	}

	handle, err := sql.Open("duckdb", path)
	if err != nil {
		return serr.Wrap(err, "failed to open database", "path", path)
	}

	if err := migrateDB(handle); err != nil {
		handle.Close()
		return serr.Wrap(err, "failed to migrate database")
	}

	dbMu.Lock()
	db = handle
	dbMu.Unlock()

	logger.Info("Database initialized", "path", path)
	return nil
}

// InitTestDB starts from a clean database file at path.
// Tests pass an empty path to get a throwaway in-memory database.
func InitTestDB(path string) error {
	if path != "" {
		os.Remove(path)
		os.Remove(path + ".wal")
	}
	return InitDB(path)
}

// CloseDB closes the database connection
func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db != nil {
		db.Close()
		db = nil
	}
}

// writeDB executes a mutating statement under the write lock
// and reports how many rows it touched.
func writeDB(query string, args ...interface{}) (int64, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db == nil {
		return 0, serr.New("database not initialized - call InitDB first")
	}

	result, err := db.Exec(query, args...)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, serr.Wrap(err, "failed to read affected rows")
	}
	return affected, nil
}

// queryDB runs a read query under the read lock
func queryDB(query string, args ...interface{}) (*sql.Rows, error) {
	dbMu.RLock()
	defer dbMu.RUnlock()

	if db == nil {
		return nil, serr.New("database not initialized - call InitDB first")
	}
	return db.Query(query, args...)
}

// queryRowDB runs a single-row read query under the read lock.
// Callers must check the returned error before scanning.
func queryRowDB(query string, args ...interface{}) (*sql.Row, error) {
	dbMu.RLock()
	defer dbMu.RUnlock()

	if db == nil {
		return nil, serr.New("database not initialized - call InitDB first")
	}
	return db.QueryRow(query, args...), nil
}
