package datastore

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const dbFileName = "instante.db"

// NewSQLiteDB opens (creating if needed) the dataset database under dataDir.
func NewSQLiteDB(dataDir string, readonly bool) (*sql.DB, error) {
	if !readonly {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}
	dbPath := filepath.Join(dataDir, dbFileName)
	if readonly {
		dbPath = dbPath + "?mode=ro&immutable=1&_journal_mode=OFF"
	}
	slog.Info("opening SQLite DB", "dbPath", dbPath, "driver", SQLiteDriverName)
	db, err := sql.Open(SQLiteDriverName, dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	return db, nil
}

// NewInMemorySQLiteDB opens a private in-memory database. Used by tests.
func NewInMemorySQLiteDB() (*sql.DB, error) {
	db, err := sql.Open(SQLiteDriverName, ":memory:")
	if err != nil {
		return nil, err
	}
	// every connection to :memory: gets its own database
	db.SetMaxOpenConns(1)
	return db, nil
}
