// Package store reads and writes Money Manager ledger databases via SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrDBMissing means Open was pointed at a path with no database file.
	ErrDBMissing = errors.New("database file not found")
	// ErrDBExists means Create was pointed at a path that already has one.
	ErrDBExists = errors.New("database file already exists")
)

// Store wraps a single ledger database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens an existing ledger database. A missing file is an error rather
// than an implicit create, so a mistyped path cannot produce an empty ledger.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDBMissing, path)
		}
		return nil, fmt.Errorf("checking database: %w", err)
	}
	return open(path)
}

// Create makes a new empty ledger database, refusing to touch an existing one.
func Create(path string) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDBExists, path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking database: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating database dir: %w", err)
	}
	return open(path)
}

func open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Counts reports table sizes, used for status output after imports.
func (s *Store) Counts() (transactions, categories, assets int, err error) {
	if err = s.db.QueryRow("SELECT COUNT(*) FROM INOUTCOME").Scan(&transactions); err != nil {
		return 0, 0, 0, err
	}
	if err = s.db.QueryRow("SELECT COUNT(*) FROM ZCATEGORY").Scan(&categories); err != nil {
		return 0, 0, 0, err
	}
	if err = s.db.QueryRow("SELECT COUNT(*) FROM ASSETS").Scan(&assets); err != nil {
		return 0, 0, 0, err
	}
	return transactions, categories, assets, nil
}
