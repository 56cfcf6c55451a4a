// Package store persists named pipelines in a local SQLite database so they
// survive the process. A pipeline is stored in whichever form it was saved
// in, text or bytecode, and handed back verbatim.
package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/atplang/atp/pkg/atperr"
)

// Format tags the stored representation.
type Format string

const (
	FormatText     Format = "text"
	FormatBytecode Format = "bytecode"
)

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, atperr.Newf(atperr.CodeFileOpeningError, "store.Open", "%s: %v", path, err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, atperr.Newf(atperr.CodeFileOpeningError, "store.Open",
			"setting busy timeout: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS pipelines (
		name   TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		data   BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, atperr.Newf(atperr.CodeFileOpeningError, "store.Open",
			"creating table: %v", err)
	}
	return &Store{db: db}, nil
}

// OpenDefault opens the database at its conventional location,
// ~/.atp/pipelines.db, creating the directory when needed.
func OpenDefault() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, atperr.Newf(atperr.CodeFileOpeningError, "store.OpenDefault", "%v", err)
	}
	dir := filepath.Join(home, ".atp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, atperr.Newf(atperr.CodeFileOpeningError, "store.OpenDefault", "%v", err)
	}
	return Open(filepath.Join(dir, "pipelines.db"))
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a pipeline under name, replacing any previous entry.
func (s *Store) Save(name string, format Format, data []byte) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO pipelines (name, format, data) VALUES (?, ?, ?)",
		name, string(format), data)
	if err != nil {
		return atperr.Newf(atperr.CodeFileWritingError, "store.Save", "%s: %v", name, err)
	}
	return nil
}

// Load returns a pipeline's format and data. Fails with TokenArrayNotFound
// for unknown names.
func (s *Store) Load(name string) (Format, []byte, error) {
	var format string
	var data []byte
	err := s.db.QueryRow(
		"SELECT format, data FROM pipelines WHERE name = ?", name,
	).Scan(&format, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, atperr.Newf(atperr.CodeTokenArrayNotFound, "store.Load",
			"no pipeline named %q", name)
	}
	if err != nil {
		return "", nil, atperr.Newf(atperr.CodeFileReadingError, "store.Load", "%s: %v", name, err)
	}
	return Format(format), data, nil
}

// List returns the stored pipeline names in alphabetical order.
func (s *Store) List() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM pipelines ORDER BY name")
	if err != nil {
		return nil, atperr.Newf(atperr.CodeFileReadingError, "store.List", "%v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, atperr.Newf(atperr.CodeFileReadingError, "store.List", "%v", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, atperr.Newf(atperr.CodeFileReadingError, "store.List", "%v", err)
	}
	return names, nil
}

// Delete removes a stored pipeline. Fails with TokenArrayNotFound for
// unknown names.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec("DELETE FROM pipelines WHERE name = ?", name)
	if err != nil {
		return atperr.Newf(atperr.CodeFileWritingError, "store.Delete", "%s: %v", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return atperr.Newf(atperr.CodeFileWritingError, "store.Delete", "%s: %v", name, err)
	}
	if n == 0 {
		return atperr.Newf(atperr.CodeTokenArrayNotFound, "store.Delete",
			"no pipeline named %q", name)
	}
	return nil
}
