package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entries (
	file  TEXT NOT NULL,
	key   TEXT NOT NULL,
	value BLOB NOT NULL,
	PRIMARY KEY (file, key)
);`

// SqliteStore keeps every logical store file in one SQLite database,
// one row per (file, key). Values are JSON blobs, matching the file
// backend's encoding so the two stay interchangeable.
type SqliteStore struct {
	db *sql.DB
}

func OpenSqliteStore(path string) (*SqliteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) Exists(key, file string) (bool, error) {
	if err := checkArgs(key, file); err != nil {
		return false, err
	}

	var one int
	err := s.db.QueryRow(`SELECT 1 FROM entries WHERE file = ? AND key = ?`, file, key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying key %q: %w", key, err)
	}
	return true, nil
}

func (s *SqliteStore) Read(key, file string, out any) (bool, error) {
	if err := checkArgs(key, file); err != nil {
		return false, err
	}

	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM entries WHERE file = ? AND key = ?`, file, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading key %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshalling key %q: %w", key, err)
	}
	return true, nil
}

func (s *SqliteStore) Write(key string, value any, file string) error {
	if err := checkArgs(key, file); err != nil {
		return err
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshalling key %q: %w", key, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO entries (file, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (file, key) DO UPDATE SET value = excluded.value`,
		file, key, b,
	)
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

func (s *SqliteStore) DeleteFile(file string) error {
	if file == "" {
		return fmt.Errorf("%w: file must not be empty", ErrInvalidArgument)
	}

	if _, err := s.db.Exec(`DELETE FROM entries WHERE file = ?`, file); err != nil {
		return fmt.Errorf("deleting store file: %w", err)
	}
	return nil
}
