// Package prefs persists user preferences, such as whether the onboarding
// tour has been completed, in a small SQLite database.
package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// FileName is the database file created inside the data directory.
const FileName = "prefs.db"

// KeyOnboardingComplete records that the onboarding tour was finished.
const KeyOnboardingComplete = "onboarding.complete"

const table = "preferences"

// Store is a key/value preference store.
type Store struct {
	db     *sql.DB
	dbPath string
	sq     squirrel.StatementBuilderType
	now    func() time.Time
}

// Open opens (creating if needed) the preference database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dbPath := filepath.Join(dir, FileName)

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{
		db:     db,
		dbPath: dbPath,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		now:    time.Now,
	}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create preferences table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Get returns the value stored under key. ok is false when the key is unset.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	query, args, err := s.sq.Select("value").From(table).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("failed to build query: %w", err)
	}

	err = s.db.QueryRow(query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	query, args, err := s.sq.Insert(table).
		Columns("key", "value", "updated_at").
		Values(key, value, s.now().UTC().Format(time.RFC3339)).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Removing an unset key is not an error.
func (s *Store) Delete(key string) error {
	query, args, err := s.sq.Delete(table).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to delete preference %s: %w", key, err)
	}
	return nil
}

// OnboardingComplete reports whether the onboarding tour was finished.
func (s *Store) OnboardingComplete() (bool, error) {
	v, ok, err := s.Get(KeyOnboardingComplete)
	if err != nil || !ok {
		return false, err
	}
	return v == "true", nil
}

// SetOnboardingComplete records the onboarding state. false clears it.
func (s *Store) SetOnboardingComplete(done bool) error {
	if !done {
		return s.Delete(KeyOnboardingComplete)
	}
	return s.Set(KeyOnboardingComplete, "true")
}
