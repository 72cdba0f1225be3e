package store

import (
	"database/sql"
	"time"
)

// Store is the application's data access layer.
type Store struct {
	db *sql.DB
}

// newStore creates a Store from a migrated database connection.
func newStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Timestamps are stored as RFC3339 text in UTC so that string order is
// time order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
