package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Sync state keys.
const (
	KeyLastActivitySync = "last_activity_sync"
)

// GetSyncState retrieves a sync state value by key.
// Returns empty string if key doesn't exist.
func (s *Store) GetSyncState(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM sync_state WHERE key = ?
	`, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetSyncState sets a sync state value
func (s *Store) SetSyncState(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// LastSync returns the stored time for key, or the zero time when the key
// is unset or unparsable.
func (s *Store) LastSync(ctx context.Context, key string) (time.Time, error) {
	v, err := s.GetSyncState(ctx, key)
	if err != nil || v == "" {
		return time.Time{}, err
	}
	t, err := parseTime(v)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}

// SetLastSync records t under key.
func (s *Store) SetLastSync(ctx context.Context, key string, t time.Time) error {
	return s.SetSyncState(ctx, key, formatTime(t))
}
