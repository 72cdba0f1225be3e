package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fitcoach/internal/planning"
)

const sessionColumns = `id, performed_at, system, source, external_id, name, duration_seconds, avg_heartrate, note`

// AddSession stores a manually logged session. An empty ID is filled in.
func (s *Store) AddSession(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.Source == "" {
		sess.Source = SourceManual
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sess.ID, formatTime(sess.PerformedAt), sess.System.String(), sess.Source,
		nullString(sess.ExternalID), nullString(sess.Name), sess.DurationSeconds,
		sess.AvgHeartrate, nullString(sess.Note))
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// UpsertImportedSession inserts or refreshes a session keyed by its
// external id. It reports whether a new row was created.
func (s *Store) UpsertImportedSession(ctx context.Context, sess *Session) (bool, error) {
	if sess.ExternalID == "" {
		return false, errors.New("imported session needs an external id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM sessions WHERE external_id = ?`, sess.ExternalID).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if sess.ID == "" {
			sess.ID = uuid.NewString()
		}
	case err != nil:
		return false, err
	default:
		sess.ID = existing
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			performed_at = excluded.performed_at,
			system = excluded.system,
			name = excluded.name,
			duration_seconds = excluded.duration_seconds,
			avg_heartrate = excluded.avg_heartrate
	`, sess.ID, formatTime(sess.PerformedAt), sess.System.String(), sess.Source,
		sess.ExternalID, nullString(sess.Name), sess.DurationSeconds,
		sess.AvgHeartrate, nullString(sess.Note))
	if err != nil {
		return false, fmt.Errorf("upserting session %s: %w", sess.ExternalID, err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return existing == "", nil
}

// GetSession returns one session by id.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	return sess, err
}

// DeleteSession removes a session by id.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// RecentSessions returns up to limit sessions, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		ORDER BY performed_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// SessionsSince returns sessions performed at or after since, oldest first.
func (s *Store) SessionsSince(ctx context.Context, since time.Time) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE performed_at >= ?
		ORDER BY performed_at ASC, rowid ASC
	`, formatTime(since))
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// CountSessions returns the number of stored sessions per source.
func (s *Store) CountSessions(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source, COUNT(*) FROM sessions GROUP BY source`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return nil, err
		}
		counts[source] = n
	}
	return counts, rows.Err()
}

func collectSessions(rows *sql.Rows) ([]Session, error) {
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sess)
	}
	return out, rows.Err()
}

func scanSession(r rowScanner) (*Session, error) {
	var sess Session
	var performedAt, system string
	var externalID, name, note sql.NullString
	var avgHR sql.NullFloat64

	err := r.Scan(&sess.ID, &performedAt, &system, &sess.Source, &externalID,
		&name, &sess.DurationSeconds, &avgHR, &note)
	if err != nil {
		return nil, err
	}

	t, err := parseTime(performedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing session %s performed_at: %w", sess.ID, err)
	}
	sess.PerformedAt = t

	sys, err := planning.ParseEnergySystem(system)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sess.ID, err)
	}
	sess.System = sys

	sess.ExternalID = externalID.String
	sess.Name = name.String
	sess.Note = note.String
	if avgHR.Valid {
		hr := avgHR.Float64
		sess.AvgHeartrate = &hr
	}
	return &sess, nil
}
