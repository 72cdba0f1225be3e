package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fitcoach/internal/planning"
)

// SaveBundle stores a freshly computed bundle and returns its id.
// Bundles are append-only; the newest one is the current plan.
func (s *Store) SaveBundle(ctx context.Context, b planning.PlanBundle) (string, error) {
	payload, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encoding bundle: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO plan_bundles (
			id, created_at, experience_level, persona, dominant_system, next_transition, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, formatTime(b.ComputedAt), b.Level.String(), b.Persona.Persona.String(),
		b.Profile.Dominant.String(), formatTime(b.Plan.NextPhaseTransition), string(payload))
	if err != nil {
		return "", fmt.Errorf("inserting bundle: %w", err)
	}
	return id, nil
}

// LatestBundle returns the most recently computed bundle.
func (s *Store) LatestBundle(ctx context.Context) (*BundleRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, payload
		FROM plan_bundles
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`)
	rec, err := scanBundle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoBundle
	}
	return rec, err
}

// ListBundles returns up to limit bundles, newest first.
func (s *Store) ListBundles(ctx context.Context, limit int) ([]BundleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, payload
		FROM plan_bundles
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BundleRecord
	for rows.Next() {
		rec, err := scanBundle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBundle(r rowScanner) (*BundleRecord, error) {
	var rec BundleRecord
	var createdAt, payload string
	if err := r.Scan(&rec.ID, &createdAt, &payload); err != nil {
		return nil, err
	}

	t, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing bundle %s created_at: %w", rec.ID, err)
	}
	rec.CreatedAt = t

	if err := json.Unmarshal([]byte(payload), &rec.Bundle); err != nil {
		return nil, fmt.Errorf("decoding bundle %s: %w", rec.ID, err)
	}
	return &rec, nil
}
