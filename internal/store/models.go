package store

import (
	"time"

	"fitcoach/internal/planning"
)

// Session sources.
const (
	SourceManual = "manual"
	SourceStrava = "strava"
)

// Auth represents OAuth tokens for Strava API access
type Auth struct {
	AthleteID    int64     `db:"athlete_id"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// BundleRecord is a stored plan bundle
type BundleRecord struct {
	ID        string              `db:"id" json:"id"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
	Bundle    planning.PlanBundle `db:"payload" json:"bundle"`
}

// Session is one completed training session
type Session struct {
	ID              string                `db:"id" json:"id"`
	PerformedAt     time.Time             `db:"performed_at" json:"performed_at"`
	System          planning.EnergySystem `db:"system" json:"system"`
	Source          string                `db:"source" json:"source"`
	ExternalID      string                `db:"external_id" json:"external_id,omitempty"` // "" for manual sessions
	Name            string                `db:"name" json:"name,omitempty"`
	DurationSeconds int                   `db:"duration_seconds" json:"duration_seconds"`
	AvgHeartrate    *float64              `db:"avg_heartrate" json:"avg_heartrate,omitempty"` // nullable
	Note            string                `db:"note" json:"note,omitempty"`
}
