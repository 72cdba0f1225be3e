package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			athlete_id INTEGER NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Plan bundles; payload is the full JSON bundle, the other
		// columns are denormalised for listing.
		`CREATE TABLE IF NOT EXISTS plan_bundles (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			experience_level TEXT NOT NULL,
			persona TEXT NOT NULL,
			dominant_system TEXT NOT NULL,
			next_transition TEXT NOT NULL,
			payload TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_plan_bundles_created ON plan_bundles(created_at)`,

		// Completed sessions, logged by hand or imported from Strava
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			performed_at TEXT NOT NULL,
			system TEXT NOT NULL,
			source TEXT NOT NULL CHECK (source IN ('manual', 'strava')),
			external_id TEXT UNIQUE,
			name TEXT,
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			avg_heartrate REAL,
			note TEXT,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_performed ON sessions(performed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_system ON sessions(system)`,

		// Sync State (key-value store for sync tracking)
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
