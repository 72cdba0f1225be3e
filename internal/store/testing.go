package store

import (
	"database/sql"
)

// NewTestStore migrates sqlDB and wraps it in a Store.
// This is only intended for use in tests.
func NewTestStore(sqlDB *sql.DB) (*Store, error) {
	if err := migrate(sqlDB); err != nil {
		return nil, err
	}
	return newStore(sqlDB), nil
}
