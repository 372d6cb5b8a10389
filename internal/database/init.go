package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/shootout-odds/internal/config"
)

// schema holds the stats cache tables. Statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS player_shot_profiles (
		player_id        BIGINT PRIMARY KEY,
		recent_attempts  DOUBLE PRECISION NOT NULL,
		recent_makes     DOUBLE PRECISION NOT NULL,
		regular_made     DOUBLE PRECISION NOT NULL,
		regular_attempts DOUBLE PRECISION NOT NULL,
		regular_pct      DOUBLE PRECISION NOT NULL,
		long_made        DOUBLE PRECISION NOT NULL,
		long_attempts    DOUBLE PRECISION NOT NULL,
		long_pct         DOUBLE PRECISION NOT NULL,
		fetched_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS contest_results (
		player_id     BIGINT PRIMARY KEY,
		made          INTEGER NOT NULL CHECK (made >= 0),
		attempted     INTEGER NOT NULL CHECK (attempted >= made),
		dew_made      INTEGER NOT NULL CHECK (dew_made >= 0),
		dew_attempted INTEGER NOT NULL CHECK (dew_attempted >= dew_made),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Initialize creates a connection pool and ensures the cache tables exist
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema inside a single transaction
func Migrate(ctx context.Context, db *DB) error {
	return db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
}
