package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/shootout-odds/internal/database"
	"github.com/yourusername/shootout-odds/internal/models"
)

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *database.DB
}

// NewPostgresProfileRepository creates a new profile repository
func NewPostgresProfileRepository(db *database.DB) ProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// Get retrieves the cached profile for a player
func (r *PostgresProfileRepository) Get(ctx context.Context, playerID int64) (*models.ShotProfile, error) {
	query := `
		SELECT player_id, recent_attempts, recent_makes,
		       regular_made, regular_attempts, regular_pct,
		       long_made, long_attempts, long_pct, fetched_at
		FROM player_shot_profiles WHERE player_id = $1
	`

	p := &models.ShotProfile{}
	err := r.db.QueryRow(ctx, query, playerID).Scan(
		&p.PlayerID, &p.RecentAttempts, &p.RecentMakes,
		&p.Regular.Made, &p.Regular.Attempts, &p.Regular.Percentage,
		&p.Long.Made, &p.Long.Attempts, &p.Long.Percentage, &p.FetchedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shot profile: %w", err)
	}

	return p, nil
}

// Put inserts or replaces a player's profile
func (r *PostgresProfileRepository) Put(ctx context.Context, p *models.ShotProfile) error {
	query := `
		INSERT INTO player_shot_profiles (
			player_id, recent_attempts, recent_makes,
			regular_made, regular_attempts, regular_pct,
			long_made, long_attempts, long_pct, fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (player_id) DO UPDATE SET
			recent_attempts = EXCLUDED.recent_attempts,
			recent_makes = EXCLUDED.recent_makes,
			regular_made = EXCLUDED.regular_made,
			regular_attempts = EXCLUDED.regular_attempts,
			regular_pct = EXCLUDED.regular_pct,
			long_made = EXCLUDED.long_made,
			long_attempts = EXCLUDED.long_attempts,
			long_pct = EXCLUDED.long_pct,
			fetched_at = EXCLUDED.fetched_at
	`

	_, err := r.db.Exec(ctx, query,
		p.PlayerID, p.RecentAttempts, p.RecentMakes,
		p.Regular.Made, p.Regular.Attempts, p.Regular.Percentage,
		p.Long.Made, p.Long.Attempts, p.Long.Percentage, p.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store shot profile: %w", err)
	}

	return nil
}
