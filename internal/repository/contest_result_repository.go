package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/shootout-odds/internal/database"
	"github.com/yourusername/shootout-odds/internal/models"
)

// PostgresContestResultRepository implements ContestResultRepository for PostgreSQL
type PostgresContestResultRepository struct {
	db *database.DB
}

// NewPostgresContestResultRepository creates a new contest result repository
func NewPostgresContestResultRepository(db *database.DB) ContestResultRepository {
	return &PostgresContestResultRepository{db: db}
}

// Get retrieves the cached contest result for a player
func (r *PostgresContestResultRepository) Get(ctx context.Context, playerID int64) (*models.ContestResult, error) {
	query := `
		SELECT player_id, made, attempted, dew_made, dew_attempted
		FROM contest_results WHERE player_id = $1
	`

	c := &models.ContestResult{}
	err := r.db.QueryRow(ctx, query, playerID).Scan(
		&c.PlayerID, &c.Made, &c.Attempted, &c.DewMade, &c.DewAttempted,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contest result: %w", err)
	}

	return c, nil
}

// Put inserts or replaces a player's contest result
func (r *PostgresContestResultRepository) Put(ctx context.Context, c *models.ContestResult) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("player %d: %w", c.PlayerID, err)
	}

	query := `
		INSERT INTO contest_results (player_id, made, attempted, dew_made, dew_attempted)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id) DO UPDATE SET
			made = EXCLUDED.made,
			attempted = EXCLUDED.attempted,
			dew_made = EXCLUDED.dew_made,
			dew_attempted = EXCLUDED.dew_attempted,
			updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, c.PlayerID, c.Made, c.Attempted, c.DewMade, c.DewAttempted)
	if err != nil {
		return fmt.Errorf("failed to store contest result: %w", err)
	}

	return nil
}
