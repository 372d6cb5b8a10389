package repository

import (
	"context"

	"github.com/yourusername/shootout-odds/internal/models"
)

// ProfileRepository defines the interface for shot profile data access
type ProfileRepository interface {
	Get(ctx context.Context, playerID int64) (*models.ShotProfile, error)
	Put(ctx context.Context, profile *models.ShotProfile) error
}

// ContestResultRepository defines the interface for contest result data access
type ContestResultRepository interface {
	Get(ctx context.Context, playerID int64) (*models.ContestResult, error)
	Put(ctx context.Context, result *models.ContestResult) error
}
