package models

import "context"

// HistoricalStatsProvider supplies a player's historical shooting data
type HistoricalStatsProvider interface {
	// GetShotProfile returns the player's recent shot profile
	GetShotProfile(ctx context.Context, playerID int64) (*ShotProfile, error)

	// GetContestResult returns the player's previous contest result or ErrNotFound
	GetContestResult(ctx context.Context, playerID int64) (*ContestResult, error)
}

// LocationProbabilityModel returns a success probability per shot location
type LocationProbabilityModel interface {
	Predict(ctx context.Context, playerID int64, locations []LocationDescriptor) ([]float64, error)
}

// ParticipantDirectory enumerates the field entering a contest
type ParticipantDirectory interface {
	Participants(ctx context.Context) ([]Participant, error)
}
