package models

import "time"

// ZoneStats holds makes, attempts and the make percentage for one distance band
type ZoneStats struct {
	Made       float64 `json:"made"`
	Attempts   float64 `json:"attempts"`
	Percentage float64 `json:"percentage"`
}

// ShotProfile aggregates a player's recent three-point shooting.
// Regular is the 20-24ft band, Long the 25-29ft band.
type ShotProfile struct {
	PlayerID       int64     `db:"player_id" json:"player_id"`
	RecentAttempts float64   `db:"recent_attempts" json:"recent_attempts"`
	RecentMakes    float64   `db:"recent_makes" json:"recent_makes"`
	Regular        ZoneStats `db:"-" json:"regular"`
	Long           ZoneStats `db:"-" json:"long"`
	FetchedAt      time.Time `db:"fetched_at" json:"fetched_at"`
}

// ZoneAttempts returns the combined attempts of both distance bands
func (s *ShotProfile) ZoneAttempts() float64 {
	return s.Regular.Attempts + s.Long.Attempts
}

// LongShare returns the fraction of zone attempts taken from the long band.
// Returns 0 when the player has no zone attempts.
func (s *ShotProfile) LongShare() float64 {
	total := s.ZoneAttempts()
	if total == 0 {
		return 0
	}
	return s.Long.Attempts / total
}

// ContestResult holds a player's makes and attempts from a previous contest
type ContestResult struct {
	PlayerID     int64 `db:"player_id" json:"player_id"`
	Made         int   `db:"made" json:"made"`
	Attempted    int   `db:"attempted" json:"attempted"`
	DewMade      int   `db:"dew_made" json:"dew_made"`
	DewAttempted int   `db:"dew_attempted" json:"dew_attempted"`
}

// Misses returns attempted minus made
func (c *ContestResult) Misses() int {
	return c.Attempted - c.Made
}

// DewMisses returns dew attempts minus dew makes
func (c *ContestResult) DewMisses() int {
	return c.DewAttempted - c.DewMade
}

// Validate checks counts are non-negative and makes never exceed attempts
func (c *ContestResult) Validate() error {
	if c.Made < 0 || c.Attempted < 0 || c.DewMade < 0 || c.DewAttempted < 0 {
		return ErrInvalidContestResult
	}
	if c.Made > c.Attempted || c.DewMade > c.DewAttempted {
		return ErrInvalidContestResult
	}
	return nil
}
