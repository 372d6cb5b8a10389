package service

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/shootout-odds/internal/models"
)

// DataValidator checks remote stats before they are cached
type DataValidator struct {
	logger *logrus.Entry
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	return &DataValidator{logger: logger.WithField("component", "validator")}
}

// ValidateProfile returns every problem found in a shot profile
func (v *DataValidator) ValidateProfile(profile *models.ShotProfile) []string {
	var errors []string

	if profile.PlayerID <= 0 {
		errors = append(errors, fmt.Sprintf("player_id must be positive, got %d", profile.PlayerID))
	}

	if !isCount(profile.RecentAttempts) {
		errors = append(errors, fmt.Sprintf("recent_attempts must be a non-negative number, got %v", profile.RecentAttempts))
	}

	if isCount(profile.RecentMakes) && profile.RecentMakes > profile.RecentAttempts {
		errors = append(errors, fmt.Sprintf("recent_makes %v exceed recent_attempts %v", profile.RecentMakes, profile.RecentAttempts))
	}

	errors = append(errors, v.validateZone("regular", profile.Regular)...)
	errors = append(errors, v.validateZone("long", profile.Long)...)

	if len(errors) > 0 {
		v.logger.WithField("player_id", profile.PlayerID).Debugf("profile rejected: %v", errors)
	}
	return errors
}

func (v *DataValidator) validateZone(name string, zone models.ZoneStats) []string {
	var errors []string

	if !isCount(zone.Attempts) {
		errors = append(errors, fmt.Sprintf("%s attempts must be a non-negative number, got %v", name, zone.Attempts))
	}

	if !isCount(zone.Made) {
		errors = append(errors, fmt.Sprintf("%s made must be a non-negative number, got %v", name, zone.Made))
	} else if zone.Made > zone.Attempts {
		errors = append(errors, fmt.Sprintf("%s made %v exceed attempts %v", name, zone.Made, zone.Attempts))
	}

	if math.IsNaN(zone.Percentage) || zone.Percentage < 0 || zone.Percentage > 1 {
		errors = append(errors, fmt.Sprintf("%s percentage must be within [0,1], got %v", name, zone.Percentage))
	}

	return errors
}

// ValidateContestResult returns every problem found in a contest result
func (v *DataValidator) ValidateContestResult(result *models.ContestResult) []string {
	var errors []string

	if result.PlayerID <= 0 {
		errors = append(errors, fmt.Sprintf("player_id must be positive, got %d", result.PlayerID))
	}

	if err := result.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("made %d/%d, dew made %d/%d: %v",
			result.Made, result.Attempted, result.DewMade, result.DewAttempted, err))
	}

	return errors
}

// ValidateParticipant checks a directory entry
func (v *DataValidator) ValidateParticipant(p models.Participant) []string {
	var errors []string

	if p.ID <= 0 {
		errors = append(errors, fmt.Sprintf("participant id must be positive, got %d", p.ID))
	}

	if p.Name == "" {
		errors = append(errors, "participant name is required")
	}

	return errors
}

func isCount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
