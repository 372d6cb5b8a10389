package service

import (
	"context"
	"fmt"

	"github.com/yourusername/shootout-odds/internal/models"
)

// StaticDirectory serves a fixed field, usually from configuration
type StaticDirectory struct {
	participants []models.Participant
}

// NewStaticDirectory copies participants into a directory
func NewStaticDirectory(participants []models.Participant) *StaticDirectory {
	list := make([]models.Participant, len(participants))
	copy(list, participants)
	return &StaticDirectory{participants: list}
}

// Participants returns a copy of the configured field
func (d *StaticDirectory) Participants(_ context.Context) ([]models.Participant, error) {
	list := make([]models.Participant, len(d.participants))
	copy(list, d.participants)
	return list, nil
}

// ValidatingDirectory drops entries from an upstream directory that fail validation
type ValidatingDirectory struct {
	upstream  models.ParticipantDirectory
	validator *DataValidator
}

// NewValidatingDirectory wraps upstream with participant validation
func NewValidatingDirectory(upstream models.ParticipantDirectory, validator *DataValidator) *ValidatingDirectory {
	return &ValidatingDirectory{upstream: upstream, validator: validator}
}

// Participants returns the valid upstream entries in upstream order, without duplicates
func (d *ValidatingDirectory) Participants(ctx context.Context) ([]models.Participant, error) {
	all, err := d.upstream.Participants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	seen := make(map[int64]bool, len(all))
	var valid []models.Participant
	for _, p := range all {
		if len(d.validator.ValidateParticipant(p)) > 0 || seen[p.ID] {
			d.validator.logger.WithField("participant", p.String()).Warn("skipping participant")
			continue
		}
		seen[p.ID] = true
		valid = append(valid, p)
	}
	return valid, nil
}

// NewDirectory prefers the configured field and falls back to the remote directory
func NewDirectory(configured []models.Participant, remote models.ParticipantDirectory, validator *DataValidator) models.ParticipantDirectory {
	if len(configured) > 0 {
		return NewStaticDirectory(configured)
	}
	return NewValidatingDirectory(remote, validator)
}
