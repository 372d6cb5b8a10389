package simulation

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/logger"
	"github.com/yourusername/shootout-odds/internal/metrics"
	"github.com/yourusername/shootout-odds/internal/models"
	"github.com/yourusername/shootout-odds/internal/probability"
)

// SourceResolver builds a probability source for a participant under a model
type SourceResolver interface {
	SourceFor(ctx context.Context, model probability.Model, p models.Participant) (contest.ProbabilitySource, error)
}

// Exclusion records a participant left out of a field
type Exclusion struct {
	Participant models.Participant `json:"participant"`
	Reason      string             `json:"reason"`
}

// Field is a resolved set of participants ready for aggregation
type Field struct {
	Model        probability.Model
	Participants []models.Participant
	Excluded     []Exclusion
	sources      map[int64]contest.ProbabilitySource
}

// SourceFor returns the resolved source for a participant of the field
func (f *Field) SourceFor(_ context.Context, p models.Participant) (contest.ProbabilitySource, error) {
	source, ok := f.sources[p.ID]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrMissingSource, p)
	}
	return source, nil
}

// FieldBuilder resolves probability sources for a list of participants.
// With SkipMissingResults set, participants without a previous contest result
// are dropped from the field instead of failing the run.
type FieldBuilder struct {
	Resolver           SourceResolver
	Model              probability.Model
	SkipMissingResults bool
	Logger             *logger.SimulationLogger
}

// Build resolves every participant's source
func (b *FieldBuilder) Build(ctx context.Context, participants []models.Participant) (*Field, error) {
	if b.Resolver == nil {
		return nil, errors.New("source resolver is required")
	}

	field := &Field{
		Model:   b.Model,
		sources: make(map[int64]contest.ProbabilitySource, len(participants)),
	}
	for _, p := range participants {
		source, err := b.Resolver.SourceFor(ctx, b.Model, p)
		if err != nil {
			if b.SkipMissingResults && errors.Is(err, models.ErrNotFound) {
				field.Excluded = append(field.Excluded, Exclusion{Participant: p, Reason: err.Error()})
				metrics.RecordExclusion("missing_stats")
				if b.Logger != nil {
					b.Logger.LogExclusion(p.String(), err.Error())
				}
				continue
			}
			return nil, fmt.Errorf("%w for %s: %w", ErrMissingSource, p, err)
		}
		field.Participants = append(field.Participants, p)
		field.sources[p.ID] = source
	}

	if len(field.Participants) == 0 {
		return nil, contest.ErrEmptyField
	}
	metrics.UpdateFieldSize(len(field.Participants))
	return field, nil
}
