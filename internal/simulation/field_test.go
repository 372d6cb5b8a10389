package simulation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/models"
	"github.com/yourusername/shootout-odds/internal/probability"
)

type stubResolver struct {
	errs map[int64]error
}

func (s *stubResolver) SourceFor(_ context.Context, _ probability.Model, p models.Participant) (contest.ProbabilitySource, error) {
	if err, ok := s.errs[p.ID]; ok {
		return nil, err
	}
	return constantSource(0.4), nil
}

func TestFieldBuilderSkipsMissingResults(t *testing.T) {
	resolver := &stubResolver{errs: map[int64]error{
		2: fmt.Errorf("contest result for Rookie (2): %w", models.ErrNotFound),
	}}
	builder := &FieldBuilder{Resolver: resolver, Model: probability.ModelBayesian, SkipMissingResults: true}
	participants := []models.Participant{{ID: 1, Name: "Veteran"}, {ID: 2, Name: "Rookie"}, {ID: 3, Name: "Sniper"}}

	field, err := builder.Build(context.Background(), participants)
	require.NoError(t, err)

	assert.Equal(t, []models.Participant{participants[0], participants[2]}, field.Participants)
	require.Len(t, field.Excluded, 1)
	assert.Equal(t, int64(2), field.Excluded[0].Participant.ID)

	source, err := field.SourceFor(context.Background(), participants[0])
	require.NoError(t, err)
	assert.NotNil(t, source)

	_, err = field.SourceFor(context.Background(), participants[1])
	assert.ErrorIs(t, err, ErrMissingSource)
}

func TestFieldBuilderFailsWithoutSkip(t *testing.T) {
	resolver := &stubResolver{errs: map[int64]error{2: models.ErrNotFound}}
	builder := &FieldBuilder{Resolver: resolver, Model: probability.ModelBayesian}

	_, err := builder.Build(context.Background(), []models.Participant{{ID: 1}, {ID: 2}})
	assert.ErrorIs(t, err, ErrMissingSource)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFieldBuilderOtherErrorsAreFatal(t *testing.T) {
	resolver := &stubResolver{errs: map[int64]error{1: errors.New("stats api unavailable")}}
	builder := &FieldBuilder{Resolver: resolver, SkipMissingResults: true}

	_, err := builder.Build(context.Background(), []models.Participant{{ID: 1}})
	assert.ErrorIs(t, err, ErrMissingSource)
}

func TestFieldBuilderAllExcluded(t *testing.T) {
	resolver := &stubResolver{errs: map[int64]error{1: models.ErrNotFound}}
	builder := &FieldBuilder{Resolver: resolver, SkipMissingResults: true}

	_, err := builder.Build(context.Background(), []models.Participant{{ID: 1}})
	assert.ErrorIs(t, err, contest.ErrEmptyField)
}

func TestFieldFeedsAggregator(t *testing.T) {
	builder := &FieldBuilder{Resolver: &stubResolver{}}
	participants := []models.Participant{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}, {ID: 4, Name: "D"}}

	field, err := builder.Build(context.Background(), participants)
	require.NoError(t, err)

	agg := &Aggregator{Layout: contest.DefaultLayout(), Workers: 2, Seed: 99}
	result, err := agg.Run(context.Background(), field.Participants, field.SourceFor, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, result.TotalWins())
}
