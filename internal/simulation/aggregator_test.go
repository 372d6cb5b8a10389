package simulation

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/shootout-odds/internal/bayes"
	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/models"
	"github.com/yourusername/shootout-odds/internal/probability"
)

type constantSource float64

func (c constantSource) Thetas(_ rand.Source, _ contest.Layout) []float64 {
	thetas := make([]float64, contest.SlotCount)
	for i := range thetas {
		thetas[i] = float64(c)
	}
	return thetas
}

func sourcesByID(sources map[int64]contest.ProbabilitySource) SourceFunc {
	return func(_ context.Context, p models.Participant) (contest.ProbabilitySource, error) {
		source, ok := sources[p.ID]
		if !ok {
			return nil, models.ErrNotFound
		}
		return source, nil
	}
}

func testField(n int) ([]models.Participant, SourceFunc) {
	participants := make([]models.Participant, n)
	sources := make(map[int64]contest.ProbabilitySource, n)
	for i := range participants {
		participants[i] = models.Participant{ID: int64(i + 1), Name: "Shooter " + string(rune('A'+i))}
		source, err := probability.NewBayesian(bayes.Parameters{
			AlphaReg: 30 + float64(2*i),
			BetaReg:  40,
			AlphaDew: 5,
			BetaDew:  8,
		})
		if err != nil {
			panic(err)
		}
		sources[participants[i].ID] = source
	}
	return participants, sourcesByID(sources)
}

func TestAggregatorWinsSumToTrials(t *testing.T) {
	participants, sourceFor := testField(8)
	agg := &Aggregator{Layout: contest.DefaultLayout(), Workers: 4, Seed: 42}

	result, err := agg.Run(context.Background(), participants, sourceFor, 500)
	require.NoError(t, err)

	assert.Equal(t, 500, result.Trials)
	assert.Equal(t, 500, result.TotalWins())
	require.Len(t, result.Entries, 8)

	implied := 0.0
	finals := 0
	for i, e := range result.Entries {
		assert.Equal(t, participants[i], e.Participant)
		implied += e.ImpliedProbability
		finals += e.FinalsAppearances
		assert.Greater(t, e.MeanQualifyingScore, 0.0)
	}
	assert.InDelta(t, 100, implied, 1e-9)
	assert.Equal(t, 500*contest.FinalistCount, finals)
}

func TestAggregatorStrongerShooterDominates(t *testing.T) {
	participants := []models.Participant{{ID: 1, Name: "Sharp"}, {ID: 2, Name: "Cold"}}
	sourceFor := sourcesByID(map[int64]contest.ProbabilitySource{
		1: constantSource(0.9),
		2: constantSource(0.1),
	})
	agg := &Aggregator{Layout: contest.DefaultLayout(), Workers: 2, Seed: 7}

	result, err := agg.Run(context.Background(), participants, sourceFor, 1000)
	require.NoError(t, err)

	assert.Greater(t, result.Entries[0].Wins, 900)
	assert.Equal(t, 1000, result.Entries[0].FinalsAppearances)
	assert.Equal(t, 1000, result.Entries[1].FinalsAppearances)
}

func TestAggregatorReproducibleAcrossWorkerCounts(t *testing.T) {
	participants, sourceFor := testField(6)

	single := &Aggregator{Layout: contest.DefaultLayout(), Workers: 1, Seed: 2024}
	parallel := &Aggregator{Layout: contest.DefaultLayout(), Workers: 5, Seed: 2024}

	first, err := single.Run(context.Background(), participants, sourceFor, 300)
	require.NoError(t, err)
	second, err := parallel.Run(context.Background(), participants, sourceFor, 300)
	require.NoError(t, err)

	assert.Equal(t, first.Entries, second.Entries)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestAggregatorDecimalOdds(t *testing.T) {
	participants := []models.Participant{{ID: 1, Name: "Perfect"}, {ID: 2, Name: "Blank"}}
	sourceFor := sourcesByID(map[int64]contest.ProbabilitySource{
		1: constantSource(1),
		2: constantSource(0),
	})
	agg := &Aggregator{Layout: contest.DefaultLayout(), Workers: 3, Seed: 1}

	result, err := agg.Run(context.Background(), participants, sourceFor, 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultTrials, result.Trials)
	perfect, blank := result.Entries[0], result.Entries[1]
	assert.Equal(t, DefaultTrials, perfect.Wins)
	assert.Equal(t, 100.0, perfect.ImpliedProbability)
	require.NotNil(t, perfect.DecimalOdds)
	assert.Equal(t, "1.0", perfect.OddsString())
	assert.Equal(t, 40.0, perfect.MeanQualifyingScore)

	assert.Zero(t, blank.Wins)
	assert.Nil(t, blank.DecimalOdds)
	assert.Equal(t, "-", blank.OddsString())
}

func TestNewOddsEntryRounding(t *testing.T) {
	entry := newOddsEntry(models.Participant{ID: 9, Name: "Nine"}, 212, 640, 18000, 1000)

	assert.Equal(t, 21.2, entry.ImpliedProbability)
	assert.Equal(t, "4.7", entry.OddsString())
	assert.Equal(t, 18.0, entry.MeanQualifyingScore)

	// half-way odds round to even
	for wins, want := range map[int]string{800: "1.2", 160: "6.2", 32: "31.2"} {
		entry := newOddsEntry(models.Participant{ID: 9, Name: "Nine"}, wins, wins, 0, 1000)
		assert.Equal(t, want, entry.OddsString(), "wins=%d", wins)
	}
}

func TestAggregatorMissingSource(t *testing.T) {
	participants := []models.Participant{{ID: 1, Name: "Known"}, {ID: 2, Name: "Unknown"}}
	sourceFor := sourcesByID(map[int64]contest.ProbabilitySource{1: constantSource(0.5)})
	agg := &Aggregator{Layout: contest.DefaultLayout(), Seed: 1}

	_, err := agg.Run(context.Background(), participants, sourceFor, 10)
	assert.ErrorIs(t, err, ErrMissingSource)
	assert.ErrorIs(t, err, models.ErrNotFound)

	nilSource := func(context.Context, models.Participant) (contest.ProbabilitySource, error) { return nil, nil }
	_, err = agg.Run(context.Background(), participants, nilSource, 10)
	assert.ErrorIs(t, err, ErrMissingSource)
}

func TestAggregatorRejectsBadInput(t *testing.T) {
	agg := NewAggregator(contest.DefaultLayout())
	participants, sourceFor := testField(2)

	_, err := agg.Run(context.Background(), nil, sourceFor, 10)
	assert.ErrorIs(t, err, contest.ErrEmptyField)

	_, err = agg.Run(context.Background(), participants, sourceFor, -1)
	assert.ErrorIs(t, err, ErrInvalidTrials)
}

func TestAggregatorCancelled(t *testing.T) {
	participants, sourceFor := testField(4)
	agg := &Aggregator{Layout: contest.DefaultLayout(), Workers: 2, Seed: 3}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := agg.Run(ctx, participants, sourceFor, 10000)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAggregateResultRanked(t *testing.T) {
	result := &AggregateResult{Entries: []OddsEntry{
		{Participant: models.Participant{ID: 1}, Wins: 10},
		{Participant: models.Participant{ID: 2}, Wins: 30},
		{Participant: models.Participant{ID: 3}, Wins: 10},
	}}

	ranked := result.Ranked()
	assert.Equal(t, int64(2), ranked[0].Participant.ID)
	assert.Equal(t, int64(1), ranked[1].Participant.ID)
	assert.Equal(t, int64(3), ranked[2].Participant.ID)
	assert.Equal(t, int64(1), result.Entries[0].Participant.ID)
}

func BenchmarkAggregatorRun(b *testing.B) {
	participants, sourceFor := testField(8)
	agg := &Aggregator{Layout: contest.DefaultLayout(), Seed: 11}

	for i := 0; i < b.N; i++ {
		if _, err := agg.Run(context.Background(), participants, sourceFor, 200); err != nil {
			b.Fatal(err)
		}
	}
}
