package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/metrics"
	"github.com/yourusername/shootout-odds/internal/models"
)

// ScoreDistribution summarises independent rounds shot by a single participant
type ScoreDistribution struct {
	Participant models.Participant `json:"participant"`
	Rounds      int                `json:"rounds"`
	Counts      []int              `json:"counts"`
	Mean        float64            `json:"mean"`
	StdDev      float64            `json:"std_dev"`
	Median      float64            `json:"median"`
	Min         int                `json:"min"`
	Max         int                `json:"max"`
}

// SimulateScores shoots rounds independent rounds for one participant. The
// observer, when set, receives every shot.
func SimulateScores(ctx context.Context, src rand.Source, source contest.ProbabilitySource, layout contest.Layout, rounds int, observer contest.ShotObserver) ([]int, error) {
	if rounds <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTrials, rounds)
	}
	if source == nil {
		return nil, ErrMissingSource
	}
	if src == nil {
		return nil, contest.ErrNilSource
	}

	scores := make([]int, 0, rounds)
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score, err := contest.SimulateRound(src, source.Thetas(src, layout), layout, observer)
		if err != nil {
			return nil, err
		}
		metrics.RecordRoundScore(score)
		scores = append(scores, score)
	}
	return scores, nil
}

// NewScoreDistribution builds the histogram and summary statistics for scores
// on a layout
func NewScoreDistribution(p models.Participant, scores []int, layout contest.Layout) ScoreDistribution {
	dist := ScoreDistribution{
		Participant: p,
		Rounds:      len(scores),
		Counts:      make([]int, layout.MaxScore()+1),
	}
	if len(scores) == 0 {
		return dist
	}

	values := make([]float64, len(scores))
	dist.Min, dist.Max = scores[0], scores[0]
	for i, s := range scores {
		if s >= 0 && s < len(dist.Counts) {
			dist.Counts[s]++
		}
		if s < dist.Min {
			dist.Min = s
		}
		if s > dist.Max {
			dist.Max = s
		}
		values[i] = float64(s)
	}

	sort.Float64s(values)
	if len(values) < 2 {
		dist.Mean = values[0]
	} else {
		dist.Mean, dist.StdDev = stat.MeanStdDev(values, nil)
	}
	dist.Median = stat.Quantile(0.5, stat.Empirical, values, nil)
	return dist
}

// Mode returns the most frequent score, the lowest one on ties
func (d ScoreDistribution) Mode() int {
	mode := 0
	for score, count := range d.Counts {
		if count > d.Counts[mode] {
			mode = score
		}
	}
	return mode
}
