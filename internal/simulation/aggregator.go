// Package simulation runs many independent tournament replications and turns
// the win tallies into implied probabilities and decimal odds.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/logger"
	"github.com/yourusername/shootout-odds/internal/metrics"
	"github.com/yourusername/shootout-odds/internal/models"
)

// DefaultTrials is the number of replications when none is requested
const DefaultTrials = 1000

var (
	// ErrMissingSource indicates a participant without a probability source
	ErrMissingSource = errors.New("missing probability source")
	// ErrTallyMismatch indicates the win counts do not add up to the trial count
	ErrTallyMismatch = errors.New("win tally does not match trial count")
	// ErrInvalidTrials indicates a negative trial count
	ErrInvalidTrials = errors.New("trials must be positive")
)

// SourceFunc resolves the probability source for one participant
type SourceFunc func(ctx context.Context, p models.Participant) (contest.ProbabilitySource, error)

// OddsEntry is the aggregated result for one participant
type OddsEntry struct {
	Participant         models.Participant `json:"participant"`
	Wins                int                `json:"wins"`
	ImpliedProbability  float64            `json:"implied_probability"`
	DecimalOdds         *decimal.Decimal   `json:"decimal_odds,omitempty"`
	FinalsAppearances   int                `json:"finals_appearances"`
	MeanQualifyingScore float64            `json:"mean_qualifying_score"`
}

// OddsString formats the decimal odds, or "-" when the participant never won
func (e OddsEntry) OddsString() string {
	if e.DecimalOdds == nil {
		return "-"
	}
	return e.DecimalOdds.StringFixed(1)
}

// AggregateResult is the output of one aggregation run. Entries follow the
// participant input order.
type AggregateResult struct {
	RunID     uuid.UUID     `json:"run_id"`
	Model     string        `json:"model,omitempty"`
	Trials    int           `json:"trials"`
	Seed      uint64        `json:"seed"`
	Workers   int           `json:"workers"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	Entries   []OddsEntry   `json:"entries"`
}

// TotalWins sums the wins across all entries
func (r *AggregateResult) TotalWins() int {
	total := 0
	for _, e := range r.Entries {
		total += e.Wins
	}
	return total
}

// Ranked returns the entries ordered by wins, ties kept in input order
func (r *AggregateResult) Ranked() []OddsEntry {
	ranked := append([]OddsEntry(nil), r.Entries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Wins > ranked[j].Wins
	})
	return ranked
}

// Aggregator estimates win odds by Monte-Carlo replication of the contest.
// Replication i always draws from PCG stream (Seed, i), so a fixed seed gives
// the same tallies for any worker count.
type Aggregator struct {
	Layout  contest.Layout
	Workers int
	Seed    uint64
	Model   string
	Logger  *logger.SimulationLogger
}

// NewAggregator creates an aggregator on the given layout
func NewAggregator(layout contest.Layout) *Aggregator {
	return &Aggregator{Layout: layout}
}

type tally struct {
	wins          []int
	finals        []int
	qualifyingSum []int64
	completed     int
}

func newTally(n int) *tally {
	return &tally{
		wins:          make([]int, n),
		finals:        make([]int, n),
		qualifyingSum: make([]int64, n),
	}
}

func (t *tally) add(o contest.Outcome) {
	t.wins[o.WinnerIndex]++
	for _, idx := range o.Finalists {
		t.finals[idx]++
	}
	for i, score := range o.QualifyingScores {
		t.qualifyingSum[i] += int64(score)
	}
	t.completed++
}

func (t *tally) merge(other *tally) {
	for i := range t.wins {
		t.wins[i] += other.wins[i]
		t.finals[i] += other.finals[i]
		t.qualifyingSum[i] += other.qualifyingSum[i]
	}
	t.completed += other.completed
}

// Run resolves a probability source for every participant, plays trials
// replications and aggregates the winners. A trials value of zero means
// DefaultTrials.
func (a *Aggregator) Run(ctx context.Context, participants []models.Participant, sourceFor SourceFunc, trials int) (*AggregateResult, error) {
	if trials < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTrials, trials)
	}
	if trials == 0 {
		trials = DefaultTrials
	}
	if len(participants) == 0 {
		return nil, contest.ErrEmptyField
	}
	if sourceFor == nil {
		return nil, ErrMissingSource
	}

	entrants := make([]contest.Entrant, len(participants))
	for i, p := range participants {
		source, err := sourceFor(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("%w for %s: %w", ErrMissingSource, p, err)
		}
		if source == nil {
			return nil, fmt.Errorf("%w for %s", ErrMissingSource, p)
		}
		entrants[i] = contest.Entrant{Participant: p, Source: source}
	}

	seed := a.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	workers := a.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > trials {
		workers = trials
	}

	result := &AggregateResult{
		RunID:     uuid.New(),
		Model:     a.Model,
		Trials:    trials,
		Seed:      seed,
		Workers:   workers,
		StartedAt: time.Now(),
	}
	if a.Logger != nil {
		a.Logger.LogRunStarted(result.RunID.String(), a.Model, len(participants), trials, workers, seed)
	}

	merged, err := a.replicate(ctx, entrants, seed, trials, workers)
	result.Duration = time.Since(result.StartedAt)
	if err != nil {
		if ctx.Err() != nil {
			metrics.RecordSimulationRun(a.Model, "cancelled", result.Duration.Seconds())
			if a.Logger != nil {
				a.Logger.LogRunCancelled(result.RunID.String(), merged.completed, trials, ctx.Err())
			}
			return nil, ctx.Err()
		}
		metrics.RecordSimulationRun(a.Model, "failure", result.Duration.Seconds())
		return nil, err
	}

	totalWins := 0
	for _, w := range merged.wins {
		totalWins += w
	}
	if totalWins != trials || merged.completed != trials {
		metrics.RecordSimulationRun(a.Model, "failure", result.Duration.Seconds())
		return nil, fmt.Errorf("%w: %d wins over %d trials", ErrTallyMismatch, totalWins, trials)
	}

	result.Entries = make([]OddsEntry, len(participants))
	for i, p := range participants {
		result.Entries[i] = newOddsEntry(p, merged.wins[i], merged.finals[i], merged.qualifyingSum[i], trials)
	}

	metrics.RecordReplications(trials)
	metrics.RecordSimulationRun(a.Model, "success", result.Duration.Seconds())
	if a.Logger != nil {
		for _, e := range result.Entries {
			a.Logger.LogOddsEntry(result.RunID.String(), e.Participant.String(), e.Wins, e.ImpliedProbability, e.OddsString())
		}
		a.Logger.LogRunCompleted(result.RunID.String(), trials, result.Duration)
	}
	return result, nil
}

func (a *Aggregator) replicate(ctx context.Context, entrants []contest.Entrant, seed uint64, trials, workers int) (*tally, error) {
	tournament := contest.NewTournament(a.Layout)
	partials := make([]*tally, workers)
	jobs := make(chan int)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < trials; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		partial := newTally(len(entrants))
		partials[w] = partial
		g.Go(func() error {
			for i := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcome, err := tournament.Run(rand.NewPCG(seed, uint64(i)), entrants)
				if err != nil {
					return fmt.Errorf("replication %d: %w", i, err)
				}
				partial.add(outcome)
			}
			return nil
		})
	}

	err := g.Wait()
	merged := newTally(len(entrants))
	for _, partial := range partials {
		merged.merge(partial)
	}
	return merged, err
}

func newOddsEntry(p models.Participant, wins, finals int, qualifyingSum int64, trials int) OddsEntry {
	entry := OddsEntry{
		Participant:         p,
		Wins:                wins,
		ImpliedProbability:  100 * float64(wins) / float64(trials),
		FinalsAppearances:   finals,
		MeanQualifyingScore: float64(qualifyingSum) / float64(trials),
	}
	if wins > 0 {
		odds := decimal.NewFromInt(int64(trials)).Div(decimal.NewFromInt(int64(wins))).RoundBank(1)
		entry.DecimalOdds = &odds
	}
	return entry
}
