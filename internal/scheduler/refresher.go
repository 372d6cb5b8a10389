package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/shootout-odds/internal/metrics"
	"github.com/yourusername/shootout-odds/internal/models"
	"github.com/yourusername/shootout-odds/internal/service"
	"github.com/yourusername/shootout-odds/internal/simulation"
)

// Warmer prefetches participant stats ahead of a run
type Warmer interface {
	Warm(ctx context.Context, participants []models.Participant) (*service.WarmupMetrics, error)
}

// Publisher receives every completed odds update
type Publisher interface {
	Broadcast(message interface{}) error
}

// OddsUpdate is the payload published after each refresh
type OddsUpdate struct {
	Result      *simulation.AggregateResult `json:"result"`
	Excluded    []simulation.Exclusion      `json:"excluded,omitempty"`
	PublishedAt time.Time                   `json:"published_at"`
}

// OddsRefresher re-runs the aggregation for the current field and publishes the odds
type OddsRefresher struct {
	Directory  models.ParticipantDirectory
	Builder    *simulation.FieldBuilder
	Aggregator *simulation.Aggregator
	Trials     int
	Warmer     Warmer
	Publisher  Publisher
	Logger     *logrus.Entry
}

// Refresh performs one full refresh
func (r *OddsRefresher) Refresh(ctx context.Context) (*OddsUpdate, error) {
	if r.Directory == nil || r.Builder == nil || r.Aggregator == nil {
		return nil, errors.New("refresher is not fully configured")
	}

	participants, err := r.Directory.Participants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	if r.Warmer != nil {
		if _, err := r.Warmer.Warm(ctx, participants); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.log().WithError(err).Warn("stats warm-up failed")
		}
	}

	field, err := r.Builder.Build(ctx, participants)
	if err != nil {
		return nil, fmt.Errorf("failed to build field: %w", err)
	}

	result, err := r.Aggregator.Run(ctx, field.Participants, field.SourceFor, r.Trials)
	if err != nil {
		return nil, err
	}

	metrics.ResetWinProbabilities()
	for _, e := range result.Entries {
		metrics.UpdateWinProbability(strconv.FormatInt(e.Participant.ID, 10), e.Participant.Name, e.ImpliedProbability)
	}
	metrics.UpdateLastRun(float64(time.Now().Unix()))

	update := &OddsUpdate{Result: result, Excluded: field.Excluded, PublishedAt: time.Now().UTC()}
	if r.Publisher != nil {
		if err := r.Publisher.Broadcast(update); err != nil {
			r.log().WithError(err).Warn("failed to publish odds update")
		}
	}
	return update, nil
}

func (r *OddsRefresher) log() *logrus.Entry {
	if r.Logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return r.Logger
}
