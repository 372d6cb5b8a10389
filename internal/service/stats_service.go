package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/shootout-odds/internal/models"
	"github.com/yourusername/shootout-odds/internal/repository"
)

// ErrInvalidStats is returned when remote stats fail validation
var ErrInvalidStats = errors.New("invalid stats")

// StatsService is a read-through HistoricalStatsProvider: cached entries are
// served from the repositories and misses are fetched from the remote source.
type StatsService struct {
	remote    models.HistoricalStatsProvider
	repos     *repository.Repositories
	validator *DataValidator
	logger    *logrus.Entry
	now       func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(
	remote models.HistoricalStatsProvider,
	repos *repository.Repositories,
	validator *DataValidator,
	logger *logrus.Logger,
) *StatsService {
	return &StatsService{
		remote:    remote,
		repos:     repos,
		validator: validator,
		logger:    logger.WithField("component", "stats_service"),
		now:       time.Now,
	}
}

// GetShotProfile returns the cached profile or fetches and stores it
func (s *StatsService) GetShotProfile(ctx context.Context, playerID int64) (*models.ShotProfile, error) {
	profile, err := s.repos.Profile.Get(ctx, playerID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.WithError(err).WithField("player_id", playerID).Warn("profile cache read failed")
	}

	profile, err = s.remote.GetShotProfile(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shot profile for %d: %w", playerID, err)
	}
	if profile.PlayerID == 0 {
		profile.PlayerID = playerID
	}
	if problems := s.validator.ValidateProfile(profile); len(problems) > 0 {
		return nil, fmt.Errorf("%w: shot profile for %d: %v", ErrInvalidStats, playerID, problems)
	}
	if profile.FetchedAt.IsZero() {
		profile.FetchedAt = s.now().UTC()
	}

	if err := s.repos.Profile.Put(ctx, profile); err != nil {
		s.logger.WithError(err).WithField("player_id", playerID).Warn("profile cache write failed")
	}
	return profile, nil
}

// GetContestResult returns the cached result or fetches and stores it.
// Players without contest history return models.ErrNotFound.
func (s *StatsService) GetContestResult(ctx context.Context, playerID int64) (*models.ContestResult, error) {
	result, err := s.repos.ContestResult.Get(ctx, playerID)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.WithError(err).WithField("player_id", playerID).Warn("contest result cache read failed")
	}

	result, err = s.remote.GetContestResult(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contest result for %d: %w", playerID, err)
	}
	if result.PlayerID == 0 {
		result.PlayerID = playerID
	}
	if problems := s.validator.ValidateContestResult(result); len(problems) > 0 {
		return nil, fmt.Errorf("%w: contest result for %d: %v", ErrInvalidStats, playerID, problems)
	}

	if err := s.repos.ContestResult.Put(ctx, result); err != nil {
		s.logger.WithError(err).WithField("player_id", playerID).Warn("contest result cache write failed")
	}
	return result, nil
}

// Warm fetches every participant's stats so later runs are served from cache.
// Failures are counted rather than returned; only context cancellation aborts.
func (s *StatsService) Warm(ctx context.Context, participants []models.Participant) (*WarmupMetrics, error) {
	m := NewWarmupMetrics()
	m.Participants = len(participants)

	s.logger.Infof("Warming stats cache for %d participants", len(participants))

	for _, p := range participants {
		if err := ctx.Err(); err != nil {
			m.Duration = time.Since(m.StartTime)
			return m, err
		}

		if _, err := s.GetShotProfile(ctx, p.ID); err != nil {
			s.recordFailure(m, p, "shot profile", err)
		} else {
			m.RecordProfile()
		}

		_, err := s.GetContestResult(ctx, p.ID)
		switch {
		case err == nil:
			m.RecordContestResult()
		case errors.Is(err, models.ErrNotFound):
			m.RecordMissingResult()
		default:
			s.recordFailure(m, p, "contest result", err)
		}
	}

	m.Duration = time.Since(m.StartTime)
	s.logger.Info(m.String())
	return m, nil
}

func (s *StatsService) recordFailure(m *WarmupMetrics, p models.Participant, what string, err error) {
	if errors.Is(err, ErrInvalidStats) {
		m.RecordValidationError()
	} else {
		m.RecordError()
	}
	s.logger.WithError(err).WithField("participant", p.String()).Warnf("failed to warm %s", what)
}
