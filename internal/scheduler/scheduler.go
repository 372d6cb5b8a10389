package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher is the job run on every tick
type Refresher interface {
	Refresh(ctx context.Context) (*OddsUpdate, error)
}

// Scheduler runs odds refreshes on a cron schedule
type Scheduler struct {
	cron       *cron.Cron
	refresher  Refresher
	logger     *logrus.Entry
	mu         sync.RWMutex
	isRunning  bool
	jobIDs     []cron.EntryID
	jobTimeout time.Duration
}

// NewScheduler creates a new scheduler. Ticks that fire while a refresh is
// still running are skipped.
func NewScheduler(refresher Refresher, logger *logrus.Logger) *Scheduler {
	entry := logger.WithField("component", "scheduler")
	cronLogger := cron.PrintfLogger(entry)

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		refresher:  refresher,
		logger:     entry,
		jobIDs:     make([]cron.EntryID, 0),
		jobTimeout: 5 * time.Minute,
	}
}

// ScheduleOddsRefresh schedules the refresh on cronExpression. timeout bounds
// each run; zero keeps the default of five minutes.
func (s *Scheduler) ScheduleOddsRefresh(cronExpression string, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if timeout > 0 {
		s.jobTimeout = timeout
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Infof("Scheduled odds refresh with cron expression: %s", cronExpression)

	return nil
}

// RunNow performs a refresh immediately, outside the schedule
func (s *Scheduler) RunNow(ctx context.Context) (*OddsUpdate, error) {
	return s.runOnce(ctx)
}

func (s *Scheduler) runOnce(ctx context.Context) (*OddsUpdate, error) {
	start := time.Now()
	update, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Odds refresh failed")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"run_id":   update.Result.RunID.String(),
		"trials":   update.Result.Trials,
		"excluded": len(update.Excluded),
		"duration": time.Since(start),
	}).Info("Odds refresh completed")
	return update, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Infof("Scheduler started with %d jobs", len(s.jobIDs))

	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled refresh
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}
