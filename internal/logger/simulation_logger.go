package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// SimulationLogger provides dedicated logging for odds aggregation runs.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger.
func NewSimulationLogger(baseLogger *logrus.Logger) *SimulationLogger {
	return &SimulationLogger{
		Entry: baseLogger.WithField("component", "simulation"),
	}
}

// LogRunStarted logs the start of an aggregation run.
func (sl *SimulationLogger) LogRunStarted(runID, model string, participants, trials, workers int, seed uint64) {
	sl.WithFields(logrus.Fields{
		"run_id":       runID,
		"model":        model,
		"participants": participants,
		"trials":       trials,
		"workers":      workers,
		"seed":         seed,
	}).Info("Odds simulation started")
}

// LogRunCompleted logs a finished aggregation run.
func (sl *SimulationLogger) LogRunCompleted(runID string, trials int, duration time.Duration) {
	sl.WithFields(logrus.Fields{
		"run_id":      runID,
		"trials":      trials,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	}).Info("Odds simulation completed")
}

// LogRunCancelled logs a run stopped before all replications finished.
func (sl *SimulationLogger) LogRunCancelled(runID string, completed, trials int, reason error) {
	sl.WithFields(logrus.Fields{
		"run_id":    runID,
		"completed": completed,
		"trials":    trials,
		"reason":    reason.Error(),
	}).Warn("Odds simulation cancelled")
}

// LogOddsEntry logs one row of the odds table.
func (sl *SimulationLogger) LogOddsEntry(runID, participant string, wins int, impliedProbability float64, decimalOdds string) {
	sl.WithFields(logrus.Fields{
		"run_id":              runID,
		"participant":         participant,
		"wins":                wins,
		"implied_probability": impliedProbability,
		"decimal_odds":        decimalOdds,
	}).Info("Participant odds")
}

// LogExclusion logs a participant left out of the simulated field.
func (sl *SimulationLogger) LogExclusion(participant, reason string) {
	sl.WithFields(logrus.Fields{
		"participant": participant,
		"reason":      reason,
	}).Warn("Participant excluded from field")
}
