package service

import (
	"fmt"
	"sync"
	"time"
)

// WarmupMetrics tracks a cache warm-up pass over a field
type WarmupMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	Participants     int
	Profiles         int
	ContestResults   int
	MissingResults   int
	ValidationErrors int
	Errors           int
}

// NewWarmupMetrics creates a new metrics tracker
func NewWarmupMetrics() *WarmupMetrics {
	return &WarmupMetrics{StartTime: time.Now()}
}

// RecordProfile increments the cached profile count
func (m *WarmupMetrics) RecordProfile() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Profiles++
}

// RecordContestResult increments the cached contest result count
func (m *WarmupMetrics) RecordContestResult() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ContestResults++
}

// RecordMissingResult increments the count of players with no contest history
func (m *WarmupMetrics) RecordMissingResult() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MissingResults++
}

// RecordValidationError increments validation error count
func (m *WarmupMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// RecordError increments error count
func (m *WarmupMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// String returns a formatted string representation of metrics
func (m *WarmupMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"WarmupMetrics{Participants=%d, Profiles=%d, ContestResults=%d, Missing=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.Participants,
		m.Profiles,
		m.ContestResults,
		m.MissingResults,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
