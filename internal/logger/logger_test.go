package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/models"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func parseLogLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOutput("loud", buf)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestNewLoggerProductionUsesJSON(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	log := NewLoggerWithOutput("debug", &bytes.Buffer{})

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestSimulationLoggerRunStarted(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogRunStarted("run_001", "bayesian", 8, 1000, 4, 42)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "simulation", logEntry["component"])
	assert.Equal(t, "run_001", logEntry["run_id"])
	assert.Equal(t, float64(1000), logEntry["trials"])
}

func TestSimulationLoggerOddsEntry(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogOddsEntry("run_001", "Damian Lillard (203081)", 212, 21.2, "4.7")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "4.7", logEntry["decimal_odds"])
	assert.Equal(t, 21.2, logEntry["implied_probability"])
}

func TestSimulationLoggerCancelled(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogRunCancelled("run_002", 120, 1000, errors.New("context canceled"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, "context canceled", logEntry["reason"])
}

func TestSimulationLoggerCompleted(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogRunCompleted("run_003", 500, 1500*time.Millisecond)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(1500), logEntry["duration_ms"])
}

func TestCommentaryLoggerNarratesRound(t *testing.T) {
	log, buf := setupTestLogger()
	commentary := NewCommentaryLogger(log)
	player := models.Participant{ID: 201939, Name: "Stephen Curry"}

	thetas := make([]float64, contest.SlotCount)
	for i := range thetas {
		thetas[i] = 1
	}
	commentary.ObserveRoundStart(contest.StageQualifying, player)
	score, err := contest.SimulateRound(rand.NewPCG(1, 1), thetas, contest.DefaultLayout(), commentary)
	require.NoError(t, err)
	assert.Equal(t, 40, score)

	entries := parseLogLines(t, buf)
	require.Len(t, entries, contest.SlotCount+2)
	assert.Equal(t, "Next participant: Stephen Curry", entries[0]["msg"])
	assert.Equal(t, "qualifying", entries[0]["stage"])
	assert.Equal(t, "Regular ball: scores", entries[1]["msg"])
	assert.Equal(t, "Money ball: scores", entries[5]["msg"])
	assert.Equal(t, "Dew ball: scores", entries[11]["msg"])
	assert.Equal(t, "Total score: 40", entries[len(entries)-1]["msg"])
	assert.Equal(t, "commentary", entries[len(entries)-1]["component"])
}

func TestCommentaryLoggerMisses(t *testing.T) {
	log, buf := setupTestLogger()
	commentary := NewCommentaryLogger(log)

	commentary.ObserveShot(10, contest.DewBall, false)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "Dew ball: misses", logEntry["msg"])
	assert.Equal(t, float64(10), logEntry["slot"])
}

func BenchmarkSimulationLoggerOddsEntry(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	simLogger := NewSimulationLogger(log)

	for i := 0; i < b.N; i++ {
		simLogger.LogOddsEntry("run_001", "Stephen Curry (201939)", 412, 41.2, "2.4")
	}
}
