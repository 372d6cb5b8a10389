package simulation

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/models"
)

func sampleResult() *AggregateResult {
	odds := decimal.RequireFromString("1.6")
	return &AggregateResult{
		RunID:  uuid.MustParse("5f0c8c1e-8c4b-4d7e-9a56-1f1c7a3b2d10"),
		Model:  "bayesian",
		Trials: 1000,
		Seed:   42,
		Entries: []OddsEntry{
			{Participant: models.Participant{ID: 201939, Name: "Stephen Curry"}, Wins: 0, FinalsAppearances: 12, MeanQualifyingScore: 17.25},
			{Participant: models.Participant{ID: 1628973, Name: "Jalen Brunson"}, Wins: 1000, ImpliedProbability: 100, DecimalOdds: &odds, FinalsAppearances: 1000, MeanQualifyingScore: 26.5},
		},
	}
}

func TestGenerateConsoleReport(t *testing.T) {
	report := GenerateConsoleReport(sampleResult())

	assert.Contains(t, report, "Three-Point Contest Odds")
	assert.Contains(t, report, "Stephen Curry")
	assert.Contains(t, report, "1.6")
	assert.Contains(t, report, "Trials: 1000 (seed 42)")
	assert.Less(t, bytes.Index([]byte(report), []byte("Jalen Brunson")), bytes.Index([]byte(report), []byte("Stephen Curry")))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "player_id", rows[0][0])
	assert.Equal(t, []string{"201939", "Stephen Curry", "0", "0.0000", "", "12", "17.2500"}, rows[1])
	assert.Equal(t, "1.6", rows[2][4])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var decoded AggregateResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1000, decoded.Trials)
	assert.Nil(t, decoded.Entries[0].DecimalOdds)
	require.NotNil(t, decoded.Entries[1].DecimalOdds)
	assert.True(t, decoded.Entries[1].DecimalOdds.Equal(decimal.RequireFromString("1.6")))
}

func TestWriteReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "odds.json")
	require.NoError(t, WriteReportFile(path, sampleResult(), FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jalen Brunson")

	assert.Error(t, WriteReport(&bytes.Buffer{}, sampleResult(), "xml"))
}

func TestGenerateDistributionReport(t *testing.T) {
	dist := NewScoreDistribution(models.Participant{ID: 7, Name: "Klay Thompson"}, []int{20, 22, 22, 25}, contest.DefaultLayout())

	report := GenerateDistributionReport(dist)
	assert.Contains(t, report, "Klay Thompson (7)")
	assert.Contains(t, report, "Mode: 22")
	assert.Contains(t, report, "22 | ")
}
