package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordSimulationRun(t *testing.T) {
	InitRegistry()

	before := testutil.ToFloat64(SimulationRunsTotal.WithLabelValues("bayesian", "success"))
	RecordSimulationRun("bayesian", "success", 0.25)
	after := testutil.ToFloat64(SimulationRunsTotal.WithLabelValues("bayesian", "success"))

	assert.Equal(t, before+1, after)
}

func TestRecordReplications(t *testing.T) {
	InitRegistry()

	before := testutil.ToFloat64(ReplicationsTotal)
	RecordReplications(1000)
	assert.Equal(t, before+1000, testutil.ToFloat64(ReplicationsTotal))
}

func TestUpdateWinProbability(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name    string
		id      string
		player  string
		percent float64
	}{
		{name: "favourite", id: "201939", player: "Stephen Curry", percent: 41.2},
		{name: "long shot", id: "1628378", player: "Donovan Mitchell", percent: 0.4},
		{name: "no wins", id: "1629029", player: "Luka Doncic", percent: 0},
	}

	ResetWinProbabilities()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			UpdateWinProbability(tt.id, tt.player, tt.percent)
			assert.Equal(t, tt.percent, testutil.ToFloat64(WinProbability.WithLabelValues(tt.id, tt.player)))
		})
	}

	ResetWinProbabilities()
	assert.Equal(t, 0, testutil.CollectAndCount(WinProbability))
}

func TestStatsMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordStatsFetch("shot_profile", "success", 0.12)
	})

	before := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("contest_result", "hit"))
	RecordCacheHit("contest_result")
	RecordCacheMiss("contest_result")
	assert.Equal(t, before+1, testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("contest_result", "hit")))
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()
	RecordRoundScore(23)
	UpdateFieldSize(8)

	handler := Handler()
	require.Implements(t, (*http.Handler)(nil), handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shootout_participants_in_field 8")
}

func BenchmarkRecordRoundScore(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordRoundScore(20)
	}
}
