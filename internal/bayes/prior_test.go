package bayes

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/shootout-odds/internal/models"
)

func TestEstimateZeroAttemptsReturnsFallback(t *testing.T) {
	estimator := NewPriorEstimator()

	params, err := estimator.Estimate(&models.ShotProfile{PlayerID: 1, RecentAttempts: 250})
	require.NoError(t, err)
	assert.Equal(t, Parameters{AlphaReg: 3, BetaReg: 7, AlphaDew: 1, BetaDew: 4}, params)
}

func TestEstimatePseudoCounts(t *testing.T) {
	estimator := NewPriorEstimator()
	profile := &models.ShotProfile{
		PlayerID:       7,
		RecentAttempts: 500,
		Regular:        models.ZoneStats{Made: 120, Attempts: 300, Percentage: 0.4},
		Long:           models.ZoneStats{Made: 35, Attempts: 100, Percentage: 0.35},
	}

	params, err := estimator.Estimate(profile)
	require.NoError(t, err)

	// volume = 500 * 0.5 = 250, long share = 0.25
	assert.InDelta(t, 0.4*250+0.001, params.AlphaReg, 1e-9)
	assert.InDelta(t, 0.6*250+0.001, params.BetaReg, 1e-9)
	assert.InDelta(t, 0.35*62.5+0.001, params.AlphaDew, 1e-9)
	assert.InDelta(t, 0.65*62.5+0.001, params.BetaDew, 1e-9)
}

func TestEstimateExtremePercentagesStayPositive(t *testing.T) {
	estimator := NewPriorEstimator()
	profile := &models.ShotProfile{
		RecentAttempts: 40,
		Regular:        models.ZoneStats{Attempts: 10, Percentage: 1},
		Long:           models.ZoneStats{Attempts: 0, Percentage: 0},
	}

	params, err := estimator.Estimate(profile)
	require.NoError(t, err)
	require.NoError(t, params.Validate())
	assert.Equal(t, 0.001, params.BetaReg)
	assert.Equal(t, 0.001, params.AlphaDew)
	assert.Equal(t, 0.001, params.BetaDew)
}

func TestEstimateRejectsInvalidProfiles(t *testing.T) {
	estimator := NewPriorEstimator()
	tests := []struct {
		name    string
		profile *models.ShotProfile
	}{
		{name: "nil profile", profile: nil},
		{name: "percentage above one", profile: &models.ShotProfile{RecentAttempts: 10, Regular: models.ZoneStats{Attempts: 5, Percentage: 1.4}}},
		{name: "nan percentage", profile: &models.ShotProfile{RecentAttempts: 10, Long: models.ZoneStats{Attempts: 5, Percentage: math.NaN()}}},
		{name: "negative attempts", profile: &models.ShotProfile{RecentAttempts: -3}},
		{name: "infinite attempts", profile: &models.ShotProfile{RecentAttempts: math.Inf(1), Regular: models.ZoneStats{Attempts: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := estimator.Estimate(tt.profile)
			assert.True(t, errors.Is(err, ErrInvalidProfile), "got %v", err)
		})
	}
}

func TestParametersValidate(t *testing.T) {
	assert.NoError(t, DefaultFallback.Validate())
	assert.Error(t, Parameters{AlphaReg: 1, BetaReg: 0, AlphaDew: 1, BetaDew: 1}.Validate())
	assert.Error(t, Parameters{AlphaReg: math.NaN(), BetaReg: 1, AlphaDew: 1, BetaDew: 1}.Validate())
	assert.Error(t, Parameters{AlphaReg: 1, BetaReg: 1, AlphaDew: math.Inf(1), BetaDew: 1}.Validate())
}
