package bayes

import (
	"fmt"
	"math"

	"github.com/yourusername/shootout-odds/internal/models"
)

const (
	// DefaultScaleFactor downweights in-game volume relative to contest shots
	DefaultScaleFactor = 0.5
	// DefaultEpsilon keeps every pseudo-count away from zero
	DefaultEpsilon = 0.001
)

// DefaultFallback is the prior used for players with no zone attempts
var DefaultFallback = Parameters{AlphaReg: 3, BetaReg: 7, AlphaDew: 1, BetaDew: 4}

// PriorEstimator turns a shot profile into Beta pseudo-counts
type PriorEstimator struct {
	ScaleFactor float64
	Epsilon     float64
	Fallback    Parameters
}

// NewPriorEstimator creates an estimator with the default constants
func NewPriorEstimator() *PriorEstimator {
	return &PriorEstimator{
		ScaleFactor: DefaultScaleFactor,
		Epsilon:     DefaultEpsilon,
		Fallback:    DefaultFallback,
	}
}

// Estimate computes the prior for a player. Players with no attempts in either
// distance band get the fallback prior.
func (e *PriorEstimator) Estimate(profile *models.ShotProfile) (Parameters, error) {
	if profile == nil {
		return Parameters{}, fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}
	if err := checkProfile(profile); err != nil {
		return Parameters{}, err
	}

	if profile.ZoneAttempts() == 0 {
		return e.Fallback, nil
	}

	k := e.ScaleFactor
	eps := e.Epsilon
	volume := profile.RecentAttempts * k
	longVolume := volume * profile.LongShare()

	params := Parameters{
		AlphaReg: profile.Regular.Percentage*volume + eps,
		BetaReg:  (1-profile.Regular.Percentage)*volume + eps,
		AlphaDew: profile.Long.Percentage*longVolume + eps,
		BetaDew:  (1-profile.Long.Percentage)*longVolume + eps,
	}
	if err := params.Validate(); err != nil {
		return Parameters{}, fmt.Errorf("prior for player %d: %w", profile.PlayerID, err)
	}
	return params, nil
}

func checkProfile(p *models.ShotProfile) error {
	for name, v := range map[string]float64{
		"recent_attempts":  p.RecentAttempts,
		"regular_attempts": p.Regular.Attempts,
		"long_attempts":    p.Long.Attempts,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidProfile, name, v)
		}
	}
	for name, v := range map[string]float64{
		"regular_percentage": p.Regular.Percentage,
		"long_percentage":    p.Long.Percentage,
	} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidProfile, name, v)
		}
	}
	return nil
}
