// Package bayes estimates per-shot success probabilities with conjugate Beta-Binomial updating.
package bayes

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameters indicates a non-finite or non-positive shape parameter
	ErrInvalidParameters = errors.New("beta parameters must be finite and strictly positive")

	// ErrInvalidProfile indicates a shot profile that cannot produce a prior
	ErrInvalidProfile = errors.New("invalid shot profile")
)

// Parameters are the pseudo-counts of the regular-zone and long-zone Beta distributions
type Parameters struct {
	AlphaReg float64 `json:"alpha_reg" mapstructure:"alpha_reg"`
	BetaReg  float64 `json:"beta_reg" mapstructure:"beta_reg"`
	AlphaDew float64 `json:"alpha_dew" mapstructure:"alpha_dew"`
	BetaDew  float64 `json:"beta_dew" mapstructure:"beta_dew"`
}

// Validate checks all four parameters are finite and strictly positive
func (p Parameters) Validate() error {
	for name, v := range map[string]float64{
		"alpha_reg": p.AlphaReg,
		"beta_reg":  p.BetaReg,
		"alpha_dew": p.AlphaDew,
		"beta_dew":  p.BetaDew,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidParameters, name, v)
		}
	}
	return nil
}

// RegularMean returns the expected regular-zone make probability
func (p Parameters) RegularMean() float64 {
	return p.AlphaReg / (p.AlphaReg + p.BetaReg)
}

// DewMean returns the expected long-zone make probability
func (p Parameters) DewMean() float64 {
	return p.AlphaDew / (p.AlphaDew + p.BetaDew)
}
