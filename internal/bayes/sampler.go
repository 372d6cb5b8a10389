package bayes

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws success probabilities from posterior Beta distributions
type Sampler struct {
	params Parameters
}

// NewSampler creates a sampler after checking the parameters are usable
func NewSampler(params Parameters) (*Sampler, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Sampler{params: params}, nil
}

// Parameters returns the distribution parameters the sampler draws from
func (s *Sampler) Parameters() Parameters {
	return s.params
}

// Draw returns one independent realization of thetaReg and thetaDew
func (s *Sampler) Draw(src rand.Source) (thetaReg, thetaDew float64) {
	reg := distuv.Beta{Alpha: s.params.AlphaReg, Beta: s.params.BetaReg, Src: src}
	dew := distuv.Beta{Alpha: s.params.AlphaDew, Beta: s.params.BetaDew, Src: src}
	return reg.Rand(), dew.Rand()
}

// Sample returns n i.i.d. draws of thetaReg and thetaDew
func (s *Sampler) Sample(src rand.Source, n int) ([]float64, []float64) {
	if n <= 0 {
		return nil, nil
	}
	reg := make([]float64, n)
	dew := make([]float64, n)
	for i := 0; i < n; i++ {
		reg[i], dew[i] = s.Draw(src)
	}
	return reg, dew
}
