// Package probability builds the per-slot make probabilities a contestant shoots with.
package probability

import (
	"math/rand/v2"

	"github.com/yourusername/shootout-odds/internal/bayes"
	"github.com/yourusername/shootout-odds/internal/contest"
)

// Bayesian draws a fresh posterior realization for every round it is asked for
type Bayesian struct {
	sampler *bayes.Sampler
}

// NewBayesian creates a source from posterior parameters
func NewBayesian(posterior bayes.Parameters) (*Bayesian, error) {
	sampler, err := bayes.NewSampler(posterior)
	if err != nil {
		return nil, err
	}
	return &Bayesian{sampler: sampler}, nil
}

// Posterior returns the parameters the source samples from
func (b *Bayesian) Posterior() bayes.Parameters {
	return b.sampler.Parameters()
}

// Thetas uses thetaDew on dew ball slots and thetaReg on every other slot
func (b *Bayesian) Thetas(src rand.Source, layout contest.Layout) []float64 {
	reg, dew := b.sampler.Draw(src)
	thetas := make([]float64, contest.SlotCount)
	for i := range thetas {
		if layout.Slot(i) == contest.DewBall {
			thetas[i] = dew
		} else {
			thetas[i] = reg
		}
	}
	return thetas
}
