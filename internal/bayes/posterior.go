package bayes

import (
	"fmt"

	"github.com/yourusername/shootout-odds/internal/models"
)

// Update applies the conjugate Beta-Binomial update: makes are added to alpha
// and misses to beta, separately for regular and dew shots.
func Update(prior Parameters, result *models.ContestResult) (Parameters, error) {
	if result == nil {
		return Parameters{}, fmt.Errorf("no contest result to update prior: %w", models.ErrNotFound)
	}
	if err := result.Validate(); err != nil {
		return Parameters{}, fmt.Errorf("player %d: %w", result.PlayerID, err)
	}

	return Parameters{
		AlphaReg: prior.AlphaReg + float64(result.Made),
		BetaReg:  prior.BetaReg + float64(result.Misses()),
		AlphaDew: prior.AlphaDew + float64(result.DewMade),
		BetaDew:  prior.BetaDew + float64(result.DewMisses()),
	}, nil
}
