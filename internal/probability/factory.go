package probability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/shootout-odds/internal/bayes"
	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/models"
)

// Model selects how contestant probabilities are produced
type Model string

const (
	// ModelBayesian samples from the Beta posterior every round
	ModelBayesian Model = "bayesian"
	// ModelLocation uses fixed classifier predictions per shot location
	ModelLocation Model = "location"
)

// ErrUnknownModel indicates an unsupported model name
var ErrUnknownModel = errors.New("unknown probability model")

// ParseModel converts a configuration value into a Model
func ParseModel(name string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bayesian", "":
		return ModelBayesian, nil
	case "location", "log_reg":
		return ModelLocation, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
}

// Factory resolves a probability source for each participant
type Factory struct {
	Stats            models.HistoricalStatsProvider
	Classifier       models.LocationProbabilityModel
	Prior            *bayes.PriorEstimator
	LeagueCorrection float64
	Layout           contest.Layout
}

// SourceFor builds the participant's source under the given model
func (f *Factory) SourceFor(ctx context.Context, model Model, p models.Participant) (contest.ProbabilitySource, error) {
	switch model {
	case ModelBayesian:
		return f.bayesian(ctx, p)
	case ModelLocation:
		return f.location(ctx, p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
}

// Posterior returns the player's posterior parameters from their shot profile and
// previous contest result. A player without a contest result yields ErrNotFound.
func (f *Factory) Posterior(ctx context.Context, p models.Participant) (bayes.Parameters, error) {
	if f.Stats == nil {
		return bayes.Parameters{}, errors.New("historical stats provider is required for the bayesian model")
	}
	estimator := f.Prior
	if estimator == nil {
		estimator = bayes.NewPriorEstimator()
	}

	profile, err := f.Stats.GetShotProfile(ctx, p.ID)
	if err != nil {
		return bayes.Parameters{}, fmt.Errorf("shot profile for %s: %w", p, err)
	}
	prior, err := estimator.Estimate(profile)
	if err != nil {
		return bayes.Parameters{}, err
	}
	result, err := f.Stats.GetContestResult(ctx, p.ID)
	if err != nil {
		return bayes.Parameters{}, fmt.Errorf("contest result for %s: %w", p, err)
	}
	return bayes.Update(prior, result)
}

func (f *Factory) bayesian(ctx context.Context, p models.Participant) (contest.ProbabilitySource, error) {
	posterior, err := f.Posterior(ctx, p)
	if err != nil {
		return nil, err
	}
	return NewBayesian(posterior)
}

func (f *Factory) location(ctx context.Context, p models.Participant) (contest.ProbabilitySource, error) {
	if f.Classifier == nil {
		return nil, errors.New("location probability model is required for the location model")
	}
	predictions, err := f.Classifier.Predict(ctx, p.ID, models.CanonicalLocations)
	if err != nil {
		return nil, fmt.Errorf("location predictions for %s: %w", p, err)
	}
	correction := f.LeagueCorrection
	if correction == 0 {
		correction = DefaultLeagueCorrection
	}
	return NewLocation(predictions, correction, f.Layout)
}
