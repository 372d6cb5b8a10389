package probability

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/models"
)

// DefaultLeagueCorrection scales in-game make probabilities up to contest shooting
const DefaultLeagueCorrection = 5.0 / 4.0

var (
	// ErrLayoutMismatch indicates a layout that cannot take the canonical locations
	ErrLayoutMismatch = errors.New("layout does not fit the canonical shot locations")
	// ErrInvalidPrediction indicates a classifier response of the wrong shape or range
	ErrInvalidPrediction = errors.New("invalid location prediction")
)

// Location is a fixed probability vector derived from per-location classifier
// predictions. Every round uses the same vector.
type Location struct {
	corrected []float64
	layout    contest.Layout
	thetas    []float64
}

// NewLocation maps the seven corrected location probabilities onto the layout.
// Rack locations fill the non-dew slots five at a time in slot order; the two
// long locations fill the dew slots.
func NewLocation(predictions []float64, correction float64, layout contest.Layout) (*Location, error) {
	if len(predictions) != len(models.CanonicalLocations) {
		return nil, fmt.Errorf("%w: got %d probabilities, want %d", ErrInvalidPrediction, len(predictions), len(models.CanonicalLocations))
	}
	if math.IsNaN(correction) || correction <= 0 {
		return nil, fmt.Errorf("%w: league correction %v", ErrInvalidPrediction, correction)
	}

	corrected := make([]float64, len(predictions))
	for i, p := range predictions {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, fmt.Errorf("%w: location %d probability %v", ErrInvalidPrediction, i, p)
		}
		corrected[i] = math.Min(1, p*correction)
	}

	thetas, err := mapLocations(corrected, layout)
	if err != nil {
		return nil, err
	}
	return &Location{corrected: corrected, layout: layout, thetas: thetas}, nil
}

// Corrected returns the league-corrected probability per canonical location
func (l *Location) Corrected() []float64 {
	return append([]float64(nil), l.corrected...)
}

// Thetas returns the fixed vector; the source of randomness is unused
func (l *Location) Thetas(_ rand.Source, layout contest.Layout) []float64 {
	if layout == l.layout {
		return l.thetas
	}
	thetas, err := mapLocations(l.corrected, layout)
	if err != nil {
		// An unmappable layout yields a vector SimulateRound rejects
		return nil
	}
	return thetas
}

func mapLocations(corrected []float64, layout contest.Layout) ([]float64, error) {
	dew := layout.Slots(contest.DewBall)
	longLocations := len(models.CanonicalLocations) - models.RackLocationCount
	if len(dew) != longLocations {
		return nil, fmt.Errorf("%w: layout has %d dew balls, want %d", ErrLayoutMismatch, len(dew), longLocations)
	}

	rack := layout.NonDewSlots()
	perLocation := len(rack) / models.RackLocationCount

	thetas := make([]float64, contest.SlotCount)
	for i, slot := range rack {
		thetas[slot] = corrected[i/perLocation]
	}
	for i, slot := range dew {
		thetas[slot] = corrected[models.RackLocationCount+i]
	}
	return thetas, nil
}
