package contest

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidThetas indicates a probability vector of the wrong length or with values outside [0,1]
var ErrInvalidThetas = errors.New("invalid shot probabilities")

// ShotObserver receives a trace of a simulated round. It never affects the score.
type ShotObserver interface {
	ObserveShot(slot int, ball BallType, made bool)
	ObserveRound(score int)
}

// SimulateRound shoots all 27 balls, each a Bernoulli trial with the slot's
// probability, and returns the points scored.
func SimulateRound(src rand.Source, thetas []float64, layout Layout, observer ShotObserver) (int, error) {
	if err := ValidateThetas(thetas); err != nil {
		return 0, err
	}

	score := 0
	for slot := 0; slot < SlotCount; slot++ {
		ball := layout.Slot(slot)
		made := distuv.Bernoulli{P: thetas[slot], Src: src}.Rand() == 1
		if made {
			score += ball.Points()
		}
		if observer != nil {
			observer.ObserveShot(slot, ball, made)
		}
	}
	if observer != nil {
		observer.ObserveRound(score)
	}
	return score, nil
}

// ValidateThetas checks there is one probability in [0,1] per slot
func ValidateThetas(thetas []float64) error {
	if len(thetas) != SlotCount {
		return fmt.Errorf("%w: got %d probabilities, want %d", ErrInvalidThetas, len(thetas), SlotCount)
	}
	for i, theta := range thetas {
		if math.IsNaN(theta) || theta < 0 || theta > 1 {
			return fmt.Errorf("%w: slot %d has probability %v", ErrInvalidThetas, i, theta)
		}
	}
	return nil
}
