// Package contest simulates three-point contest rounds and the qualifying/final tournament.
package contest

import (
	"errors"
	"fmt"
	"sort"
)

// SlotCount is the number of balls shot in one round
const SlotCount = 27

// ErrInvalidLayout indicates overlapping or out-of-range money/dew ball indexes
var ErrInvalidLayout = errors.New("invalid ball layout")

// BallType tags one ball slot
type BallType int

const (
	// RegularBall is worth one point
	RegularBall BallType = iota
	// MoneyBall is the last ball of a rack, worth two points
	MoneyBall
	// DewBall is a long-range bonus ball, worth three points
	DewBall
)

// Points returns the score awarded when a ball of this type is made
func (b BallType) Points() int {
	switch b {
	case MoneyBall:
		return 2
	case DewBall:
		return 3
	default:
		return 1
	}
}

// String returns the commentary label for the ball type
func (b BallType) String() string {
	switch b {
	case MoneyBall:
		return "Money ball"
	case DewBall:
		return "Dew ball"
	default:
		return "Regular ball"
	}
}

// By default the last rack is the money rack and the dew balls are shot
// after the second and third racks.
var (
	DefaultMoneyBalls = []int{4, 9, 15, 21, 22, 23, 24, 25, 26}
	DefaultDewBalls   = []int{10, 16}
)

// Layout assigns a ball type to each of the 27 slots. The zero value is all regular balls.
type Layout struct {
	slots [SlotCount]BallType
}

// NewLayout builds a layout from money and dew ball indexes
func NewLayout(moneyBalls, dewBalls []int) (Layout, error) {
	var layout Layout
	seen := make(map[int]BallType, len(moneyBalls)+len(dewBalls))

	assign := func(indexes []int, ball BallType) error {
		for _, idx := range indexes {
			if idx < 0 || idx >= SlotCount {
				return fmt.Errorf("%w: %s index %d outside [0,%d)", ErrInvalidLayout, ball, idx, SlotCount)
			}
			if prev, ok := seen[idx]; ok {
				return fmt.Errorf("%w: index %d listed as %s and %s", ErrInvalidLayout, idx, prev, ball)
			}
			seen[idx] = ball
			layout.slots[idx] = ball
		}
		return nil
	}

	if err := assign(moneyBalls, MoneyBall); err != nil {
		return Layout{}, err
	}
	if err := assign(dewBalls, DewBall); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// DefaultLayout returns the standard contest layout
func DefaultLayout() Layout {
	layout, err := NewLayout(DefaultMoneyBalls, DefaultDewBalls)
	if err != nil {
		panic(err)
	}
	return layout
}

// Slot returns the ball type at index i
func (l Layout) Slot(i int) BallType {
	return l.slots[i]
}

// MaxScore returns the score of a perfect round
func (l Layout) MaxScore() int {
	total := 0
	for _, ball := range l.slots {
		total += ball.Points()
	}
	return total
}

// Slots returns the indexes holding the given ball type in slot order
func (l Layout) Slots(ball BallType) []int {
	var out []int
	for i, b := range l.slots {
		if b == ball {
			out = append(out, i)
		}
	}
	return out
}

// NonDewSlots returns the regular and money ball indexes in slot order
func (l Layout) NonDewSlots() []int {
	out := append(l.Slots(RegularBall), l.Slots(MoneyBall)...)
	sort.Ints(out)
	return out
}
