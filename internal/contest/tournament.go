package contest

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/yourusername/shootout-odds/internal/models"
)

// FinalistCount is the number of qualifiers advancing to the final round
const FinalistCount = 3

var (
	// ErrEmptyField indicates a tournament with no entrants
	ErrEmptyField = errors.New("tournament has no entrants")
	// ErrNilSource indicates an entrant without a probability source
	ErrNilSource = errors.New("entrant has no probability source")
)

// Stage identifies the tournament round being played
type Stage string

const (
	StageQualifying Stage = "qualifying"
	StageFinal      Stage = "final"
)

// ProbabilitySource produces the per-slot make probabilities for one round
type ProbabilitySource interface {
	Thetas(src rand.Source, layout Layout) []float64
}

// Observer traces a whole tournament
type Observer interface {
	ShotObserver
	ObserveRoundStart(stage Stage, participant models.Participant)
}

// Entrant pairs a participant with the source of their shooting probabilities
type Entrant struct {
	Participant models.Participant
	Source      ProbabilitySource
}

// Outcome is the result of one tournament replication.
// Finalists index into the entrant list in qualifying rank order; FinalScores
// is aligned with Finalists.
type Outcome struct {
	Winner           models.Participant
	WinnerIndex      int
	QualifyingScores []int
	Finalists        []int
	FinalScores      []int
}

// Tournament runs the qualifying round, advances the top three and plays the final
type Tournament struct {
	Layout   Layout
	Observer Observer
}

// NewTournament creates a tournament on the given layout
func NewTournament(layout Layout) *Tournament {
	return &Tournament{Layout: layout}
}

// RunTournament plays one untraced contest on layout
func RunTournament(src rand.Source, layout Layout, entrants []Entrant) (Outcome, error) {
	return NewTournament(layout).Run(src, entrants)
}

// Run plays one replication. Ties are broken in favour of the entrant listed
// first: qualifying ties by input order, final ties by qualifying rank.
func (t *Tournament) Run(src rand.Source, entrants []Entrant) (Outcome, error) {
	if len(entrants) == 0 {
		return Outcome{}, ErrEmptyField
	}
	for _, e := range entrants {
		if e.Source == nil {
			return Outcome{}, fmt.Errorf("%w: %s", ErrNilSource, e.Participant)
		}
	}

	qualifying := make([]int, len(entrants))
	for i, e := range entrants {
		score, err := t.playRound(src, StageQualifying, e)
		if err != nil {
			return Outcome{}, err
		}
		qualifying[i] = score
	}

	finalists := rankStable(qualifying)
	if len(finalists) > FinalistCount {
		finalists = finalists[:FinalistCount]
	}

	final := make([]int, len(finalists))
	for i, idx := range finalists {
		score, err := t.playRound(src, StageFinal, entrants[idx])
		if err != nil {
			return Outcome{}, err
		}
		final[i] = score
	}

	winner := finalists[rankStable(final)[0]]
	return Outcome{
		Winner:           entrants[winner].Participant,
		WinnerIndex:      winner,
		QualifyingScores: qualifying,
		Finalists:        finalists,
		FinalScores:      final,
	}, nil
}

func (t *Tournament) playRound(src rand.Source, stage Stage, e Entrant) (int, error) {
	var shots ShotObserver
	if t.Observer != nil {
		t.Observer.ObserveRoundStart(stage, e.Participant)
		shots = t.Observer
	}
	score, err := SimulateRound(src, e.Source.Thetas(src, t.Layout), t.Layout, shots)
	if err != nil {
		return 0, fmt.Errorf("%s round for %s: %w", stage, e.Participant, err)
	}
	return score, nil
}

// rankStable returns indexes ordered by descending score; equal scores keep input order
func rankStable(scores []int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}
