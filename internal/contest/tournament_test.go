package contest

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/shootout-odds/internal/models"
)

type fixedSource float64

func (f fixedSource) Thetas(_ rand.Source, _ Layout) []float64 {
	return constantThetas(float64(f))
}

// scriptedSource returns its probabilities in sequence, one vector per round
type scriptedSource struct {
	rounds []float64
	calls  int
}

func (s *scriptedSource) Thetas(_ rand.Source, _ Layout) []float64 {
	p := s.rounds[s.calls]
	s.calls++
	return constantThetas(p)
}

func entrant(id int64, name string, source ProbabilitySource) Entrant {
	return Entrant{Participant: models.Participant{ID: id, Name: name}, Source: source}
}

func TestTournamentQualifyingTieKeepsInputOrder(t *testing.T) {
	entrants := []Entrant{
		entrant(1, "First", fixedSource(1)),
		entrant(2, "Second", fixedSource(1)),
		entrant(3, "Third", fixedSource(1)),
		entrant(4, "Fourth", fixedSource(1)),
	}

	outcome, err := NewTournament(DefaultLayout()).Run(rand.New(rand.NewPCG(1, 1)), entrants)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, outcome.Finalists)
	assert.Equal(t, []int{40, 40, 40, 40}, outcome.QualifyingScores)
	assert.Equal(t, int64(1), outcome.Winner.ID)
}

func TestTournamentTopThreeAdvance(t *testing.T) {
	entrants := []Entrant{
		entrant(1, "Cold", fixedSource(0)),
		entrant(2, "Hot", fixedSource(1)),
		entrant(3, "Colder", fixedSource(0)),
		entrant(4, "Hotter", fixedSource(1)),
		entrant(5, "Coldest", fixedSource(0)),
	}

	outcome, err := NewTournament(DefaultLayout()).Run(rand.New(rand.NewPCG(1, 1)), entrants)
	require.NoError(t, err)

	// the two perfect shooters, then the first zero scorer by input order
	assert.Equal(t, []int{1, 3, 0}, outcome.Finalists)
	assert.Equal(t, []int{40, 40, 0}, outcome.FinalScores)
	assert.Equal(t, "Hot", outcome.Winner.Name)
	assert.Equal(t, 1, outcome.WinnerIndex)
}

func TestTournamentFinalTieGoesToBetterQualifier(t *testing.T) {
	early := &scriptedSource{rounds: []float64{0, 1}}
	late := &scriptedSource{rounds: []float64{1, 1}}
	entrants := []Entrant{
		entrant(1, "Early", early),
		entrant(2, "Late", late),
	}

	outcome, err := NewTournament(DefaultLayout()).Run(rand.New(rand.NewPCG(1, 1)), entrants)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 0}, outcome.Finalists)
	assert.Equal(t, []int{40, 40}, outcome.FinalScores)
	assert.Equal(t, "Late", outcome.Winner.Name)
}

func TestTournamentFinalDecidesWinner(t *testing.T) {
	leader := &scriptedSource{rounds: []float64{1, 0}}
	chaser := &scriptedSource{rounds: []float64{0, 1}}
	entrants := []Entrant{
		entrant(1, "Leader", leader),
		entrant(2, "Chaser", chaser),
	}

	outcome, err := NewTournament(DefaultLayout()).Run(rand.New(rand.NewPCG(1, 1)), entrants)
	require.NoError(t, err)
	assert.Equal(t, "Chaser", outcome.Winner.Name)
}

func TestTournamentRejectsEmptyFieldAndNilSource(t *testing.T) {
	tournament := NewTournament(DefaultLayout())
	rng := rand.New(rand.NewPCG(1, 1))

	_, err := tournament.Run(rng, nil)
	assert.ErrorIs(t, err, ErrEmptyField)

	_, err = tournament.Run(rng, []Entrant{{Participant: models.Participant{ID: 1, Name: "Nobody"}}})
	assert.ErrorIs(t, err, ErrNilSource)
}

type stageRecorder struct {
	recordingObserver
	stages []Stage
}

func (s *stageRecorder) ObserveRoundStart(stage Stage, _ models.Participant) {
	s.stages = append(s.stages, stage)
}

func TestTournamentObserverSeesEveryRound(t *testing.T) {
	recorder := &stageRecorder{}
	tournament := NewTournament(DefaultLayout())
	tournament.Observer = recorder

	entrants := []Entrant{
		entrant(1, "A", fixedSource(0.5)),
		entrant(2, "B", fixedSource(0.5)),
		entrant(3, "C", fixedSource(0.5)),
		entrant(4, "D", fixedSource(0.5)),
	}
	_, err := tournament.Run(rand.New(rand.NewPCG(8, 8)), entrants)
	require.NoError(t, err)

	assert.Equal(t, []Stage{StageQualifying, StageQualifying, StageQualifying, StageQualifying, StageFinal, StageFinal, StageFinal}, recorder.stages)
	assert.Len(t, recorder.shots, 7*SlotCount)
}

func TestRunTournamentMatchesTournamentRun(t *testing.T) {
	entrants := []Entrant{
		entrant(1, "Hot", fixedSource(0.9)),
		entrant(2, "Warm", fixedSource(0.5)),
		entrant(3, "Cool", fixedSource(0.3)),
		entrant(4, "Cold", fixedSource(0.1)),
	}

	want, err := NewTournament(DefaultLayout()).Run(rand.NewPCG(9, 3), entrants)
	require.NoError(t, err)
	got, err := RunTournament(rand.NewPCG(9, 3), DefaultLayout(), entrants)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}
