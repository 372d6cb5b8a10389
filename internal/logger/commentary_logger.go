package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/models"
)

// CommentaryLogger narrates simulated rounds shot by shot. It satisfies
// contest.Observer and never touches the random stream.
type CommentaryLogger struct {
	*logrus.Entry
}

// NewCommentaryLogger creates a new commentary logger.
func NewCommentaryLogger(baseLogger *logrus.Logger) *CommentaryLogger {
	return &CommentaryLogger{
		Entry: baseLogger.WithField("component", "commentary"),
	}
}

// ObserveRoundStart announces the next shooter.
func (cl *CommentaryLogger) ObserveRoundStart(stage contest.Stage, participant models.Participant) {
	cl.WithFields(logrus.Fields{
		"stage":          string(stage),
		"participant_id": participant.ID,
	}).Infof("Next participant: %s", participant.Name)
}

// ObserveShot reports a single ball.
func (cl *CommentaryLogger) ObserveShot(slot int, ball contest.BallType, made bool) {
	result := "misses"
	if made {
		result = "scores"
	}
	cl.WithField("slot", slot).Infof("%s: %s", ball, result)
}

// ObserveRound reports the round total.
func (cl *CommentaryLogger) ObserveRound(score int) {
	cl.WithField("score", score).Infof("Total score: %d", score)
}
