package orchestrators

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/zobayerlabib/edumate/internal/domain/attempt"
)

// BeginAttemptInput carries input for starting a quiz attempt.
type BeginAttemptInput struct {
	Attempt *attempt.Attempt
	QuizID  int64
}

// BeginAttemptResult carries the fresh attempt stamp. Every response
// message for this attempt must carry it; responses stamped for an
// abandoned attempt are discarded on arrival.
type BeginAttemptResult struct {
	AttemptID string
}

// ExecuteBeginAttempt stamps a new attempt on the selected quiz and
// moves it into loading. Pure state transition, no I/O; the question
// fetch is issued by the caller with the returned stamp.
// PRE: A lesson is selected on the attempt
// POST: The attempt owns a fresh stamp and is in the loading phase
func ExecuteBeginAttempt(input BeginAttemptInput) (BeginAttemptResult, error) {
	stamp := uuid.NewString()
	if err := input.Attempt.SelectQuiz(input.QuizID, stamp); err != nil {
		return BeginAttemptResult{}, err
	}
	if err := input.Attempt.BeginLoading(); err != nil {
		return BeginAttemptResult{}, err
	}
	slog.Info("attempt_event", "event", "attempt_started", "quiz_id", input.QuizID, "attempt_id", stamp)
	return BeginAttemptResult{AttemptID: stamp}, nil
}
