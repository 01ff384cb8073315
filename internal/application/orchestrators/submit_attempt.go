package orchestrators

import (
	"context"
	"log/slog"

	"github.com/zobayerlabib/edumate/internal/domain/attempt"
)

// AttemptAPIForSubmit defines the backend surface needed by SubmitAttempt.
type AttemptAPIForSubmit interface {
	SubmitAttempt(ctx context.Context, quizID int64, answers []string) (attempt.Result, error)
}

// SubmitAttemptInput carries a snapshot of the attempt at submission
// time. The caller has already moved the attempt into the submitting
// phase, which guarantees every answer slot is filled.
type SubmitAttemptInput struct {
	AttemptID string
	QuizID    int64
	Answers   []string
}

// SubmitAttemptResult echoes the attempt stamp with the scored result.
type SubmitAttemptResult struct {
	AttemptID string
	Result    attempt.Result
}

// SubmitAttemptDeps holds dependencies for SubmitAttempt.
type SubmitAttemptDeps struct {
	API AttemptAPIForSubmit
}

// ExecuteSubmitAttempt sends the complete answer set for scoring.
// PRE: Answers has no empty slot (enforced by the attempt phase
// transition before this runs)
// POST: On success the result carries the score and per-question
// breakdown, stamped with the attempt it belongs to
func ExecuteSubmitAttempt(ctx context.Context, input SubmitAttemptInput, deps SubmitAttemptDeps) (SubmitAttemptResult, error) {
	result, err := deps.API.SubmitAttempt(ctx, input.QuizID, input.Answers)
	if err != nil {
		slog.Info("attempt_event", "event", "submit_failed", "quiz_id", input.QuizID, "attempt_id", input.AttemptID, "error", err)
		return SubmitAttemptResult{AttemptID: input.AttemptID}, err
	}
	slog.Info("attempt_event", "event", "submit_scored", "quiz_id", input.QuizID, "attempt_id", input.AttemptID, "score", result.Score)
	return SubmitAttemptResult{AttemptID: input.AttemptID, Result: result}, nil
}
