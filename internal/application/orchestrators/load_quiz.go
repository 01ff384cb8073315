package orchestrators

import (
	"context"

	"github.com/zobayerlabib/edumate/internal/domain/attempt"
)

// QuizAPIForLoad defines the backend surface needed by LoadQuiz.
type QuizAPIForLoad interface {
	GetQuiz(ctx context.Context, quizID int64) ([]attempt.Question, error)
}

// LoadQuizInput carries input for the question fetch.
type LoadQuizInput struct {
	AttemptID string
	QuizID    int64
}

// LoadQuizResult echoes the attempt stamp alongside the questions so
// the caller can discard a late response for a superseded attempt.
type LoadQuizResult struct {
	AttemptID string
	Questions []attempt.Question
}

// LoadQuizDeps holds dependencies for LoadQuiz.
type LoadQuizDeps struct {
	API QuizAPIForLoad
}

// ExecuteLoadQuiz fetches the question payload for one attempt. Order
// is preserved verbatim; scoring aligns answers positionally.
func ExecuteLoadQuiz(ctx context.Context, input LoadQuizInput, deps LoadQuizDeps) (LoadQuizResult, error) {
	questions, err := deps.API.GetQuiz(ctx, input.QuizID)
	if err != nil {
		return LoadQuizResult{AttemptID: input.AttemptID}, err
	}
	return LoadQuizResult{AttemptID: input.AttemptID, Questions: questions}, nil
}
