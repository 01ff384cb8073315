// Package attempt implements the quiz-attempt state machine: picking a
// lesson, picking a quiz, answering every question, submitting, and
// holding the scored result. Exactly one attempt is live at a time;
// selecting a new lesson or quiz discards the previous attempt
// wholesale, and the ID stamp lets late responses for a discarded
// attempt be recognised and dropped.
package attempt

import (
	"errors"
	"fmt"
)

// Phase identifies where the attempt is in its lifecycle.
type Phase int

const (
	// PhaseIdle means no lesson has been picked.
	PhaseIdle Phase = iota
	// PhaseLessonSelected means a lesson is picked and its quiz list is
	// being (or has been) fetched. An empty quiz list keeps the attempt
	// here; that is an empty state, not an error.
	PhaseLessonSelected
	// PhaseQuizSelected means a quiz is picked but its questions have
	// not started loading.
	PhaseQuizSelected
	// PhaseLoading means the question payload fetch is in flight. The
	// quiz ID is immutable from this point on.
	PhaseLoading
	// PhaseAnswering means questions are loaded and answer slots are
	// allocated, one per question.
	PhaseAnswering
	// PhaseSubmitting means a complete answer set is on the wire.
	PhaseSubmitting
	// PhaseScored means the backend accepted the submission and the
	// result is stored. Terminal.
	PhaseScored
	// PhaseFailed means a load or submit failed. Recoverable: a failed
	// load is retried by reselecting the quiz, a failed submit by
	// resubmitting without re-answering.
	PhaseFailed
)

// String returns the phase name for logs and status lines.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLessonSelected:
		return "lesson_selected"
	case PhaseQuizSelected:
		return "quiz_selected"
	case PhaseLoading:
		return "loading"
	case PhaseAnswering:
		return "answering"
	case PhaseSubmitting:
		return "submitting"
	case PhaseScored:
		return "scored"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Domain errors
var (
	ErrNoLesson      = errors.New("no lesson selected")
	ErrNotSelected   = errors.New("no quiz selected")
	ErrNotLoading    = errors.New("attempt is not loading questions")
	ErrNotAnswering  = errors.New("attempt is not accepting answers")
	ErrNotSubmitting = errors.New("attempt has no submission in flight")
	ErrNotRetryable  = errors.New("attempt is not in a retryable state")
	ErrBadIndex      = errors.New("question index out of range")
	ErrEmptyAnswer   = errors.New("answer cannot be empty")
	ErrIncomplete    = errors.New("every question must be answered before submitting")
	ErrNoQuestions   = errors.New("quiz has no questions")
)

// Question is one prompt with its ordered option list. Order is
// significant and preserved verbatim for scoring alignment.
type Question struct {
	Prompt  string
	Options []string
}

// QuestionResult is the backend's verdict on one answered question.
type QuestionResult struct {
	Prompt    string
	Given     string
	Correct   string
	IsCorrect bool
}

// Result is the stored outcome of a scored submission.
type Result struct {
	Score       float64
	Subject     string
	Topic       string
	PerQuestion []QuestionResult
}

// Attempt is the mutable state of one in-progress quiz. The zero value
// is a valid idle attempt.
type Attempt struct {
	// ID stamps the attempt generation. Responses are matched against
	// it so a reply that arrives after the caller moved on is dropped
	// instead of applied.
	ID        string
	LessonID  int64
	QuizID    int64
	Phase     Phase
	Questions []Question
	Answers   []string
	Result    Result
}

// Owns reports whether a response stamped with id belongs to this
// attempt generation.
// INVARIANT: Attempt fields are not mutated
func (a *Attempt) Owns(id string) bool {
	return a.ID != "" && a.ID == id
}

// SelectLesson picks a lesson, discarding any prior quiz list, prior
// attempt state, and prior result. Allowed from any phase, including
// mid-submission: an in-flight reply for the discarded generation will
// no longer match Owns.
// POST: Phase is LessonSelected; only LessonID survives
func (a *Attempt) SelectLesson(lessonID int64) {
	*a = Attempt{LessonID: lessonID, Phase: PhaseLessonSelected}
}

// SelectQuiz picks one quiz from the selected lesson under a fresh
// generation stamp. Reselecting (same quiz or another) discards the
// prior attempt entirely; there is no partial carry-over.
// PRE: a lesson is selected; stamp is a fresh unique ID
// POST: Phase is QuizSelected
func (a *Attempt) SelectQuiz(quizID int64, stamp string) error {
	if a.Phase == PhaseIdle {
		return ErrNoLesson
	}
	*a = Attempt{
		ID:       stamp,
		LessonID: a.LessonID,
		QuizID:   quizID,
		Phase:    PhaseQuizSelected,
	}
	return nil
}

// BeginLoading marks the question fetch as in flight. From here the
// quiz ID is immutable for the attempt's lifetime.
// PRE: Phase is QuizSelected
// POST: Phase is Loading
func (a *Attempt) BeginLoading() error {
	if a.Phase != PhaseQuizSelected {
		return ErrNotSelected
	}
	a.Phase = PhaseLoading
	return nil
}

// QuestionsLoaded stores the fetched questions in backend order and
// allocates one empty answer slot per question.
// PRE: Phase is Loading; questions is non-empty
// POST: Phase is Answering; len(Answers) == len(Questions)
func (a *Attempt) QuestionsLoaded(questions []Question) error {
	if a.Phase != PhaseLoading {
		return ErrNotLoading
	}
	if len(questions) == 0 {
		a.Phase = PhaseFailed
		return ErrNoQuestions
	}
	a.Questions = questions
	a.Answers = make([]string, len(questions))
	a.Phase = PhaseAnswering
	return nil
}

// LoadFailed records a failed question fetch. The caller recovers by
// reselecting the quiz.
// PRE: Phase is Loading
// POST: Phase is Failed
func (a *Attempt) LoadFailed() error {
	if a.Phase != PhaseLoading {
		return ErrNotLoading
	}
	a.Phase = PhaseFailed
	return nil
}

// Answer records the choice for exactly one question slot. Re-answering
// the same question overwrites; no other slot is touched.
// PRE: Phase is Answering; index is within range; choice is non-empty
// POST: Answers[index] == choice
func (a *Attempt) Answer(index int, choice string) error {
	if a.Phase != PhaseAnswering {
		return ErrNotAnswering
	}
	if index < 0 || index >= len(a.Answers) {
		return ErrBadIndex
	}
	if choice == "" {
		return ErrEmptyAnswer
	}
	a.Answers[index] = choice
	return nil
}

// Incomplete returns the index of the first unanswered question, or -1
// when every slot is filled.
// INVARIANT: Attempt fields are not mutated
func (a *Attempt) Incomplete() int {
	for i, ans := range a.Answers {
		if ans == "" {
			return i
		}
	}
	return -1
}

// BeginSubmit transitions into Submitting. The completeness
// precondition is enforced here, before any network call: a violation
// aborts the transition and the phase is unchanged. A failed submission
// may be retried through this same transition without re-answering.
// PRE: Phase is Answering or Failed-after-submit; no empty answer slot
// POST: Phase is Submitting
func (a *Attempt) BeginSubmit() error {
	if a.Phase != PhaseAnswering && a.Phase != PhaseFailed {
		return ErrNotAnswering
	}
	if len(a.Questions) == 0 {
		return ErrNotRetryable
	}
	if a.Incomplete() >= 0 {
		return ErrIncomplete
	}
	a.Phase = PhaseSubmitting
	return nil
}

// Scored stores the backend's verdict. Terminal for this attempt; the
// dashboard's progress sources are stale from this moment and must be
// refetched by the caller.
// PRE: Phase is Submitting
// POST: Phase is Scored; Result is set
func (a *Attempt) Scored(result Result) error {
	if a.Phase != PhaseSubmitting {
		return ErrNotSubmitting
	}
	a.Result = result
	a.Phase = PhaseScored
	return nil
}

// SubmitFailed records a rejected submission. Answers are preserved so
// the caller can retry via BeginSubmit without re-entering anything.
// PRE: Phase is Submitting
// POST: Phase is Failed; Questions and Answers are unchanged
func (a *Attempt) SubmitFailed() error {
	if a.Phase != PhaseSubmitting {
		return ErrNotSubmitting
	}
	a.Phase = PhaseFailed
	return nil
}

// Abandon drops the attempt back to idle. No record of an abandoned
// attempt exists anywhere; only a scored submission is durable, and
// that durability is server-side.
// POST: the attempt is the zero value
func (a *Attempt) Abandon() {
	*a = Attempt{}
}

// Validate checks the structural invariant that holds from the moment
// questions are loaded.
// POST: Returns nil if the answer slots mirror the question list
func (a *Attempt) Validate() error {
	switch a.Phase {
	case PhaseAnswering, PhaseSubmitting, PhaseScored:
		if len(a.Answers) != len(a.Questions) {
			return fmt.Errorf("answers/questions length mismatch: %d != %d",
				len(a.Answers), len(a.Questions))
		}
	}
	return nil
}
