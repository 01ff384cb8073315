package orchestrators

import (
	"context"
	"errors"
	"testing"

	"github.com/zobayerlabib/edumate/internal/domain/attempt"
)

// mockQuizAPI implements the quiz/attempt API interfaces for testing.
type mockQuizAPI struct {
	questions []attempt.Question
	getErr    error
	result    attempt.Result
	submitErr error
	submitted [][]string
}

func (m *mockQuizAPI) GetQuiz(_ context.Context, quizID int64) ([]attempt.Question, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.questions, nil
}

func (m *mockQuizAPI) SubmitAttempt(_ context.Context, quizID int64, answers []string) (attempt.Result, error) {
	m.submitted = append(m.submitted, answers)
	if m.submitErr != nil {
		return attempt.Result{}, m.submitErr
	}
	return m.result, nil
}

func twoQuestions() []attempt.Question {
	return []attempt.Question{
		{Prompt: "2+2?", Options: []string{"3", "4"}},
		{Prompt: "3*3?", Options: []string{"9", "6"}},
	}
}

// --- ExecuteBeginAttempt tests ---

func TestExecuteBeginAttempt_StampsAndMovesToLoading(t *testing.T) {
	var a attempt.Attempt
	a.SelectLesson(5)

	res, err := ExecuteBeginAttempt(BeginAttemptInput{Attempt: &a, QuizID: 9})
	if err != nil {
		t.Fatalf("ExecuteBeginAttempt: %v", err)
	}
	if res.AttemptID == "" {
		t.Fatal("expected a fresh attempt stamp")
	}
	if !a.Owns(res.AttemptID) {
		t.Error("the attempt must own its stamp")
	}
	if a.Phase != attempt.PhaseLoading {
		t.Errorf("Phase = %v, want PhaseLoading", a.Phase)
	}
}

func TestExecuteBeginAttempt_FreshStampPerAttempt(t *testing.T) {
	var a attempt.Attempt
	a.SelectLesson(5)

	first, err := ExecuteBeginAttempt(BeginAttemptInput{Attempt: &a, QuizID: 9})
	if err != nil {
		t.Fatalf("first begin: %v", err)
	}
	second, err := ExecuteBeginAttempt(BeginAttemptInput{Attempt: &a, QuizID: 9})
	if err != nil {
		t.Fatalf("second begin: %v", err)
	}
	if first.AttemptID == second.AttemptID {
		t.Error("restarting must mint a new stamp")
	}
	if a.Owns(first.AttemptID) {
		t.Error("the superseded stamp must no longer be owned")
	}
}

func TestExecuteBeginAttempt_RequiresLesson(t *testing.T) {
	var a attempt.Attempt
	if _, err := ExecuteBeginAttempt(BeginAttemptInput{Attempt: &a, QuizID: 9}); !errors.Is(err, attempt.ErrNoLesson) {
		t.Errorf("err = %v, want ErrNoLesson", err)
	}
}

// --- ExecuteLoadQuiz tests ---

func TestExecuteLoadQuiz_EchoesStampWithQuestions(t *testing.T) {
	apiMock := &mockQuizAPI{questions: twoQuestions()}
	res, err := ExecuteLoadQuiz(context.Background(), LoadQuizInput{AttemptID: "stamp-1", QuizID: 9},
		LoadQuizDeps{API: apiMock})
	if err != nil {
		t.Fatalf("ExecuteLoadQuiz: %v", err)
	}
	if res.AttemptID != "stamp-1" {
		t.Errorf("AttemptID = %q, want stamp-1", res.AttemptID)
	}
	if len(res.Questions) != 2 || res.Questions[0].Prompt != "2+2?" {
		t.Errorf("questions came back reordered or truncated: %+v", res.Questions)
	}
}

func TestExecuteLoadQuiz_ErrorStillCarriesStamp(t *testing.T) {
	apiMock := &mockQuizAPI{getErr: errors.New("backend down")}
	res, err := ExecuteLoadQuiz(context.Background(), LoadQuizInput{AttemptID: "stamp-1", QuizID: 9},
		LoadQuizDeps{API: apiMock})
	if err == nil {
		t.Fatal("expected an error")
	}
	if res.AttemptID != "stamp-1" {
		t.Error("failures must still be attributable to their attempt")
	}
}

// --- ExecuteSubmitAttempt tests ---

func TestExecuteSubmitAttempt_Scored(t *testing.T) {
	apiMock := &mockQuizAPI{result: attempt.Result{Score: 50, Subject: "Math", Topic: "Algebra"}}
	res, err := ExecuteSubmitAttempt(context.Background(), SubmitAttemptInput{
		AttemptID: "stamp-1", QuizID: 9, Answers: []string{"4", "6"},
	}, SubmitAttemptDeps{API: apiMock})
	if err != nil {
		t.Fatalf("ExecuteSubmitAttempt: %v", err)
	}
	if res.AttemptID != "stamp-1" || res.Result.Score != 50 {
		t.Errorf("res = %+v", res)
	}
	if len(apiMock.submitted) != 1 || len(apiMock.submitted[0]) != 2 {
		t.Errorf("submitted = %+v", apiMock.submitted)
	}
}

func TestExecuteSubmitAttempt_FailureCarriesStamp(t *testing.T) {
	apiMock := &mockQuizAPI{submitErr: errors.New("timeout")}
	res, err := ExecuteSubmitAttempt(context.Background(), SubmitAttemptInput{
		AttemptID: "stamp-1", QuizID: 9, Answers: []string{"4", "6"},
	}, SubmitAttemptDeps{API: apiMock})
	if err == nil {
		t.Fatal("expected an error")
	}
	if res.AttemptID != "stamp-1" {
		t.Error("a failed submit must still name its attempt")
	}
}

// Full flow: begin, load, answer, submit, with a stale response for a
// superseded attempt discarded by the ownership check.
func TestAttemptFlow_StaleResponseDiscarded(t *testing.T) {
	var a attempt.Attempt
	a.SelectLesson(5)

	stale, err := ExecuteBeginAttempt(BeginAttemptInput{Attempt: &a, QuizID: 9})
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	// The user restarts before the first load lands.
	fresh, err := ExecuteBeginAttempt(BeginAttemptInput{Attempt: &a, QuizID: 9})
	if err != nil {
		t.Fatalf("restart: %v", err)
	}

	// Late response for the first attempt arrives; the update loop
	// checks ownership before applying it.
	if a.Owns(stale.AttemptID) {
		t.Fatal("stale stamp must not be owned")
	}

	apiMock := &mockQuizAPI{questions: twoQuestions()}
	loaded, err := ExecuteLoadQuiz(context.Background(), LoadQuizInput{AttemptID: fresh.AttemptID, QuizID: 9},
		LoadQuizDeps{API: apiMock})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !a.Owns(loaded.AttemptID) {
		t.Fatal("fresh stamp must be owned")
	}
	if err := a.QuestionsLoaded(loaded.Questions); err != nil {
		t.Fatalf("QuestionsLoaded: %v", err)
	}

	if err := a.Answer(0, "4"); err != nil {
		t.Fatalf("Answer 0: %v", err)
	}
	if err := a.Answer(1, "9"); err != nil {
		t.Fatalf("Answer 1: %v", err)
	}
	if err := a.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}

	apiMock.result = attempt.Result{Score: 100}
	res, err := ExecuteSubmitAttempt(context.Background(), SubmitAttemptInput{
		AttemptID: fresh.AttemptID, QuizID: 9, Answers: a.Answers,
	}, SubmitAttemptDeps{API: apiMock})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := a.Scored(res.Result); err != nil {
		t.Fatalf("Scored: %v", err)
	}
	if a.Phase != attempt.PhaseScored {
		t.Errorf("Phase = %v, want PhaseScored", a.Phase)
	}
}
