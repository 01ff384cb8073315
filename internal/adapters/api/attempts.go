package api

import (
	"context"
	"fmt"

	"github.com/zobayerlabib/edumate/internal/domain/attempt"
	"github.com/zobayerlabib/edumate/internal/domain/progress"
)

// SubmitAttempt sends a complete, ordered answer set for one quiz. The
// caller (the attempt state machine) has already enforced that no slot
// is empty; this adapter never partially submits.
func (c *Client) SubmitAttempt(ctx context.Context, quizID int64, answers []string) (attempt.Result, error) {
	body := struct {
		Answers []string `json:"answers"`
	}{Answers: answers}

	var resp struct {
		AttemptID int64   `json:"attempt_id"`
		QuizID    int64   `json:"quiz_id"`
		Score     float64 `json:"score"`
		Topic     string  `json:"topic"`
		Subject   string  `json:"subject"`
		Details   []struct {
			Question      string `json:"question"`
			StudentAnswer string `json:"student_answer"`
			CorrectAnswer string `json:"correct_answer"`
			IsCorrect     bool   `json:"is_correct"`
		} `json:"details"`
	}
	if err := c.post(ctx, fmt.Sprintf("/attempts/submit/%d", quizID), body, &resp); err != nil {
		return attempt.Result{}, err
	}

	result := attempt.Result{
		Score:   resp.Score,
		Subject: resp.Subject,
		Topic:   resp.Topic,
	}
	for _, d := range resp.Details {
		result.PerQuestion = append(result.PerQuestion, attempt.QuestionResult{
			Prompt:    d.Question,
			Given:     d.StudentAnswer,
			Correct:   d.CorrectAnswer,
			IsCorrect: d.IsCorrect,
		})
	}
	return result, nil
}

// MyReport fetches the caller's mastery report, flattened and ready for
// client-side bucketing.
func (c *Client) MyReport(ctx context.Context) ([]progress.MasteryRecord, error) {
	var raw map[string]any
	if err := c.get(ctx, "/attempts/my/report", &raw); err != nil {
		return nil, err
	}
	return NormalizeMasteryReport(raw), nil
}

// MyStats fetches the caller's aggregate stats.
func (c *Client) MyStats(ctx context.Context) (progress.Stats, error) {
	var raw map[string]any
	if err := c.get(ctx, "/attempts/my/stats", &raw); err != nil {
		return progress.Stats{}, err
	}
	return NormalizeStats(raw), nil
}

// MyWeeklyProgress fetches the caller's weekly-activity series.
func (c *Client) MyWeeklyProgress(ctx context.Context) ([]progress.WeeklyPoint, error) {
	var raw map[string]any
	if err := c.get(ctx, "/attempts/my/weekly-progress", &raw); err != nil {
		return nil, err
	}
	return NormalizeWeeklySeries(raw), nil
}
