package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/zobayerlabib/edumate/internal/domain/progress"
)

// StudentProgress is one enrolled student's summary row in a teacher's
// course view.
type StudentProgress struct {
	Email         string
	TotalAttempts int
	AvgScore      float64
	LastAttemptAt string
}

// StudentsProgress lists per-student progress for one of the caller's
// courses. Teacher-only on the backend.
func (c *Client) StudentsProgress(ctx context.Context, courseID int64) ([]StudentProgress, error) {
	var resp struct {
		CourseID int64 `json:"course_id"`
		Students []struct {
			Email         string  `json:"email"`
			TotalAttempts int     `json:"total_attempts"`
			AvgScore      float64 `json:"avg_score"`
			LastAttemptAt string  `json:"last_attempt_at"`
		} `json:"students"`
	}
	if err := c.get(ctx, fmt.Sprintf("/teacher/course/%d/students-progress", courseID), &resp); err != nil {
		return nil, err
	}
	rows := make([]StudentProgress, 0, len(resp.Students))
	for _, d := range resp.Students {
		rows = append(rows, StudentProgress{
			Email:         d.Email,
			TotalAttempts: d.TotalAttempts,
			AvgScore:      d.AvgScore,
			LastAttemptAt: d.LastAttemptAt,
		})
	}
	return rows, nil
}

// StudentWeeklyProgress fetches one student's weekly series as seen
// from a teacher's course.
func (c *Client) StudentWeeklyProgress(ctx context.Context, courseID int64, email string) ([]progress.WeeklyPoint, error) {
	var raw map[string]any
	path := fmt.Sprintf("/teacher/course/%d/student/%s/weekly-progress", courseID, url.PathEscape(email))
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	return NormalizeWeeklySeries(raw), nil
}

// StudentWeakTopics fetches one student's weak-topic records. The
// server pre-filters; records are still re-bucketed client-side so
// both views agree on thresholds.
func (c *Client) StudentWeakTopics(ctx context.Context, courseID int64, email string) ([]progress.MasteryRecord, error) {
	var raw map[string]any
	path := fmt.Sprintf("/teacher/course/%d/student/%s/weak-topics", courseID, url.PathEscape(email))
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	return NormalizeMasteryReport(raw), nil
}

// CourseStudents lists the emails enrolled in a course.
func (c *Client) CourseStudents(ctx context.Context, courseID int64) ([]string, error) {
	var resp struct {
		CourseID int64    `json:"course_id"`
		Students []string `json:"students"`
	}
	if err := c.get(ctx, fmt.Sprintf("/courses/%d/students", courseID), &resp); err != nil {
		return nil, err
	}
	return resp.Students, nil
}

// EnrollStudent adds a student to one of the caller's courses by email.
func (c *Client) EnrollStudent(ctx context.Context, courseID int64, email string) error {
	body := map[string]string{"email": email}
	return c.post(ctx, fmt.Sprintf("/courses/%d/enroll-student", courseID), body, nil)
}
