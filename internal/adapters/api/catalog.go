package api

import (
	"context"
	"fmt"

	"github.com/zobayerlabib/edumate/internal/domain/attempt"
	"github.com/zobayerlabib/edumate/internal/domain/catalog"
)

type courseDTO struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Subject      string `json:"subject"`
	TeacherEmail string `json:"teacher_email"`
}

// MyCourses lists the caller's courses: owned courses for a teacher,
// enrolled courses for a student.
func (c *Client) MyCourses(ctx context.Context) ([]catalog.Course, error) {
	var resp struct {
		Role    string      `json:"role"`
		Courses []courseDTO `json:"courses"`
	}
	if err := c.get(ctx, "/courses/my", &resp); err != nil {
		return nil, err
	}
	courses := make([]catalog.Course, 0, len(resp.Courses))
	for _, d := range resp.Courses {
		courses = append(courses, catalog.Course{
			ID:           d.ID,
			Title:        d.Title,
			Subject:      d.Subject,
			TeacherEmail: d.TeacherEmail,
		})
	}
	return courses, nil
}

type lessonDTO struct {
	ID          int64  `json:"id"`
	CourseID    int64  `json:"course_id"`
	Title       string `json:"title"`
	Topic       string `json:"topic"`
	ContentText string `json:"content_text"`
}

// LessonsForCourse lists lessons within one course.
func (c *Client) LessonsForCourse(ctx context.Context, courseID int64) ([]catalog.Lesson, error) {
	var resp struct {
		CourseID int64       `json:"course_id"`
		Lessons  []lessonDTO `json:"lessons"`
	}
	if err := c.get(ctx, fmt.Sprintf("/lessons/course/%d", courseID), &resp); err != nil {
		return nil, err
	}
	lessons := make([]catalog.Lesson, 0, len(resp.Lessons))
	for _, d := range resp.Lessons {
		lessons = append(lessons, catalog.Lesson{
			ID:          d.ID,
			CourseID:    d.CourseID,
			Title:       d.Title,
			Topic:       d.Topic,
			ContentText: d.ContentText,
		})
	}
	return lessons, nil
}

// QuizzesForLesson lists the generated quizzes for a lesson. An empty
// list is a valid empty state, not an error.
func (c *Client) QuizzesForLesson(ctx context.Context, lessonID int64) ([]catalog.QuizRef, error) {
	var resp struct {
		LessonID int64 `json:"lesson_id"`
		Quizzes  []struct {
			QuizID     int64  `json:"quiz_id"`
			Difficulty string `json:"difficulty"`
			CreatedAt  string `json:"created_at"`
		} `json:"quizzes"`
	}
	if err := c.get(ctx, fmt.Sprintf("/quizzes/lesson/%d", lessonID), &resp); err != nil {
		return nil, err
	}
	refs := make([]catalog.QuizRef, 0, len(resp.Quizzes))
	for _, d := range resp.Quizzes {
		refs = append(refs, catalog.QuizRef{
			ID:         d.QuizID,
			LessonID:   lessonID,
			Difficulty: d.Difficulty,
			CreatedAt:  d.CreatedAt,
		})
	}
	return refs, nil
}

// GetQuiz fetches the full question/option payload for one quiz.
// Question and option order is preserved verbatim: scoring on the
// backend aligns answers positionally.
func (c *Client) GetQuiz(ctx context.Context, quizID int64) ([]attempt.Question, error) {
	var resp struct {
		QuizID    int64 `json:"quiz_id"`
		LessonID  int64 `json:"lesson_id"`
		Questions []struct {
			Question string   `json:"question"`
			Options  []string `json:"options"`
		} `json:"questions"`
	}
	if err := c.get(ctx, fmt.Sprintf("/quizzes/%d", quizID), &resp); err != nil {
		return nil, err
	}
	questions := make([]attempt.Question, 0, len(resp.Questions))
	for _, d := range resp.Questions {
		questions = append(questions, attempt.Question{
			Prompt:  d.Question,
			Options: d.Options,
		})
	}
	return questions, nil
}
