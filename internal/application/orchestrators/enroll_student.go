package orchestrators

import (
	"context"
	"log/slog"
	"strings"
)

// CourseAPIForEnroll defines the backend surface needed by EnrollStudent.
type CourseAPIForEnroll interface {
	EnrollStudent(ctx context.Context, courseID int64, email string) error
}

// EnrollStudentInput carries the enrollment request.
type EnrollStudentInput struct {
	CourseID int64
	Email    string
}

// EnrollStudentDeps holds dependencies for EnrollStudent.
type EnrollStudentDeps struct {
	API CourseAPIForEnroll
}

// ExecuteEnrollStudent adds a student to a course by email. The server
// verifies the caller teaches the course and that the email names a
// student account.
func ExecuteEnrollStudent(ctx context.Context, input EnrollStudentInput, deps EnrollStudentDeps) error {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return ErrMissingCredentials
	}
	if err := deps.API.EnrollStudent(ctx, input.CourseID, email); err != nil {
		return err
	}
	slog.Info("course_event", "event", "student_enrolled", "course_id", input.CourseID, "email", email)
	return nil
}
