package projections

import (
	"context"
	"log/slog"

	"github.com/zobayerlabib/edumate/internal/adapters/api"
	"github.com/zobayerlabib/edumate/internal/domain/catalog"
	"github.com/zobayerlabib/edumate/internal/domain/progress"
)

// TeacherAPIForDashboard defines the backend surface needed by the
// teacher views.
type TeacherAPIForDashboard interface {
	MyCourses(ctx context.Context) ([]catalog.Course, error)
	StudentsProgress(ctx context.Context, courseID int64) ([]api.StudentProgress, error)
	StudentWeeklyProgress(ctx context.Context, courseID int64, email string) ([]progress.WeeklyPoint, error)
	StudentWeakTopics(ctx context.Context, courseID int64, email string) ([]progress.MasteryRecord, error)
}

// TeacherCourseQuery names the course a teacher is inspecting.
type TeacherCourseQuery struct {
	CourseID int64
}

// TeacherDashboardDeps holds dependencies for the teacher views.
type TeacherDashboardDeps struct {
	API TeacherAPIForDashboard
}

// TeacherCourseResult is the per-course roster with progress summaries.
type TeacherCourseResult struct {
	Students    []api.StudentProgress
	StudentsErr error
}

// QueryTeacherCourse fetches the progress roster for one course.
func QueryTeacherCourse(ctx context.Context, query TeacherCourseQuery, deps TeacherDashboardDeps) TeacherCourseResult {
	var result TeacherCourseResult
	students, err := deps.API.StudentsProgress(ctx, query.CourseID)
	if err == nil {
		result.Students = students
	} else {
		result.StudentsErr = err
		slog.Warn("projection_event", "event", "widget_failed", "widget", "students_progress", "error", err)
	}
	return result
}

// TeacherStudentQuery names one enrolled student within a course.
type TeacherStudentQuery struct {
	CourseID int64
	Email    string
}

// TeacherStudentResult is the drill-down view for one student: their
// weekly activity and the topics below the mastery bar.
type TeacherStudentResult struct {
	Weekly    []progress.WeeklyPoint
	WeeklyErr error

	// WeakTopics is re-bucketed client-side so the teacher's view of
	// "weak" matches what the student sees on their own dashboard.
	WeakTopics []progress.MasteryRecord
	TopicsErr  error
}

// QueryTeacherStudent fetches one student's drill-down widgets.
func QueryTeacherStudent(ctx context.Context, query TeacherStudentQuery, deps TeacherDashboardDeps) TeacherStudentResult {
	var result TeacherStudentResult

	weekly, err := deps.API.StudentWeeklyProgress(ctx, query.CourseID, query.Email)
	if err == nil {
		result.Weekly = weekly
	} else {
		result.WeeklyErr = err
		slog.Warn("projection_event", "event", "widget_failed", "widget", "student_weekly", "error", err)
	}

	records, err := deps.API.StudentWeakTopics(ctx, query.CourseID, query.Email)
	if err == nil {
		weak, _, _ := progress.Partition(records)
		result.WeakTopics = weak
	} else {
		result.TopicsErr = err
		slog.Warn("projection_event", "event", "widget_failed", "widget", "student_weak_topics", "error", err)
	}

	return result
}
