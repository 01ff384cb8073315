// Package projections aggregates backend data into per-screen view
// models. Each widget of a screen is fetched independently; one
// failing source degrades its own widget and never blanks the rest.
package projections

import (
	"context"
	"log/slog"

	"github.com/zobayerlabib/edumate/internal/domain/catalog"
	"github.com/zobayerlabib/edumate/internal/domain/progress"
)

// ProgressAPIForStudentDashboard defines the backend surface needed by
// the student dashboard.
type ProgressAPIForStudentDashboard interface {
	MyReport(ctx context.Context) ([]progress.MasteryRecord, error)
	MyStats(ctx context.Context) (progress.Stats, error)
	MyWeeklyProgress(ctx context.Context) ([]progress.WeeklyPoint, error)
	MyCourses(ctx context.Context) ([]catalog.Course, error)
}

// StudentDashboardDeps holds dependencies for the student dashboard.
type StudentDashboardDeps struct {
	API ProgressAPIForStudentDashboard
}

// StudentDashboardResult carries one widget per concern. A nil error
// means the widget's data is trustworthy, including legitimately
// empty; a non-nil error means the widget renders its own error state.
type StudentDashboardResult struct {
	Weak           []progress.MasteryRecord
	Medium         []progress.MasteryRecord
	Strong         []progress.MasteryRecord
	AverageMastery float64
	ReportErr      error

	Stats    progress.Stats
	StatsErr error

	Weekly    []progress.WeeklyPoint
	WeeklyErr error

	Courses    []catalog.Course
	CoursesErr error
}

// QueryStudentDashboard fetches and aggregates every student-home
// widget. Bucketing happens here, client-side, so the thresholds are
// consistent regardless of how the server grouped the records.
// POST: Every record appears in exactly one bucket; a failed source
// fails only its own widget
func QueryStudentDashboard(ctx context.Context, deps StudentDashboardDeps) StudentDashboardResult {
	var result StudentDashboardResult

	records, err := deps.API.MyReport(ctx)
	if err == nil {
		result.Weak, result.Medium, result.Strong = progress.Partition(records)
		result.AverageMastery = progress.Average(records)
	} else {
		result.ReportErr = err
		slog.Warn("projection_event", "event", "widget_failed", "widget", "mastery_report", "error", err)
	}

	stats, err := deps.API.MyStats(ctx)
	if err == nil {
		result.Stats = stats
	} else {
		result.StatsErr = err
		slog.Warn("projection_event", "event", "widget_failed", "widget", "stats", "error", err)
	}

	weekly, err := deps.API.MyWeeklyProgress(ctx)
	if err == nil {
		result.Weekly = weekly
	} else {
		result.WeeklyErr = err
		slog.Warn("projection_event", "event", "widget_failed", "widget", "weekly", "error", err)
	}

	courses, err := deps.API.MyCourses(ctx)
	if err == nil {
		result.Courses = courses
	} else {
		result.CoursesErr = err
		slog.Warn("projection_event", "event", "widget_failed", "widget", "courses", "error", err)
	}

	return result
}
