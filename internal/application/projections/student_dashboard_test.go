package projections

import (
	"context"
	"errors"
	"testing"

	"github.com/zobayerlabib/edumate/internal/domain/catalog"
	"github.com/zobayerlabib/edumate/internal/domain/progress"
)

// mockStudentAPI implements ProgressAPIForStudentDashboard for testing.
type mockStudentAPI struct {
	records    []progress.MasteryRecord
	recordsErr error
	stats      progress.Stats
	statsErr   error
	weekly     []progress.WeeklyPoint
	weeklyErr  error
	courses    []catalog.Course
	coursesErr error
}

func (m *mockStudentAPI) MyReport(_ context.Context) ([]progress.MasteryRecord, error) {
	return m.records, m.recordsErr
}

func (m *mockStudentAPI) MyStats(_ context.Context) (progress.Stats, error) {
	return m.stats, m.statsErr
}

func (m *mockStudentAPI) MyWeeklyProgress(_ context.Context) ([]progress.WeeklyPoint, error) {
	return m.weekly, m.weeklyErr
}

func (m *mockStudentAPI) MyCourses(_ context.Context) ([]catalog.Course, error) {
	return m.courses, m.coursesErr
}

func sampleRecords() []progress.MasteryRecord {
	return []progress.MasteryRecord{
		{Subject: "Math", Topic: "Algebra", Mastery: 88},
		{Subject: "Math", Topic: "Geometry", Mastery: 30},
		{Subject: "Science", Topic: "Cells", Mastery: 55},
		{Subject: "Math", Topic: "Fractions", Mastery: 70},
	}
}

func TestQueryStudentDashboard_BucketsClientSide(t *testing.T) {
	deps := StudentDashboardDeps{API: &mockStudentAPI{records: sampleRecords()}}
	result := QueryStudentDashboard(context.Background(), deps)

	if result.ReportErr != nil {
		t.Fatalf("ReportErr = %v", result.ReportErr)
	}
	if len(result.Weak) != 1 || result.Weak[0].Topic != "Geometry" {
		t.Errorf("Weak = %+v", result.Weak)
	}
	if len(result.Medium) != 1 || result.Medium[0].Topic != "Cells" {
		t.Errorf("Medium = %+v", result.Medium)
	}
	// 70 is exactly the strong threshold and belongs upward.
	if len(result.Strong) != 2 {
		t.Errorf("Strong = %+v", result.Strong)
	}
	if total := len(result.Weak) + len(result.Medium) + len(result.Strong); total != 4 {
		t.Errorf("records split into %d, want 4", total)
	}
}

func TestQueryStudentDashboard_OneFailedSourceDegradesOneWidget(t *testing.T) {
	boom := errors.New("report endpoint down")
	deps := StudentDashboardDeps{API: &mockStudentAPI{
		recordsErr: boom,
		stats:      progress.Stats{TotalAttempts: 5},
		weekly:     []progress.WeeklyPoint{{Label: "W33", Attempts: 2}},
		courses:    []catalog.Course{{ID: 1, Title: "Algebra I"}},
	}}
	result := QueryStudentDashboard(context.Background(), deps)

	if !errors.Is(result.ReportErr, boom) {
		t.Errorf("ReportErr = %v, want the source error", result.ReportErr)
	}
	if result.StatsErr != nil || result.WeeklyErr != nil || result.CoursesErr != nil {
		t.Error("other widgets must not inherit the failure")
	}
	if result.Stats.TotalAttempts != 5 || len(result.Weekly) != 1 || len(result.Courses) != 1 {
		t.Error("healthy widgets must still carry their data")
	}
}

func TestQueryStudentDashboard_EmptyIsNotAnError(t *testing.T) {
	deps := StudentDashboardDeps{API: &mockStudentAPI{}}
	result := QueryStudentDashboard(context.Background(), deps)

	if result.ReportErr != nil || result.StatsErr != nil || result.WeeklyErr != nil || result.CoursesErr != nil {
		t.Error("a brand-new student has empty widgets, not failed ones")
	}
	if result.AverageMastery != 0 {
		t.Errorf("AverageMastery = %v, want 0 for no records", result.AverageMastery)
	}
}
