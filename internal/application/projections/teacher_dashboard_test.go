package projections

import (
	"context"
	"errors"
	"testing"

	"github.com/zobayerlabib/edumate/internal/adapters/api"
	"github.com/zobayerlabib/edumate/internal/domain/catalog"
	"github.com/zobayerlabib/edumate/internal/domain/progress"
)

// mockTeacherAPI implements TeacherAPIForDashboard for testing.
type mockTeacherAPI struct {
	roster     []api.StudentProgress
	rosterErr  error
	weekly     []progress.WeeklyPoint
	weeklyErr  error
	records    []progress.MasteryRecord
	recordsErr error
}

func (m *mockTeacherAPI) MyCourses(_ context.Context) ([]catalog.Course, error) {
	return nil, nil
}

func (m *mockTeacherAPI) StudentsProgress(_ context.Context, courseID int64) ([]api.StudentProgress, error) {
	return m.roster, m.rosterErr
}

func (m *mockTeacherAPI) StudentWeeklyProgress(_ context.Context, courseID int64, email string) ([]progress.WeeklyPoint, error) {
	return m.weekly, m.weeklyErr
}

func (m *mockTeacherAPI) StudentWeakTopics(_ context.Context, courseID int64, email string) ([]progress.MasteryRecord, error) {
	return m.records, m.recordsErr
}

func TestQueryTeacherCourse_Roster(t *testing.T) {
	deps := TeacherDashboardDeps{API: &mockTeacherAPI{roster: []api.StudentProgress{
		{Email: "a@example.com", TotalAttempts: 4, AvgScore: 62},
	}}}
	result := QueryTeacherCourse(context.Background(), TeacherCourseQuery{CourseID: 3}, deps)
	if result.StudentsErr != nil {
		t.Fatalf("StudentsErr = %v", result.StudentsErr)
	}
	if len(result.Students) != 1 || result.Students[0].Email != "a@example.com" {
		t.Errorf("Students = %+v", result.Students)
	}
}

func TestQueryTeacherStudent_ReBucketsServerFilteredTopics(t *testing.T) {
	// The server claims both are weak; client thresholds disagree on
	// the second. Only genuinely weak records survive.
	deps := TeacherDashboardDeps{API: &mockTeacherAPI{records: []progress.MasteryRecord{
		{Subject: "Math", Topic: "Geometry", Mastery: 30},
		{Subject: "Math", Topic: "Fractions", Mastery: 52},
	}}}
	result := QueryTeacherStudent(context.Background(), TeacherStudentQuery{CourseID: 3, Email: "a@example.com"}, deps)
	if result.TopicsErr != nil {
		t.Fatalf("TopicsErr = %v", result.TopicsErr)
	}
	if len(result.WeakTopics) != 1 || result.WeakTopics[0].Topic != "Geometry" {
		t.Errorf("WeakTopics = %+v", result.WeakTopics)
	}
}

func TestQueryTeacherStudent_WidgetsFailIndependently(t *testing.T) {
	boom := errors.New("weekly endpoint down")
	deps := TeacherDashboardDeps{API: &mockTeacherAPI{
		weeklyErr: boom,
		records:   []progress.MasteryRecord{{Subject: "Math", Topic: "Geometry", Mastery: 20}},
	}}
	result := QueryTeacherStudent(context.Background(), TeacherStudentQuery{CourseID: 3, Email: "a@example.com"}, deps)
	if !errors.Is(result.WeeklyErr, boom) {
		t.Errorf("WeeklyErr = %v", result.WeeklyErr)
	}
	if result.TopicsErr != nil || len(result.WeakTopics) != 1 {
		t.Error("the topics widget must render despite the weekly failure")
	}
}
