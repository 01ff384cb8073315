package projections

import (
	"context"
	"errors"
	"testing"

	"github.com/zobayerlabib/edumate/internal/adapters/api"
)

// mockAdminDashAPI implements AdminAPIForDashboard for testing.
type mockAdminDashAPI struct {
	stats    api.AdminStats
	statsErr error
	users    []api.User
	usersErr error
}

func (m *mockAdminDashAPI) Stats(_ context.Context) (api.AdminStats, error) {
	return m.stats, m.statsErr
}

func (m *mockAdminDashAPI) Users(_ context.Context) ([]api.User, error) {
	return m.users, m.usersErr
}

func TestQueryAdminDashboard_BothWidgets(t *testing.T) {
	deps := AdminDashboardDeps{API: &mockAdminDashAPI{
		stats: api.AdminStats{TotalUsers: 12, TotalCourses: 3},
		users: []api.User{{ID: 1, Email: "admin@example.com", Role: "admin"}},
	}}
	result := QueryAdminDashboard(context.Background(), deps)
	if result.StatsErr != nil || result.UsersErr != nil {
		t.Fatalf("errors: %v / %v", result.StatsErr, result.UsersErr)
	}
	if result.Stats.TotalUsers != 12 || len(result.Users) != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestQueryAdminDashboard_UserTableSurvivesStatsFailure(t *testing.T) {
	boom := errors.New("stats endpoint down")
	deps := AdminDashboardDeps{API: &mockAdminDashAPI{
		statsErr: boom,
		users:    []api.User{{ID: 1, Email: "admin@example.com", Role: "admin"}},
	}}
	result := QueryAdminDashboard(context.Background(), deps)
	if !errors.Is(result.StatsErr, boom) {
		t.Errorf("StatsErr = %v", result.StatsErr)
	}
	if result.UsersErr != nil || len(result.Users) != 1 {
		t.Error("the user table must render despite the stats failure")
	}
}
