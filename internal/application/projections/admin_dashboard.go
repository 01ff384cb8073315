package projections

import (
	"context"
	"log/slog"

	"github.com/zobayerlabib/edumate/internal/adapters/api"
)

// AdminAPIForDashboard defines the backend surface needed by the admin
// dashboard.
type AdminAPIForDashboard interface {
	Stats(ctx context.Context) (api.AdminStats, error)
	Users(ctx context.Context) ([]api.User, error)
}

// AdminDashboardDeps holds dependencies for the admin dashboard.
type AdminDashboardDeps struct {
	API AdminAPIForDashboard
}

// AdminDashboardResult carries the totals panel and the user table as
// independent widgets.
type AdminDashboardResult struct {
	Stats    api.AdminStats
	StatsErr error

	Users    []api.User
	UsersErr error
}

// QueryAdminDashboard fetches the platform totals and the account list.
func QueryAdminDashboard(ctx context.Context, deps AdminDashboardDeps) AdminDashboardResult {
	var result AdminDashboardResult

	stats, err := deps.API.Stats(ctx)
	if err == nil {
		result.Stats = stats
	} else {
		result.StatsErr = err
		slog.Warn("projection_event", "event", "widget_failed", "widget", "admin_stats", "error", err)
	}

	users, err := deps.API.Users(ctx)
	if err == nil {
		result.Users = users
	} else {
		result.UsersErr = err
		slog.Warn("projection_event", "event", "widget_failed", "widget", "admin_users", "error", err)
	}

	return result
}
