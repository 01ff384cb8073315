package api

import (
	"context"
	"fmt"
)

// AdminStats is the platform-wide totals panel.
type AdminStats struct {
	TotalUsers    int `json:"total_users"`
	TotalStudents int `json:"total_students"`
	TotalTeachers int `json:"total_teachers"`
	TotalCourses  int `json:"total_courses"`
	TotalQuizzes  int `json:"total_quizzes"`
	TotalAttempts int `json:"total_attempts"`
}

// User is one account row in the admin user list.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// Stats fetches platform-wide totals. Admin-only on the backend.
func (c *Client) Stats(ctx context.Context) (AdminStats, error) {
	var stats AdminStats
	if err := c.get(ctx, "/admin/stats", &stats); err != nil {
		return AdminStats{}, err
	}
	return stats, nil
}

// Users lists every account.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var resp struct {
		Users []User `json:"users"`
	}
	if err := c.get(ctx, "/admin/users", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// ChangeUserRole reassigns one account's role.
func (c *Client) ChangeUserRole(ctx context.Context, userID int64, role string) error {
	body := map[string]string{"role": role}
	return c.patch(ctx, fmt.Sprintf("/admin/users/%d/role", userID), body, nil)
}

// DeleteUser removes an account and its attempts.
func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/users/%d", userID))
}
