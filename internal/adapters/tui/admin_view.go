package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zobayerlabib/edumate/internal/application/orchestrators"
	"github.com/zobayerlabib/edumate/internal/application/projections"
	"github.com/zobayerlabib/edumate/internal/domain/session"
)

type adminState struct {
	gen     int
	loading bool
	dash    projections.AdminDashboardResult

	cursor int
	// confirmingDelete holds the pending deletion target until the
	// user confirms or cancels.
	confirmingDelete bool
	// pickingRole holds the role picker open for the selected user.
	pickingRole bool
	roleIdx     int
	busy        bool
}

func newAdminState(gen int) adminState {
	return adminState{gen: gen, loading: true}
}

func (m Model) updateAdminMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &m.admin
	switch msg := msg.(type) {
	case adminDashboardMsg:
		if msg.gen != s.gen {
			return m, nil
		}
		if isUnauthorized(msg.result.StatsErr) || isUnauthorized(msg.result.UsersErr) {
			cmd := m.bounceUnauthorized()
			return m, cmd
		}
		s.loading = false
		s.dash = msg.result
		if s.cursor >= len(s.dash.Users) {
			s.cursor = 0
		}

	case adminActionMsg:
		s.busy = false
		if msg.err != nil {
			if isUnauthorized(msg.err) {
				cmd := m.bounceUnauthorized()
				return m, cmd
			}
			m.status = msg.err.Error()
			return m, nil
		}
		s.gen++
		s.loading = true
		return m, adminDashboardCmd(m.deps, s.gen)
	}
	return m, nil
}

func (m Model) updateAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.admin
	if s.busy {
		return m, nil
	}
	actor := m.deps.Sessions.Current().Identity.Email

	if s.confirmingDelete {
		switch msg.String() {
		case "y":
			target := s.dash.Users[s.cursor]
			s.confirmingDelete = false
			s.busy = true
			return m, deleteUserCmd(m.deps, orchestrators.DeleteUserInput{
				UserID:      target.ID,
				ActorEmail:  actor,
				TargetEmail: target.Email,
				Confirmed:   true,
			})
		case "n", "esc":
			s.confirmingDelete = false
		}
		return m, nil
	}

	if s.pickingRole {
		switch msg.String() {
		case "left", "h":
			s.roleIdx = (s.roleIdx + len(loginRoles) - 1) % len(loginRoles)
		case "right", "l":
			s.roleIdx = (s.roleIdx + 1) % len(loginRoles)
		case "enter":
			target := s.dash.Users[s.cursor]
			s.pickingRole = false
			s.busy = true
			return m, changeRoleCmd(m.deps, orchestrators.ChangeUserRoleInput{
				UserID:      target.ID,
				Role:        loginRoles[s.roleIdx],
				ActorEmail:  actor,
				TargetEmail: target.Email,
			})
		case "esc":
			s.pickingRole = false
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.dash.Users)-1 {
			s.cursor++
		}
	case "r":
		s.gen++
		s.loading = true
		return m, adminDashboardCmd(m.deps, s.gen)
	case "enter":
		if len(s.dash.Users) == 0 {
			return m, nil
		}
		s.pickingRole = true
		s.roleIdx = roleIndex(s.dash.Users[s.cursor].Role)
	case "d":
		if len(s.dash.Users) == 0 {
			return m, nil
		}
		s.confirmingDelete = true
	}
	return m, nil
}

func roleIndex(role string) int {
	for i, r := range loginRoles {
		if r == role {
			return i
		}
	}
	return 0
}

func (m Model) viewAdmin() string {
	s := m.admin
	var b strings.Builder
	b.WriteString(titleStyle.Render("Platform administration"))
	b.WriteString("\n")
	if s.loading {
		return b.String() + m.spin.View() + " loading"
	}

	stats := s.dash.Stats
	totals := fmt.Sprintf("users %d (students %d, teachers %d)   courses %d   quizzes %d   attempts %d",
		stats.TotalUsers, stats.TotalStudents, stats.TotalTeachers,
		stats.TotalCourses, stats.TotalQuizzes, stats.TotalAttempts)
	b.WriteString(renderWidget("Totals", totals, s.dash.StatsErr))
	b.WriteString("\n")

	b.WriteString(renderWidget("Accounts", m.adminUserTable(), s.dash.UsersErr))
	b.WriteString("\n")

	switch {
	case s.busy:
		b.WriteString(m.spin.View() + " applying")
	case s.confirmingDelete && len(s.dash.Users) > 0:
		target := s.dash.Users[s.cursor]
		b.WriteString(errStyle.Render(
			fmt.Sprintf("Delete %s and all their attempts? y/n", target.Email)))
	case s.pickingRole:
		b.WriteString(rolePicker(loginRoles, s.roleIdx, true) + faintStyle.Render("  enter apply · esc cancel"))
	default:
		b.WriteString(faintStyle.Render("enter change role · d delete · r refresh · ctrl+l logout · q quit"))
	}
	return b.String()
}

func (m Model) adminUserTable() string {
	s := m.admin
	if len(s.dash.Users) == 0 {
		return faintStyle.Render("No accounts")
	}
	var b strings.Builder
	b.WriteString(faintStyle.Render(fmt.Sprintf("%-5s %-30s %-8s %s", "id", "email", "role", "created")))
	b.WriteString("\n")
	for i, u := range s.dash.Users {
		role := u.Role
		if role == session.RoleAdmin {
			role = selectedStyle.Render(role)
		}
		line := fmt.Sprintf("%-5d %-30s %-8s %s", u.ID, u.Email, role, u.CreatedAt)
		if i == s.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(s.dash.Users)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
