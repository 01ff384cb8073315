package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zobayerlabib/edumate/internal/application/orchestrators"
	"github.com/zobayerlabib/edumate/internal/domain/route"
	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// loginRoles is the role picker order on the login form.
var loginRoles = []string{session.RoleStudent, session.RoleTeacher, session.RoleAdmin}

type loginState struct {
	email    textinput.Model
	password textinput.Model
	roleIdx  int
	focus    int // 0 email, 1 password, 2 role picker
	busy     bool
	errMsg   string
}

func newLoginState() loginState {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	return loginState{email: email, password: password}
}

func (s *loginState) setFocus(i int) {
	s.focus = (i + 3) % 3
	s.email.Blur()
	s.password.Blur()
	switch s.focus {
	case 0:
		s.email.Focus()
	case 1:
		s.password.Focus()
	}
}

func (m Model) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.login
	if s.busy {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "down":
		s.setFocus(s.focus + 1)
		return m, nil
	case "shift+tab", "up":
		s.setFocus(s.focus - 1)
		return m, nil
	case "left":
		if s.focus == 2 {
			s.roleIdx = (s.roleIdx + len(loginRoles) - 1) % len(loginRoles)
			return m, nil
		}
	case "right":
		if s.focus == 2 {
			s.roleIdx = (s.roleIdx + 1) % len(loginRoles)
			return m, nil
		}
	case "ctrl+n":
		m.path = "/register"
		m.register = newRegisterState()
		return m, nil
	case "ctrl+f":
		m.path = "/forgot"
		m.forgot = newForgotState()
		return m, nil
	case "enter":
		s.busy = true
		s.errMsg = ""
		return m, loginCmd(m.deps, orchestrators.LoginInput{
			Email:    s.email.Value(),
			Password: s.password.Value(),
			Role:     loginRoles[s.roleIdx],
			From:     m.pendingFrom,
		})
	}

	var cmd tea.Cmd
	switch s.focus {
	case 0:
		s.email, cmd = s.email.Update(msg)
	case 1:
		s.password, cmd = s.password.Update(msg)
	}
	return m, cmd
}

func (m Model) onLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		m.login.errMsg = msg.err.Error()
		return m, nil
	}
	m.pendingFrom = ""
	cmd := m.navigate(msg.target)
	return m, cmd
}

func (m Model) viewLogin() string {
	s := m.login
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in to EduMate"))
	b.WriteString("\n")
	if m.pendingFrom != "" {
		b.WriteString(faintStyle.Render("You need to sign in to reach " + m.pendingFrom))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.email.View())
	b.WriteString("\n")
	b.WriteString(s.password.View())
	b.WriteString("\n\n")
	b.WriteString(rolePicker(loginRoles, s.roleIdx, s.focus == 2))
	b.WriteString("\n\n")
	if s.busy {
		b.WriteString(m.spin.View() + " signing in")
	} else if s.errMsg != "" {
		b.WriteString(errStyle.Render(s.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(faintStyle.Render("enter sign in · ctrl+n register · ctrl+f forgot password"))
	return widgetStyle.Width(min(m.contentWidth()-2, 60)).Render(b.String())
}

// rolePicker renders the horizontal role selector.
func rolePicker(roles []string, idx int, focused bool) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		if i == idx {
			parts[i] = selectedStyle.Render("[" + r + "]")
		} else {
			parts[i] = faintStyle.Render(" " + r + " ")
		}
	}
	label := "role: "
	if focused {
		label = selectedStyle.Render("role: ")
	}
	return label + strings.Join(parts, " ")
}

// --- registration ---

// registerRoles excludes admin, which is provisioned server-side.
var registerRoles = []string{session.RoleStudent, session.RoleTeacher}

type registerState struct {
	email    textinput.Model
	password textinput.Model
	confirm  textinput.Model
	roleIdx  int
	focus    int // 0..2 inputs, 3 role picker
	busy     bool
	errMsg   string
	done     bool
}

func newRegisterState() registerState {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.EchoMode = textinput.EchoPassword

	return registerState{email: email, password: password, confirm: confirm}
}

func (s *registerState) setFocus(i int) {
	s.focus = (i + 4) % 4
	s.email.Blur()
	s.password.Blur()
	s.confirm.Blur()
	switch s.focus {
	case 0:
		s.email.Focus()
	case 1:
		s.password.Focus()
	case 2:
		s.confirm.Focus()
	}
}

func (m Model) updateRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.register
	if s.busy {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.path = route.LoginPath
		m.login = newLoginState()
		return m, nil
	case "tab", "down":
		s.setFocus(s.focus + 1)
		return m, nil
	case "shift+tab", "up":
		s.setFocus(s.focus - 1)
		return m, nil
	case "left", "right":
		if s.focus == 3 {
			s.roleIdx = (s.roleIdx + 1) % len(registerRoles)
			return m, nil
		}
	case "enter":
		if s.done {
			m.path = route.LoginPath
			m.login = newLoginState()
			return m, nil
		}
		s.busy = true
		s.errMsg = ""
		return m, registerCmd(m.deps, orchestrators.RegisterInput{
			Email:           s.email.Value(),
			Password:        s.password.Value(),
			ConfirmPassword: s.confirm.Value(),
			Role:            registerRoles[s.roleIdx],
		})
	}

	var cmd tea.Cmd
	switch s.focus {
	case 0:
		s.email, cmd = s.email.Update(msg)
	case 1:
		s.password, cmd = s.password.Update(msg)
	case 2:
		s.confirm, cmd = s.confirm.Update(msg)
	}
	return m, cmd
}

func (m Model) onRegisterDone(msg registerDoneMsg) (tea.Model, tea.Cmd) {
	m.register.busy = false
	if msg.err != nil {
		m.register.errMsg = msg.err.Error()
		return m, nil
	}
	m.register.done = true
	return m, nil
}

func (m Model) viewRegister() string {
	s := m.register
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create an account"))
	b.WriteString("\n\n")
	if s.done {
		b.WriteString(strongStyle.Render("Account created."))
		b.WriteString("\n\n")
		b.WriteString(faintStyle.Render("enter to sign in"))
		return widgetStyle.Width(min(m.contentWidth()-2, 60)).Render(b.String())
	}
	b.WriteString(s.email.View())
	b.WriteString("\n")
	b.WriteString(s.password.View())
	b.WriteString("\n")
	b.WriteString(s.confirm.View())
	b.WriteString("\n\n")
	b.WriteString(rolePicker(registerRoles, s.roleIdx, s.focus == 3))
	b.WriteString("\n\n")
	if s.busy {
		b.WriteString(m.spin.View() + " creating account")
	} else if s.errMsg != "" {
		b.WriteString(errStyle.Render(s.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(faintStyle.Render("enter create · esc back to sign in"))
	return widgetStyle.Width(min(m.contentWidth()-2, 60)).Render(b.String())
}

// --- password reset ---

type forgotState struct {
	email       textinput.Model
	otp         textinput.Model
	newPassword textinput.Model
	confirm     textinput.Model
	// stage 0 requests the code, stage 1 completes the reset, stage 2
	// is done.
	stage  int
	focus  int
	busy   bool
	errMsg string
	issued string // code echoed by the demo backend
}

func newForgotState() forgotState {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	otp := textinput.New()
	otp.Placeholder = "reset code"
	otp.CharLimit = 12

	newPassword := textinput.New()
	newPassword.Placeholder = "new password"
	newPassword.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "confirm new password"
	confirm.EchoMode = textinput.EchoPassword

	return forgotState{email: email, otp: otp, newPassword: newPassword, confirm: confirm}
}

func (s *forgotState) setFocus(i int) {
	s.focus = (i + 3) % 3
	s.otp.Blur()
	s.newPassword.Blur()
	s.confirm.Blur()
	switch s.focus {
	case 0:
		s.otp.Focus()
	case 1:
		s.newPassword.Focus()
	case 2:
		s.confirm.Focus()
	}
}

func (m Model) updateForgotKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.forgot
	if s.busy {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.path = route.LoginPath
		m.login = newLoginState()
		return m, nil
	case "tab", "down":
		if s.stage == 1 {
			s.setFocus(s.focus + 1)
		}
		return m, nil
	case "shift+tab", "up":
		if s.stage == 1 {
			s.setFocus(s.focus - 1)
		}
		return m, nil
	case "enter":
		switch s.stage {
		case 0:
			s.busy = true
			s.errMsg = ""
			return m, forgotCmd(m.deps, s.email.Value())
		case 1:
			s.busy = true
			s.errMsg = ""
			return m, resetCmd(m.deps, orchestrators.ResetPasswordInput{
				Email:           s.email.Value(),
				OTP:             s.otp.Value(),
				NewPassword:     s.newPassword.Value(),
				ConfirmPassword: s.confirm.Value(),
			})
		default:
			m.path = route.LoginPath
			m.login = newLoginState()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if s.stage == 0 {
		s.email, cmd = s.email.Update(msg)
		return m, cmd
	}
	switch s.focus {
	case 0:
		s.otp, cmd = s.otp.Update(msg)
	case 1:
		s.newPassword, cmd = s.newPassword.Update(msg)
	case 2:
		s.confirm, cmd = s.confirm.Update(msg)
	}
	return m, cmd
}

func (m Model) onForgotDone(msg forgotDoneMsg) (tea.Model, tea.Cmd) {
	s := &m.forgot
	s.busy = false
	if msg.err != nil {
		s.errMsg = msg.err.Error()
		return m, nil
	}
	s.stage = 1
	s.issued = msg.otp
	s.email.Blur()
	s.setFocus(0)
	return m, nil
}

func (m Model) onResetDone(msg resetDoneMsg) (tea.Model, tea.Cmd) {
	s := &m.forgot
	s.busy = false
	if msg.err != nil {
		s.errMsg = msg.err.Error()
		return m, nil
	}
	s.stage = 2
	return m, nil
}

func (m Model) viewForgot() string {
	s := m.forgot
	var b strings.Builder
	b.WriteString(titleStyle.Render("Reset password"))
	b.WriteString("\n\n")

	switch s.stage {
	case 0:
		b.WriteString(s.email.View())
		b.WriteString("\n\n")
		if s.busy {
			b.WriteString(m.spin.View() + " requesting code")
		} else if s.errMsg != "" {
			b.WriteString(errStyle.Render(s.errMsg))
		}
		b.WriteString("\n\n")
		b.WriteString(faintStyle.Render("enter request code · esc back"))
	case 1:
		if s.issued != "" {
			b.WriteString(faintStyle.Render("Your reset code: ") + selectedStyle.Render(s.issued))
			b.WriteString("\n\n")
		}
		b.WriteString(s.otp.View())
		b.WriteString("\n")
		b.WriteString(s.newPassword.View())
		b.WriteString("\n")
		b.WriteString(s.confirm.View())
		b.WriteString("\n\n")
		if s.busy {
			b.WriteString(m.spin.View() + " resetting")
		} else if s.errMsg != "" {
			b.WriteString(errStyle.Render(s.errMsg))
		}
		b.WriteString("\n\n")
		b.WriteString(faintStyle.Render("enter reset · esc back"))
	default:
		b.WriteString(strongStyle.Render("Password reset."))
		b.WriteString("\n\n")
		b.WriteString(faintStyle.Render("enter to sign in"))
	}
	return widgetStyle.Width(min(m.contentWidth()-2, 60)).Render(b.String())
}
