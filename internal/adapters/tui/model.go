// Package tui is the terminal front end. One bubbletea model owns all
// screen state; every backend call runs as a command and re-enters the
// update loop as a message, so state transitions stay single-threaded.
// Navigation always passes through the route gate, and responses for
// superseded attempts or reloads are discarded by stamp before they
// touch any state.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zobayerlabib/edumate/internal/adapters/api"
	appsession "github.com/zobayerlabib/edumate/internal/application/session"
	"github.com/zobayerlabib/edumate/internal/domain/route"
	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// Backend is the full API surface the client consumes. *api.Client
// satisfies it; tests substitute a fake.
type Backend interface {
	studentBackend
	teacherBackend
	adminBackend
	authBackend
}

// Deps wires the model to the outside world.
type Deps struct {
	Backend  Backend
	Sessions *appsession.Manager
	// InitialPath is where the client tries to land on startup,
	// "/" when unspecified.
	InitialPath string
}

// protectedPaths maps each protected route to the roles it admits.
var protectedPaths = map[string][]string{
	"/student": {session.RoleStudent},
	"/teacher": {session.RoleTeacher},
	"/admin":   {session.RoleAdmin},
}

// publicOnlyPaths are reachable without a session.
var publicOnlyPaths = map[string]bool{
	route.LoginPath: true,
	"/register":     true,
	"/forgot":       true,
}

// Model is the root bubbletea model.
type Model struct {
	deps Deps

	path string
	// pendingFrom remembers the path an anonymous user was bounced
	// away from; a successful login lands there.
	pendingFrom string

	width  int
	height int
	spin   spinner.Model
	status string

	login    loginState
	register registerState
	forgot   forgotState
	student  studentState
	teacher  teacherState
	admin    adminState
}

// NewModel creates the root model. Nothing is fetched until Init runs
// the credential restore.
func NewModel(deps Deps) Model {
	if deps.InitialPath == "" {
		deps.InitialPath = "/"
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	return Model{
		deps:     deps,
		path:     route.LoginPath,
		spin:     sp,
		login:    newLoginState(),
		register: newRegisterState(),
		forgot:   newForgotState(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, restoreCmd(m.deps))
}

// navigate applies the route gate and moves to the resulting screen,
// kicking off that screen's data loads.
func (m *Model) navigate(path string) tea.Cmd {
	if path == "/" {
		cur := m.deps.Sessions.Current()
		if !cur.IsAuthenticated() {
			path = route.LoginPath
		} else {
			path = cur.Identity.HomePath()
		}
	}

	if allowed, ok := protectedPaths[path]; ok {
		switch d := route.Decide(m.deps.Sessions.Current(), allowed, path); d.Outcome {
		case route.RedirectLogin:
			m.pendingFrom = d.From
			m.path = route.LoginPath
			m.login = newLoginState()
			return nil
		case route.RedirectHome:
			path = d.Target
		}
	}

	m.path = path
	return m.loadForPath(path)
}

// loadForPath starts the data fetches a screen needs on entry.
func (m *Model) loadForPath(path string) tea.Cmd {
	switch path {
	case "/student":
		m.student = newStudentState(m.student.gen + 1)
		return studentDashboardCmd(m.deps, m.student.gen)
	case "/teacher":
		m.teacher = newTeacherState(m.teacher.gen + 1)
		return teacherCoursesCmd(m.deps, m.teacher.gen)
	case "/admin":
		m.admin = newAdminState(m.admin.gen + 1)
		return adminDashboardCmd(m.deps, m.admin.gen)
	}
	return nil
}

// bounceUnauthorized routes a backend 401 through the gate: the
// session manager has already invalidated itself via the client hook,
// so re-running navigation lands on login with the current path
// remembered.
func (m *Model) bounceUnauthorized() tea.Cmd {
	from := m.path
	cmd := m.navigate(from)
	if m.path == route.LoginPath {
		m.pendingFrom = from
		m.status = "Session expired, sign in again"
	}
	return cmd
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case restoredMsg:
		return m.onRestored(msg)

	case loginDoneMsg:
		return m.onLoginDone(msg)
	case registerDoneMsg:
		return m.onRegisterDone(msg)
	case forgotDoneMsg:
		return m.onForgotDone(msg)
	case resetDoneMsg:
		return m.onResetDone(msg)
	case logoutDoneMsg:
		m.pendingFrom = ""
		m.login = newLoginState()
		m.path = route.LoginPath
		return m, nil

	case studentDashboardMsg, lessonsMsg, quizzesMsg, quizLoadedMsg, scoredMsg:
		return m.updateStudentMsg(msg)
	case teacherCoursesMsg, teacherCourseMsg, teacherStudentMsg, courseStudentsMsg, enrollDoneMsg:
		return m.updateTeacherMsg(msg)
	case adminDashboardMsg, adminActionMsg:
		return m.updateAdminMsg(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) onRestored(msg restoredMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "Could not restore session: " + msg.err.Error()
		m.path = route.LoginPath
		return m, nil
	}
	switch msg.decision.Outcome {
	case route.RedirectLogin:
		m.pendingFrom = msg.decision.From
		m.path = route.LoginPath
		return m, nil
	case route.RedirectHome:
		cmd := m.navigate(msg.decision.Target)
		return m, cmd
	default:
		cmd := m.navigate(m.deps.InitialPath)
		return m, cmd
	}
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit is global except while a text field would swallow "q".
	if key.Matches(msg, keys.Quit) && !m.inTextEntry() {
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	if key.Matches(msg, keys.Logout) && m.deps.Sessions.IsAuthenticated() {
		return m, logoutCmd(m.deps)
	}

	m.status = ""
	switch m.path {
	case route.LoginPath:
		return m.updateLoginKey(msg)
	case "/register":
		return m.updateRegisterKey(msg)
	case "/forgot":
		return m.updateForgotKey(msg)
	case "/student":
		return m.updateStudentKey(msg)
	case "/teacher":
		return m.updateTeacherKey(msg)
	case "/admin":
		return m.updateAdminKey(msg)
	}
	return m, nil
}

// inTextEntry reports whether a focused text input should receive
// printable keys instead of the global bindings.
func (m Model) inTextEntry() bool {
	switch m.path {
	case route.LoginPath, "/register", "/forgot":
		return true
	case "/teacher":
		return m.teacher.enrolling
	}
	return false
}

func (m Model) View() string {
	var body string
	switch m.path {
	case route.LoginPath:
		body = m.viewLogin()
	case "/register":
		body = m.viewRegister()
	case "/forgot":
		body = m.viewForgot()
	case "/student":
		body = m.viewStudent()
	case "/teacher":
		body = m.viewTeacher()
	case "/admin":
		body = m.viewAdmin()
	default:
		body = faintStyle.Render("loading")
	}

	bar := m.statusBar()
	return lipgloss.JoinVertical(lipgloss.Left, body, bar)
}

func (m Model) statusBar() string {
	left := "EduMate"
	if cur := m.deps.Sessions.Current(); cur.IsAuthenticated() {
		left += "  " + cur.Identity.Email + " (" + cur.Identity.Role + ")"
	}
	if m.status != "" {
		left += "  " + errStyle.Render(m.status)
	}
	return statusBarStyle.Render(left)
}

// contentWidth is the usable width for widget layout.
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// isUnauthorized reports whether err is the backend's credential
// rejection.
func isUnauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized)
}
