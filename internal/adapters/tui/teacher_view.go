package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zobayerlabib/edumate/internal/application/projections"
	"github.com/zobayerlabib/edumate/internal/domain/catalog"
)

type teacherView int

const (
	teacherCourses teacherView = iota
	teacherRoster
	teacherStudentDetail
)

type teacherState struct {
	gen     int
	loading bool
	view    teacherView

	courses      []catalog.Course
	coursesErr   error
	courseCursor int
	course       catalog.Course

	roster        projections.TeacherCourseResult
	rosterLoading bool
	rosterCursor  int

	studentEmail  string
	detail        projections.TeacherStudentResult
	detailLoading bool

	enrolling     bool
	enrollInput   textinput.Model
	enrolled      []string
	enrolledErr   error
	enrollPending bool
}

func newTeacherState(gen int) teacherState {
	input := textinput.New()
	input.Placeholder = "student email"
	input.CharLimit = 120
	return teacherState{gen: gen, loading: true, enrollInput: input}
}

func (m Model) updateTeacherMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &m.teacher
	switch msg := msg.(type) {
	case teacherCoursesMsg:
		if msg.gen != s.gen {
			return m, nil
		}
		if isUnauthorized(msg.err) {
			cmd := m.bounceUnauthorized()
			return m, cmd
		}
		s.loading = false
		s.courses = msg.courses
		s.coursesErr = msg.err
		if s.courseCursor >= len(s.courses) {
			s.courseCursor = 0
		}

	case teacherCourseMsg:
		if msg.gen != s.gen || msg.courseID != s.course.ID {
			return m, nil
		}
		if isUnauthorized(msg.result.StudentsErr) {
			cmd := m.bounceUnauthorized()
			return m, cmd
		}
		s.rosterLoading = false
		s.roster = msg.result
		s.rosterCursor = 0

	case teacherStudentMsg:
		if msg.gen != s.gen || msg.email != s.studentEmail {
			return m, nil
		}
		if isUnauthorized(msg.result.WeeklyErr) || isUnauthorized(msg.result.TopicsErr) {
			cmd := m.bounceUnauthorized()
			return m, cmd
		}
		s.detailLoading = false
		s.detail = msg.result

	case courseStudentsMsg:
		if msg.gen != s.gen {
			return m, nil
		}
		if isUnauthorized(msg.err) {
			cmd := m.bounceUnauthorized()
			return m, cmd
		}
		s.enrolled = msg.students
		s.enrolledErr = msg.err

	case enrollDoneMsg:
		s.enrollPending = false
		if msg.err != nil {
			if isUnauthorized(msg.err) {
				cmd := m.bounceUnauthorized()
				return m, cmd
			}
			m.status = "Enroll failed: " + msg.err.Error()
			return m, nil
		}
		s.enrolling = false
		s.enrollInput.SetValue("")
		s.rosterLoading = true
		return m, tea.Batch(
			teacherCourseCmd(m.deps, s.gen, s.course.ID),
			courseStudentsCmd(m.deps, s.gen, s.course.ID),
		)
	}
	return m, nil
}

func (m Model) updateTeacherKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.teacher
	if s.enrolling {
		return m.teacherEnrollKey(msg)
	}

	switch s.view {
	case teacherCourses:
		switch msg.String() {
		case "up", "k":
			if s.courseCursor > 0 {
				s.courseCursor--
			}
		case "down", "j":
			if s.courseCursor < len(s.courses)-1 {
				s.courseCursor++
			}
		case "r":
			s.gen++
			s.loading = true
			return m, teacherCoursesCmd(m.deps, s.gen)
		case "enter":
			if len(s.courses) == 0 {
				return m, nil
			}
			s.course = s.courses[s.courseCursor]
			s.view = teacherRoster
			s.rosterLoading = true
			return m, tea.Batch(
				teacherCourseCmd(m.deps, s.gen, s.course.ID),
				courseStudentsCmd(m.deps, s.gen, s.course.ID),
			)
		}

	case teacherRoster:
		switch msg.String() {
		case "esc":
			s.view = teacherCourses
		case "up", "k":
			if s.rosterCursor > 0 {
				s.rosterCursor--
			}
		case "down", "j":
			if s.rosterCursor < len(s.roster.Students)-1 {
				s.rosterCursor++
			}
		case "e":
			s.enrolling = true
			s.enrollInput.Focus()
			return m, nil
		case "r":
			s.rosterLoading = true
			return m, teacherCourseCmd(m.deps, s.gen, s.course.ID)
		case "enter":
			if len(s.roster.Students) == 0 {
				return m, nil
			}
			s.studentEmail = s.roster.Students[s.rosterCursor].Email
			s.view = teacherStudentDetail
			s.detailLoading = true
			return m, teacherStudentCmd(m.deps, s.gen, s.course.ID, s.studentEmail)
		}

	case teacherStudentDetail:
		if msg.String() == "esc" {
			s.view = teacherRoster
		}
	}
	return m, nil
}

func (m Model) teacherEnrollKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.teacher
	switch msg.String() {
	case "esc":
		s.enrolling = false
		s.enrollInput.SetValue("")
		return m, nil
	case "enter":
		if s.enrollPending {
			return m, nil
		}
		s.enrollPending = true
		return m, enrollCmd(m.deps, s.course.ID, s.enrollInput.Value())
	}
	var cmd tea.Cmd
	s.enrollInput, cmd = s.enrollInput.Update(msg)
	return m, cmd
}

// --- views ---

func (m Model) viewTeacher() string {
	s := m.teacher
	switch s.view {
	case teacherRoster:
		return m.viewTeacherRoster()
	case teacherStudentDetail:
		return m.viewTeacherStudent()
	default:
		return m.viewTeacherCourses()
	}
}

func (m Model) viewTeacherCourses() string {
	s := m.teacher
	var b strings.Builder
	b.WriteString(titleStyle.Render("My courses"))
	b.WriteString("\n")
	if s.loading {
		return b.String() + m.spin.View() + " loading courses"
	}
	if s.coursesErr != nil {
		return b.String() + errStyle.Render("Could not load courses: "+s.coursesErr.Error())
	}
	if len(s.courses) == 0 {
		return b.String() + faintStyle.Render("No courses yet")
	}
	for i, c := range s.courses {
		line := fmt.Sprintf("%s (%s)", c.Title, c.Subject)
		if i == s.courseCursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("enter open course · r refresh · ctrl+l logout · q quit"))
	return b.String()
}

func (m Model) viewTeacherRoster() string {
	s := m.teacher
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.course.Title + " — students"))
	b.WriteString("\n")

	if s.enrolling {
		b.WriteString(widgetStyle.Render(
			widgetTitleStyle.Render("Enroll student") + "\n" +
				s.enrollInput.View() + "\n" +
				faintStyle.Render("enter enroll · esc cancel")))
		b.WriteString("\n")
	}

	switch {
	case s.rosterLoading:
		b.WriteString(m.spin.View() + " loading roster")
	case s.roster.StudentsErr != nil:
		b.WriteString(errStyle.Render("Could not load roster: " + s.roster.StudentsErr.Error()))
	case len(s.roster.Students) == 0:
		b.WriteString(faintStyle.Render("No students enrolled yet"))
	default:
		b.WriteString(faintStyle.Render(fmt.Sprintf("%-30s %9s %7s %s", "email", "attempts", "avg", "last attempt")))
		b.WriteString("\n")
		for i, st := range s.roster.Students {
			line := fmt.Sprintf("%-30s %9d %7.1f %s", st.Email, st.TotalAttempts, st.AvgScore, st.LastAttemptAt)
			if i == s.rosterCursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("enter student detail · e enroll · r refresh · esc back"))
	return b.String()
}

func (m Model) viewTeacherStudent() string {
	s := m.teacher
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.studentEmail))
	b.WriteString("\n")
	if s.detailLoading {
		return b.String() + m.spin.View() + " loading student detail"
	}

	b.WriteString(renderWidget("Weekly activity", weeklyWidget(s.detail.Weekly), s.detail.WeeklyErr))
	b.WriteString("\n")

	var topics string
	if len(s.detail.WeakTopics) == 0 {
		topics = faintStyle.Render("No weak topics")
	} else {
		var t strings.Builder
		for i, r := range s.detail.WeakTopics {
			t.WriteString(weakStyle.Render(fmt.Sprintf("%s / %s %.0f", r.Subject, r.Topic, r.Mastery)))
			if i < len(s.detail.WeakTopics)-1 {
				t.WriteString("\n")
			}
		}
		topics = t.String()
	}
	b.WriteString(renderWidget("Weak topics", topics, s.detail.TopicsErr))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("esc back"))
	return b.String()
}
