package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zobayerlabib/edumate/internal/application/orchestrators"
	"github.com/zobayerlabib/edumate/internal/application/projections"
	"github.com/zobayerlabib/edumate/internal/domain/attempt"
	"github.com/zobayerlabib/edumate/internal/domain/catalog"
	"github.com/zobayerlabib/edumate/internal/domain/progress"
)

type studentView int

const (
	studentDashboard studentView = iota
	studentLessons
	studentLesson
	studentQuiz
	studentResult
)

type studentState struct {
	gen     int
	loading bool
	dash    projections.StudentDashboardResult
	view    studentView

	courseCursor int
	course       catalog.Course

	lessons        []catalog.Lesson
	lessonsErr     error
	lessonsLoading bool
	lessonCursor   int
	lesson         catalog.Lesson

	quizzes        []catalog.QuizRef
	quizzesErr     error
	quizzesLoading bool
	quizCursor     int

	att       attempt.Attempt
	qIdx      int
	optCursor int
}

func newStudentState(gen int) studentState {
	return studentState{gen: gen, loading: true}
}

func (m Model) updateStudentMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &m.student
	switch msg := msg.(type) {
	case studentDashboardMsg:
		if msg.gen != s.gen {
			return m, nil
		}
		if isUnauthorized(msg.result.CoursesErr) {
			cmd := m.bounceUnauthorized()
			return m, cmd
		}
		s.loading = false
		s.dash = msg.result
		if s.courseCursor >= len(s.dash.Courses) {
			s.courseCursor = 0
		}

	case lessonsMsg:
		if msg.gen != s.gen || msg.courseID != s.course.ID {
			return m, nil
		}
		if isUnauthorized(msg.err) {
			cmd := m.bounceUnauthorized()
			return m, cmd
		}
		s.lessonsLoading = false
		s.lessons = msg.lessons
		s.lessonsErr = msg.err
		s.lessonCursor = 0

	case quizzesMsg:
		if msg.gen != s.gen || msg.lessonID != s.lesson.ID {
			return m, nil
		}
		if isUnauthorized(msg.err) {
			cmd := m.bounceUnauthorized()
			return m, cmd
		}
		s.quizzesLoading = false
		s.quizzes = msg.quizzes
		s.quizzesErr = msg.err
		s.quizCursor = 0

	case quizLoadedMsg:
		// A payload for a superseded attempt is dropped unseen.
		if !s.att.Owns(msg.attemptID) {
			return m, nil
		}
		if msg.err != nil {
			if isUnauthorized(msg.err) {
				cmd := m.bounceUnauthorized()
				return m, cmd
			}
			if err := s.att.LoadFailed(); err != nil {
				return m, nil
			}
			m.status = "Could not load quiz: " + msg.err.Error()
			return m, nil
		}
		if err := s.att.QuestionsLoaded(msg.questions); err != nil {
			if errors.Is(err, attempt.ErrNoQuestions) {
				m.status = "This quiz has no questions"
			}
			return m, nil
		}
		s.qIdx = 0
		s.optCursor = 0

	case scoredMsg:
		if !s.att.Owns(msg.attemptID) {
			return m, nil
		}
		if msg.err != nil {
			if isUnauthorized(msg.err) {
				cmd := m.bounceUnauthorized()
				return m, cmd
			}
			if err := s.att.SubmitFailed(); err != nil {
				return m, nil
			}
			m.status = "Submit failed: " + msg.err.Error()
			return m, nil
		}
		if err := s.att.Scored(msg.result); err != nil {
			return m, nil
		}
		s.view = studentResult
	}
	return m, nil
}

func (m Model) updateStudentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.student
	switch s.view {
	case studentDashboard:
		return m.studentDashboardKey(msg)
	case studentLessons:
		return m.studentLessonsKey(msg)
	case studentLesson:
		return m.studentLessonKey(msg)
	case studentQuiz:
		return m.studentQuizKey(msg)
	case studentResult:
		switch msg.String() {
		case "enter", "esc":
			s.att.Abandon()
			s.view = studentLesson
			// Dashboard numbers changed with the new attempt.
			s.gen++
			return m, studentDashboardCmd(m.deps, s.gen)
		}
	}
	return m, nil
}

func (m Model) studentDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.student
	switch msg.String() {
	case "up", "k":
		if s.courseCursor > 0 {
			s.courseCursor--
		}
	case "down", "j":
		if s.courseCursor < len(s.dash.Courses)-1 {
			s.courseCursor++
		}
	case "r":
		s.gen++
		s.loading = true
		return m, studentDashboardCmd(m.deps, s.gen)
	case "enter":
		if len(s.dash.Courses) == 0 {
			return m, nil
		}
		s.course = s.dash.Courses[s.courseCursor]
		s.view = studentLessons
		s.lessonsLoading = true
		s.lessons = nil
		s.lessonsErr = nil
		return m, lessonsCmd(m.deps, s.gen, s.course.ID)
	}
	return m, nil
}

func (m Model) studentLessonsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.student
	switch msg.String() {
	case "esc":
		s.view = studentDashboard
	case "up", "k":
		if s.lessonCursor > 0 {
			s.lessonCursor--
		}
	case "down", "j":
		if s.lessonCursor < len(s.lessons)-1 {
			s.lessonCursor++
		}
	case "enter":
		if len(s.lessons) == 0 {
			return m, nil
		}
		s.lesson = s.lessons[s.lessonCursor]
		s.att.SelectLesson(s.lesson.ID)
		s.view = studentLesson
		s.quizzesLoading = true
		s.quizzes = nil
		s.quizzesErr = nil
		return m, quizzesCmd(m.deps, s.gen, s.lesson.ID)
	}
	return m, nil
}

func (m Model) studentLessonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.student
	switch msg.String() {
	case "esc":
		s.view = studentLessons
	case "up", "k":
		if s.quizCursor > 0 {
			s.quizCursor--
		}
	case "down", "j":
		if s.quizCursor < len(s.quizzes)-1 {
			s.quizCursor++
		}
	case "enter":
		if len(s.quizzes) == 0 {
			return m, nil
		}
		quiz := s.quizzes[s.quizCursor]
		res, err := orchestrators.ExecuteBeginAttempt(orchestrators.BeginAttemptInput{
			Attempt: &s.att, QuizID: quiz.ID,
		})
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		s.view = studentQuiz
		return m, loadQuizCmd(m.deps, res.AttemptID, quiz.ID)
	}
	return m, nil
}

func (m Model) studentQuizKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.student
	switch s.att.Phase {
	case attempt.PhaseLoading, attempt.PhaseSubmitting:
		if msg.String() == "esc" {
			s.att.Abandon()
			s.view = studentLesson
		}
		return m, nil

	case attempt.PhaseAnswering:
		return m.studentAnsweringKey(msg)

	case attempt.PhaseFailed:
		switch msg.String() {
		case "esc":
			s.att.Abandon()
			s.view = studentLesson
		case "enter", "s":
			if len(s.att.Questions) == 0 {
				// The load failed; start over with a fresh attempt.
				quizID := s.att.QuizID
				res, err := orchestrators.ExecuteBeginAttempt(orchestrators.BeginAttemptInput{
					Attempt: &s.att, QuizID: quizID,
				})
				if err != nil {
					m.status = err.Error()
					return m, nil
				}
				return m, loadQuizCmd(m.deps, res.AttemptID, quizID)
			}
			// The submit failed; answers are intact, retry.
			if err := s.att.BeginSubmit(); err != nil {
				m.status = err.Error()
				return m, nil
			}
			return m, submitCmd(m.deps, s.att.ID, s.att.QuizID, s.att.Answers)
		}
	}
	return m, nil
}

func (m Model) studentAnsweringKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.student
	options := s.att.Questions[s.qIdx].Options
	switch msg.String() {
	case "esc":
		s.att.Abandon()
		s.view = studentLesson
	case "up", "k":
		if s.optCursor > 0 {
			s.optCursor--
		}
	case "down", "j":
		if s.optCursor < len(options)-1 {
			s.optCursor++
		}
	case "left", "h":
		if s.qIdx > 0 {
			s.qIdx--
			s.optCursor = 0
		}
	case "right", "l":
		if s.qIdx < len(s.att.Questions)-1 {
			s.qIdx++
			s.optCursor = 0
		}
	case "enter":
		if len(options) == 0 {
			return m, nil
		}
		if err := s.att.Answer(s.qIdx, options[s.optCursor]); err != nil {
			m.status = err.Error()
			return m, nil
		}
		if s.qIdx < len(s.att.Questions)-1 {
			s.qIdx++
			s.optCursor = 0
		}
	case "s":
		if err := s.att.BeginSubmit(); err != nil {
			if errors.Is(err, attempt.ErrIncomplete) {
				missing := s.att.Incomplete()
				s.qIdx = missing
				s.optCursor = 0
				m.status = fmt.Sprintf("Question %d is unanswered", missing+1)
				return m, nil
			}
			m.status = err.Error()
			return m, nil
		}
		return m, submitCmd(m.deps, s.att.ID, s.att.QuizID, s.att.Answers)
	}
	return m, nil
}

// --- views ---

func (m Model) viewStudent() string {
	s := m.student
	switch s.view {
	case studentLessons:
		return m.viewStudentLessons()
	case studentLesson:
		return m.viewStudentLesson()
	case studentQuiz:
		return m.viewStudentQuiz()
	case studentResult:
		return m.viewStudentResult()
	default:
		return m.viewStudentDashboard()
	}
}

func (m Model) viewStudentDashboard() string {
	s := m.student
	var b strings.Builder
	b.WriteString(titleStyle.Render("My learning"))
	b.WriteString("\n")

	if s.loading {
		return b.String() + m.spin.View() + " loading dashboard"
	}

	b.WriteString(renderWidget("Courses", m.coursesWidget(), s.dash.CoursesErr))
	b.WriteString("\n")
	b.WriteString(renderWidget("Stats", statsWidget(s.dash.Stats), s.dash.StatsErr))
	b.WriteString("\n")
	b.WriteString(renderWidget("Topic mastery", masteryWidget(s.dash), s.dash.ReportErr))
	b.WriteString("\n")
	b.WriteString(renderWidget("Weekly activity", weeklyWidget(s.dash.Weekly), s.dash.WeeklyErr))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("enter open course · r refresh · ctrl+l logout · q quit"))
	return b.String()
}

// renderWidget frames one dashboard widget. A failed widget renders
// its error in place while its neighbors render normally.
func renderWidget(title, content string, err error) string {
	if err != nil {
		content = errStyle.Render("unavailable: " + err.Error())
	}
	return widgetStyle.Render(widgetTitleStyle.Render(title) + "\n" + content)
}

func (m Model) coursesWidget() string {
	s := m.student
	if len(s.dash.Courses) == 0 {
		return faintStyle.Render("No courses yet")
	}
	var b strings.Builder
	for i, c := range s.dash.Courses {
		line := fmt.Sprintf("%s (%s)", c.Title, c.Subject)
		if i == s.courseCursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(s.dash.Courses)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func statsWidget(st progress.Stats) string {
	return fmt.Sprintf("attempts %d   avg %.1f   best %s   worst %s   streak %dd",
		st.TotalAttempts, st.AvgScore,
		renderScore(st.Highest), renderScore(st.Lowest), st.StreakDays)
}

// renderScore renders a score, distinguishing "never reported" from a
// real zero.
func renderScore(s progress.Score) string {
	if !s.Known {
		return unknownScore
	}
	return fmt.Sprintf("%.0f", s.Value)
}

func masteryWidget(dash projections.StudentDashboardResult) string {
	total := len(dash.Weak) + len(dash.Medium) + len(dash.Strong)
	if total == 0 {
		return faintStyle.Render("No attempts yet")
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d   %s %d   %s %d   avg %.1f\n",
		weakStyle.Render("weak"), len(dash.Weak),
		mediumStyle.Render("medium"), len(dash.Medium),
		strongStyle.Render("strong"), len(dash.Strong),
		dash.AverageMastery))
	for _, r := range dash.Weak {
		b.WriteString(weakStyle.Render(fmt.Sprintf("  %s / %s %.0f", r.Subject, r.Topic, r.Mastery)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func weeklyWidget(points []progress.WeeklyPoint) string {
	if len(points) == 0 {
		return faintStyle.Render("No activity yet")
	}
	var b strings.Builder
	for i, p := range points {
		bar := strings.Repeat("█", max(min(p.Attempts, 30), 0))
		b.WriteString(fmt.Sprintf("%-10s %-30s %d (avg %.0f)", p.Label, bar, p.Attempts, p.AvgScore))
		if i < len(points)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewStudentLessons() string {
	s := m.student
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.course.Title))
	b.WriteString("\n")
	if s.lessonsLoading {
		return b.String() + m.spin.View() + " loading lessons"
	}
	if s.lessonsErr != nil {
		return b.String() + errStyle.Render("Could not load lessons: "+s.lessonsErr.Error())
	}
	if len(s.lessons) == 0 {
		return b.String() + faintStyle.Render("No lessons in this course yet")
	}
	for i, l := range s.lessons {
		line := fmt.Sprintf("%s — %s", l.Title, l.Topic)
		if i == s.lessonCursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("enter open lesson · esc back"))
	return b.String()
}

func (m Model) viewStudentLesson() string {
	s := m.student
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.lesson.Title))
	b.WriteString("\n")
	if content := renderLessonMarkdown(s.lesson.ContentText, min(m.contentWidth()-4, 100)); content != "" {
		b.WriteString(content)
		b.WriteString("\n")
	}

	b.WriteString(widgetTitleStyle.Render("Quizzes"))
	b.WriteString("\n")
	switch {
	case s.quizzesLoading:
		b.WriteString(m.spin.View() + " loading quizzes")
	case s.quizzesErr != nil:
		b.WriteString(errStyle.Render("Could not load quizzes: " + s.quizzesErr.Error()))
	case len(s.quizzes) == 0:
		b.WriteString(faintStyle.Render("No quizzes for this lesson yet"))
	default:
		for i, q := range s.quizzes {
			line := fmt.Sprintf("Quiz %d (%s)", q.ID, q.Difficulty)
			if i == s.quizCursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("enter start quiz · esc back"))
	return b.String()
}

func (m Model) viewStudentQuiz() string {
	s := m.student
	switch s.att.Phase {
	case attempt.PhaseLoading:
		return m.spin.View() + " loading questions"
	case attempt.PhaseSubmitting:
		return m.spin.View() + " submitting answers"
	case attempt.PhaseFailed:
		hint := "enter retry · esc abandon"
		return errStyle.Render("Something went wrong.") + "\n\n" + faintStyle.Render(hint)
	}

	q := s.att.Questions[s.qIdx]
	var b strings.Builder
	answered := len(s.att.Questions) - countEmpty(s.att.Answers)
	b.WriteString(titleStyle.Render(fmt.Sprintf("Question %d of %d", s.qIdx+1, len(s.att.Questions))))
	b.WriteString(faintStyle.Render(fmt.Sprintf("  %d answered", answered)))
	b.WriteString("\n\n")
	b.WriteString(q.Prompt)
	b.WriteString("\n\n")
	for i, opt := range q.Options {
		marker := "  "
		if s.att.Answers[s.qIdx] == opt {
			marker = strongStyle.Render("✓ ")
		}
		line := marker + opt
		if i == s.optCursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("enter pick · ←/→ question · s submit · esc abandon"))
	return b.String()
}

func countEmpty(answers []string) int {
	n := 0
	for _, a := range answers {
		if a == "" {
			n++
		}
	}
	return n
}

func (m Model) viewStudentResult() string {
	s := m.student
	r := s.att.Result
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Score: %.0f", r.Score)))
	if r.Subject != "" || r.Topic != "" {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  %s / %s", r.Subject, r.Topic)))
	}
	b.WriteString("\n\n")
	for i, pq := range r.PerQuestion {
		mark := strongStyle.Render("✓")
		if !pq.IsCorrect {
			mark = errStyle.Render("✗")
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", mark, i+1, pq.Prompt))
		b.WriteString(faintStyle.Render("   your answer: " + pq.Given))
		if !pq.IsCorrect {
			b.WriteString(faintStyle.Render("  correct: " + pq.Correct))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("enter back to lesson"))
	return b.String()
}
