package tui

import (
	"github.com/zobayerlabib/edumate/internal/application/projections"
	"github.com/zobayerlabib/edumate/internal/domain/attempt"
	"github.com/zobayerlabib/edumate/internal/domain/catalog"
	"github.com/zobayerlabib/edumate/internal/domain/route"
	"github.com/zobayerlabib/edumate/internal/domain/session"
)

// restoredMsg delivers the startup credential restore and the gate's
// verdict for the initial path.
type restoredMsg struct {
	session  session.Session
	decision route.Decision
	err      error
}

// loginDoneMsg delivers the outcome of a login submission.
type loginDoneMsg struct {
	target string
	err    error
}

// registerDoneMsg delivers the outcome of a registration submission.
type registerDoneMsg struct {
	err error
}

// forgotDoneMsg delivers the issued reset code.
type forgotDoneMsg struct {
	otp string
	err error
}

// resetDoneMsg delivers the outcome of a password reset.
type resetDoneMsg struct {
	err error
}

// logoutDoneMsg delivers the outcome of a logout.
type logoutDoneMsg struct {
	err error
}

// Dashboard loads are stamped with a fetch generation. A reload bumps
// the generation; a response carrying an older stamp is stale output
// of a superseded fetch and is dropped on arrival.

// studentDashboardMsg delivers the aggregated student home widgets.
type studentDashboardMsg struct {
	gen    int
	result projections.StudentDashboardResult
}

// lessonsMsg delivers the lesson list for the selected course.
type lessonsMsg struct {
	gen      int
	courseID int64
	lessons  []catalog.Lesson
	err      error
}

// quizzesMsg delivers the quiz list for the selected lesson.
type quizzesMsg struct {
	gen      int
	lessonID int64
	quizzes  []catalog.QuizRef
	err      error
}

// quizLoadedMsg delivers the question payload for one attempt. The
// attemptID decides whether the payload still belongs to the current
// attempt.
type quizLoadedMsg struct {
	attemptID string
	questions []attempt.Question
	err       error
}

// scoredMsg delivers the scored result for one attempt.
type scoredMsg struct {
	attemptID string
	result    attempt.Result
	err       error
}

// teacherCourseMsg delivers the roster for the selected course.
type teacherCourseMsg struct {
	gen      int
	courseID int64
	result   projections.TeacherCourseResult
}

// teacherStudentMsg delivers one student's drill-down widgets.
type teacherStudentMsg struct {
	gen    int
	email  string
	result projections.TeacherStudentResult
}

// teacherCoursesMsg delivers the teacher's own course list.
type teacherCoursesMsg struct {
	gen     int
	courses []catalog.Course
	err     error
}

// courseStudentsMsg delivers the enrolled emails for the enroll view.
type courseStudentsMsg struct {
	gen      int
	students []string
	err      error
}

// enrollDoneMsg delivers the outcome of an enrollment.
type enrollDoneMsg struct {
	err error
}

// adminDashboardMsg delivers the admin totals and user table.
type adminDashboardMsg struct {
	gen    int
	result projections.AdminDashboardResult
}

// adminActionMsg delivers the outcome of a role change or deletion.
// The dashboard reloads on success so the table reflects the change.
type adminActionMsg struct {
	err error
}
