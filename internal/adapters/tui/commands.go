package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zobayerlabib/edumate/internal/application/orchestrators"
	"github.com/zobayerlabib/edumate/internal/application/projections"
	"github.com/zobayerlabib/edumate/internal/domain/catalog"
)

// The sub-backend interfaces group the API surface by screen. They
// compose the narrow interfaces the orchestrators and projections
// already define; the client type satisfies all of them.

type authBackend interface {
	orchestrators.AuthAPIForLogin
	orchestrators.AuthAPIForRegister
	orchestrators.AuthAPIForReset
}

type studentBackend interface {
	projections.ProgressAPIForStudentDashboard
	orchestrators.QuizAPIForLoad
	orchestrators.AttemptAPIForSubmit
	LessonsForCourse(ctx context.Context, courseID int64) ([]catalog.Lesson, error)
	QuizzesForLesson(ctx context.Context, lessonID int64) ([]catalog.QuizRef, error)
}

type teacherBackend interface {
	projections.TeacherAPIForDashboard
	orchestrators.CourseAPIForEnroll
	CourseStudents(ctx context.Context, courseID int64) ([]string, error)
}

type adminBackend interface {
	projections.AdminAPIForDashboard
	orchestrators.AdminAPIForChangeRole
	orchestrators.AdminAPIForDeleteUser
}

func restoreCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		path := deps.InitialPath
		res, err := orchestrators.ExecuteRestore(context.Background(), orchestrators.RestoreInput{
			RequestedPath: path,
			AllowedRoles:  protectedPaths[path],
		}, orchestrators.RestoreDeps{Sessions: deps.Sessions})
		return restoredMsg{session: res.Session, decision: res.Decision, err: err}
	}
}

func loginCmd(deps Deps, input orchestrators.LoginInput) tea.Cmd {
	return func() tea.Msg {
		res, err := orchestrators.ExecuteLogin(context.Background(), input, orchestrators.LoginDeps{
			API:      deps.Backend,
			Sessions: deps.Sessions,
		})
		return loginDoneMsg{target: res.Target, err: err}
	}
}

func registerCmd(deps Deps, input orchestrators.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		err := orchestrators.ExecuteRegister(context.Background(), input, orchestrators.RegisterDeps{API: deps.Backend})
		return registerDoneMsg{err: err}
	}
}

func forgotCmd(deps Deps, email string) tea.Cmd {
	return func() tea.Msg {
		res, err := orchestrators.ExecuteForgotPassword(context.Background(),
			orchestrators.ForgotPasswordInput{Email: email},
			orchestrators.ResetDeps{API: deps.Backend})
		return forgotDoneMsg{otp: res.OTP, err: err}
	}
}

func resetCmd(deps Deps, input orchestrators.ResetPasswordInput) tea.Cmd {
	return func() tea.Msg {
		err := orchestrators.ExecuteResetPassword(context.Background(), input,
			orchestrators.ResetDeps{API: deps.Backend})
		return resetDoneMsg{err: err}
	}
}

func logoutCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		err := orchestrators.ExecuteLogout(context.Background(), orchestrators.LogoutDeps{Sessions: deps.Sessions})
		return logoutDoneMsg{err: err}
	}
}

func studentDashboardCmd(deps Deps, gen int) tea.Cmd {
	return func() tea.Msg {
		result := projections.QueryStudentDashboard(context.Background(),
			projections.StudentDashboardDeps{API: deps.Backend})
		return studentDashboardMsg{gen: gen, result: result}
	}
}

func lessonsCmd(deps Deps, gen int, courseID int64) tea.Cmd {
	return func() tea.Msg {
		lessons, err := deps.Backend.LessonsForCourse(context.Background(), courseID)
		return lessonsMsg{gen: gen, courseID: courseID, lessons: lessons, err: err}
	}
}

func quizzesCmd(deps Deps, gen int, lessonID int64) tea.Cmd {
	return func() tea.Msg {
		quizzes, err := deps.Backend.QuizzesForLesson(context.Background(), lessonID)
		return quizzesMsg{gen: gen, lessonID: lessonID, quizzes: quizzes, err: err}
	}
}

func loadQuizCmd(deps Deps, attemptID string, quizID int64) tea.Cmd {
	return func() tea.Msg {
		res, err := orchestrators.ExecuteLoadQuiz(context.Background(),
			orchestrators.LoadQuizInput{AttemptID: attemptID, QuizID: quizID},
			orchestrators.LoadQuizDeps{API: deps.Backend})
		return quizLoadedMsg{attemptID: res.AttemptID, questions: res.Questions, err: err}
	}
}

func submitCmd(deps Deps, attemptID string, quizID int64, answers []string) tea.Cmd {
	return func() tea.Msg {
		res, err := orchestrators.ExecuteSubmitAttempt(context.Background(),
			orchestrators.SubmitAttemptInput{AttemptID: attemptID, QuizID: quizID, Answers: answers},
			orchestrators.SubmitAttemptDeps{API: deps.Backend})
		return scoredMsg{attemptID: res.AttemptID, result: res.Result, err: err}
	}
}

func teacherCoursesCmd(deps Deps, gen int) tea.Cmd {
	return func() tea.Msg {
		courses, err := deps.Backend.MyCourses(context.Background())
		return teacherCoursesMsg{gen: gen, courses: courses, err: err}
	}
}

func teacherCourseCmd(deps Deps, gen int, courseID int64) tea.Cmd {
	return func() tea.Msg {
		result := projections.QueryTeacherCourse(context.Background(),
			projections.TeacherCourseQuery{CourseID: courseID},
			projections.TeacherDashboardDeps{API: deps.Backend})
		return teacherCourseMsg{gen: gen, courseID: courseID, result: result}
	}
}

func teacherStudentCmd(deps Deps, gen int, courseID int64, email string) tea.Cmd {
	return func() tea.Msg {
		result := projections.QueryTeacherStudent(context.Background(),
			projections.TeacherStudentQuery{CourseID: courseID, Email: email},
			projections.TeacherDashboardDeps{API: deps.Backend})
		return teacherStudentMsg{gen: gen, email: email, result: result}
	}
}

func courseStudentsCmd(deps Deps, gen int, courseID int64) tea.Cmd {
	return func() tea.Msg {
		students, err := deps.Backend.CourseStudents(context.Background(), courseID)
		return courseStudentsMsg{gen: gen, students: students, err: err}
	}
}

func enrollCmd(deps Deps, courseID int64, email string) tea.Cmd {
	return func() tea.Msg {
		err := orchestrators.ExecuteEnrollStudent(context.Background(),
			orchestrators.EnrollStudentInput{CourseID: courseID, Email: email},
			orchestrators.EnrollStudentDeps{API: deps.Backend})
		return enrollDoneMsg{err: err}
	}
}

func adminDashboardCmd(deps Deps, gen int) tea.Cmd {
	return func() tea.Msg {
		result := projections.QueryAdminDashboard(context.Background(),
			projections.AdminDashboardDeps{API: deps.Backend})
		return adminDashboardMsg{gen: gen, result: result}
	}
}

func changeRoleCmd(deps Deps, input orchestrators.ChangeUserRoleInput) tea.Cmd {
	return func() tea.Msg {
		err := orchestrators.ExecuteChangeUserRole(context.Background(), input,
			orchestrators.ChangeUserRoleDeps{API: deps.Backend})
		return adminActionMsg{err: err}
	}
}

func deleteUserCmd(deps Deps, input orchestrators.DeleteUserInput) tea.Cmd {
	return func() tea.Msg {
		err := orchestrators.ExecuteDeleteUser(context.Background(), input,
			orchestrators.DeleteUserDeps{API: deps.Backend})
		return adminActionMsg{err: err}
	}
}
