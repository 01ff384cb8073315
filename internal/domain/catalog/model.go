// Package catalog holds the read-mostly course/lesson/quiz references
// the client navigates. These are owned by the backend and cached
// transiently for the duration of a dashboard visit; nothing here
// survives a restart.
package catalog

// Course is a course reference with its display metadata.
type Course struct {
	ID           int64
	Title        string
	Subject      string
	TeacherEmail string
}

// Lesson is a lesson reference within a course. ContentText may carry
// markdown used for the lesson preview.
type Lesson struct {
	ID          int64
	CourseID    int64
	Title       string
	Topic       string
	ContentText string
}

// QuizRef identifies one generated quiz for a lesson. The full
// question payload is fetched separately when the quiz is selected.
type QuizRef struct {
	ID         int64
	LessonID   int64
	Difficulty string
	CreatedAt  string
}
