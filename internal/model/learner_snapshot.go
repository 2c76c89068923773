package model

import "time"

// CatalogCourse 课程目录中的一门课程及其聚合字段
type CatalogCourse struct {
	ID              uint
	Title           string
	Description     string
	Difficulty      Difficulty
	DurationHours   float64
	PathID          uint // 0 表示不属于任何学习路径
	PathTitle       string
	PathOrder       int
	PrerequisiteIDs []uint
	TotalLessons    int
	EnrollmentCount int64
}

func (c CatalogCourse) Summary() *CourseSummary {
	return &CourseSummary{
		ID:            c.ID,
		Title:         c.Title,
		Difficulty:    c.Difficulty,
		DurationHours: c.DurationHours,
		PathTitle:     c.PathTitle,
	}
}

// CourseCompletion 用户在一门课程上已完成的课时数
type CourseCompletion struct {
	CourseID         uint
	CompletedLessons int
	LastCompletedAt  *time.Time
}

// LearnerSnapshot is everything read from storage for one scoring run.
// All fields come from the same read transaction.
type LearnerSnapshot struct {
	UserID         uint
	UserFound      bool
	Catalog        []CatalogCourse
	Completions    []CourseCompletion
	StartedPathIDs []uint
	QuizScores     []QuizScore
}
