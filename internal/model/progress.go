package model

import (
	"time"

	"gorm.io/gorm"
)

// CourseProgress 选课记录，一个用户一门课一条，用于统计报名人数
type CourseProgress struct {
	gorm.Model
	UserID         uint      `gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID       uint      `gorm:"uniqueIndex:idx_user_course;not null"`
	StartedAt      time.Time
	LastAccessedAt time.Time
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

type LessonProgress struct {
	gorm.Model
	UserID      uint `gorm:"uniqueIndex:idx_user_lesson;not null"`
	LessonID    uint `gorm:"uniqueIndex:idx_user_lesson;not null"`
	CourseID    uint `gorm:"index;not null"`
	Completed   bool `gorm:"default:false"`
	CompletedAt *time.Time
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// PathProgress 表示用户已开始某条学习路径
type PathProgress struct {
	gorm.Model
	UserID         uint `gorm:"uniqueIndex:idx_user_path;not null"`
	LearningPathID uint `gorm:"uniqueIndex:idx_user_path;not null"`
	StartedAt      time.Time
}

func (PathProgress) TableName() string {
	return "path_progress"
}
