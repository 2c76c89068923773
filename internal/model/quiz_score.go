package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizScore 存储用户每次课时测验的得分
type QuizScore struct {
	gorm.Model
	UserID   uint `gorm:"index;not null"`
	LessonID uint `gorm:"index;not null"`
	Score    int  `gorm:"not null"`
	MaxScore int  `gorm:"not null"`
	TakenAt  time.Time
}

func (QuizScore) TableName() string {
	return "quiz_scores"
}
