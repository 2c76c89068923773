package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReasonType string

const (
	ReasonContinuePath    ReasonType = "CONTINUE_PATH"
	ReasonSimilarTopic    ReasonType = "SIMILAR_TOPIC"
	ReasonSkillGap        ReasonType = "SKILL_GAP"
	ReasonPrerequisiteMet ReasonType = "PREREQUISITE_MET"
	ReasonComplement      ReasonType = "COMPLEMENT"
	ReasonPopular         ReasonType = "POPULAR"
)

// Recommendation 一条推荐课程记录，同一用户的整批记录一起生成、一起替换
// swagger:model Recommendation
type Recommendation struct {
	ID         string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     uint           `gorm:"index:idx_rec_user_course;not null" json:"userId"`
	CourseID   uint           `gorm:"index:idx_rec_user_course;not null" json:"courseId"`
	Score      float64        `gorm:"not null" json:"score"`
	Rank       int            `gorm:"not null;default:0" json:"rank"`
	Reason     string         `gorm:"size:255;not null" json:"reason"`
	ReasonType ReasonType     `gorm:"type:varchar(32);index;not null" json:"reasonType"`
	CreatedAt  time.Time      `json:"createdAt"`
	ExpiresAt  time.Time      `gorm:"index;not null" json:"expiresAt"`
	Dismissed  bool           `gorm:"default:false" json:"dismissed"`
	Clicked    bool           `gorm:"default:false" json:"clicked"`
	Enrolled   bool           `gorm:"default:false" json:"enrolled"`
	Course     *CourseSummary `gorm:"-" json:"course,omitempty"`
}

func (r *Recommendation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Recommendation) TableName() string {
	return "recommendations"
}

// CourseSummary 推荐卡片展示所需的课程信息
type CourseSummary struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Difficulty    Difficulty `json:"difficulty"`
	DurationHours float64    `json:"durationHours"`
	PathTitle     string     `json:"pathTitle,omitempty"`
}

// RecommendationFeedbackStat 按推荐原因分组的反馈统计
type RecommendationFeedbackStat struct {
	ReasonType ReasonType `json:"reasonType"`
	Total      int64      `json:"total"`
	Clicked    int64      `json:"clicked"`
	Enrolled   int64      `json:"enrolled"`
	Dismissed  int64      `json:"dismissed"`
}
