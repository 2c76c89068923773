package repository

import (
	"context"
	"course_recommender/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecommendationStore 推荐记录的持久化接口，数据库实现和 Redis 缓存实现都满足它
// ReplaceAll 保存调用方给出的 ID，不回写传入的切片
type RecommendationStore interface {
	ReplaceAll(ctx context.Context, userID uint, recs []model.Recommendation) error
	ListActive(ctx context.Context, userID uint, now time.Time) ([]model.Recommendation, error)
	Dismiss(ctx context.Context, userID, courseID uint) error
	MarkClicked(ctx context.Context, userID, courseID uint) error
	MarkEnrolled(ctx context.Context, userID, courseID uint) error
	FeedbackStats(ctx context.Context, userID uint) ([]model.RecommendationFeedbackStat, error)
}

const recommendationBatchSize = 100

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

// ReplaceAll deletes every stored recommendation of the user and inserts recs
// in the same transaction. Readers see either the old batch or the new one.
func (r *RecommendationRepository) ReplaceAll(ctx context.Context, userID uint, recs []model.Recommendation) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Recommendation{}).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).CreateInBatches(recs, recommendationBatchSize).Error
	})
}

// ListActive 返回未关闭且未过期的推荐，按分数降序，同分按生成时的名次
func (r *RecommendationRepository) ListActive(ctx context.Context, userID uint, now time.Time) ([]model.Recommendation, error) {
	var recs []model.Recommendation
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND dismissed = ? AND expires_at > ?", userID, false, now).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "score"}, Desc: true},
			{Column: clause.Column{Name: "rank"}},
		}}).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	if err := r.attachCourses(ctx, recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *RecommendationRepository) attachCourses(ctx context.Context, recs []model.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.CourseID)
	}

	var courses []model.Course
	if err := r.DB.WithContext(ctx).Preload("LearningPath").Where("id IN ?", ids).Find(&courses).Error; err != nil {
		return err
	}
	summaries := make(map[uint]*model.CourseSummary, len(courses))
	for _, c := range courses {
		s := &model.CourseSummary{
			ID:            c.ID,
			Title:         c.Title,
			Difficulty:    c.Difficulty,
			DurationHours: c.DurationHours,
		}
		if c.LearningPath != nil {
			s.PathTitle = c.LearningPath.Title
		}
		summaries[c.ID] = s
	}
	for i := range recs {
		recs[i].Course = summaries[recs[i].CourseID]
	}
	return nil
}

// Dismiss 没有匹配记录时不报错
func (r *RecommendationRepository) Dismiss(ctx context.Context, userID, courseID uint) error {
	return r.setFlag(ctx, userID, courseID, "dismissed")
}

func (r *RecommendationRepository) MarkClicked(ctx context.Context, userID, courseID uint) error {
	return r.setFlag(ctx, userID, courseID, "clicked")
}

func (r *RecommendationRepository) MarkEnrolled(ctx context.Context, userID, courseID uint) error {
	return r.setFlag(ctx, userID, courseID, "enrolled")
}

func (r *RecommendationRepository) setFlag(ctx context.Context, userID, courseID uint, column string) error {
	return r.DB.WithContext(ctx).
		Model(&model.Recommendation{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update(column, true).Error
}

// FeedbackStats aggregates the stored recommendations by reason type.
// userID 为 0 时统计全部用户
func (r *RecommendationRepository) FeedbackStats(ctx context.Context, userID uint) ([]model.RecommendationFeedbackStat, error) {
	var stats []model.RecommendationFeedbackStat
	db := r.DB.WithContext(ctx).Model(&model.Recommendation{})
	if userID != 0 {
		db = db.Where("user_id = ?", userID)
	}
	err := db.
		Select(`reason_type,
			COUNT(*) AS total,
			SUM(CASE WHEN clicked THEN 1 ELSE 0 END) AS clicked,
			SUM(CASE WHEN enrolled THEN 1 ELSE 0 END) AS enrolled,
			SUM(CASE WHEN dismissed THEN 1 ELSE 0 END) AS dismissed`).
		Group("reason_type").
		Order("reason_type asc").
		Scan(&stats).Error
	return stats, err
}
