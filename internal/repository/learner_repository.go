package repository

import (
	"context"
	"course_recommender/internal/model"

	"gorm.io/gorm"
)

// LearnerRepository 读取一次推荐打分所需的全部数据
type LearnerRepository struct {
	DB *gorm.DB
}

func NewLearnerRepository(db *gorm.DB) *LearnerRepository {
	return &LearnerRepository{DB: db}
}

type courseCount struct {
	CourseID uint
	Total    int64
}

// Snapshot runs every read inside one transaction so the catalog, lesson
// progress and path progress all come from the same point in time.
// A missing user is not an error: UserFound is false and only the catalog is filled.
func (r *LearnerRepository) Snapshot(ctx context.Context, userID uint) (*model.LearnerSnapshot, error) {
	snap := &model.LearnerSnapshot{UserID: userID}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users int64
		if err := tx.Model(&model.User{}).Where("id = ?", userID).Count(&users).Error; err != nil {
			return err
		}
		snap.UserFound = users > 0

		catalog, err := loadCatalog(tx)
		if err != nil {
			return err
		}
		snap.Catalog = catalog

		if !snap.UserFound {
			return nil
		}

		if snap.Completions, err = loadCompletions(tx, userID); err != nil {
			return err
		}
		if err := tx.Model(&model.PathProgress{}).
			Where("user_id = ?", userID).
			Order("started_at asc").
			Pluck("learning_path_id", &snap.StartedPathIDs).Error; err != nil {
			return err
		}
		snap.QuizScores, err = loadLatestQuizScores(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func loadCatalog(tx *gorm.DB) ([]model.CatalogCourse, error) {
	var courses []model.Course
	if err := tx.Preload("LearningPath").Order("id asc").Find(&courses).Error; err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, nil
	}

	var lessonTotals []courseCount
	if err := tx.Model(&model.Lesson{}).
		Select("course_id, COUNT(*) AS total").
		Group("course_id").
		Scan(&lessonTotals).Error; err != nil {
		return nil, err
	}

	// 报名人数 = 引用该课程的选课记录数
	var enrollments []courseCount
	if err := tx.Model(&model.CourseProgress{}).
		Select("course_id, COUNT(*) AS total").
		Group("course_id").
		Scan(&enrollments).Error; err != nil {
		return nil, err
	}

	var prereqs []model.CoursePrerequisite
	if err := tx.Order("course_id asc, position asc").Find(&prereqs).Error; err != nil {
		return nil, err
	}

	lessons := toCountMap(lessonTotals)
	enrolled := toCountMap(enrollments)
	prereqIDs := make(map[uint][]uint)
	for _, p := range prereqs {
		prereqIDs[p.CourseID] = append(prereqIDs[p.CourseID], p.PrerequisiteID)
	}

	catalog := make([]model.CatalogCourse, 0, len(courses))
	for _, c := range courses {
		item := model.CatalogCourse{
			ID:              c.ID,
			Title:           c.Title,
			Description:     c.Description,
			Difficulty:      c.Difficulty,
			DurationHours:   c.DurationHours,
			PathOrder:       c.PathOrder,
			PrerequisiteIDs: prereqIDs[c.ID],
			TotalLessons:    int(lessons[c.ID]),
			EnrollmentCount: enrolled[c.ID],
		}
		if c.LearningPathID != nil {
			item.PathID = *c.LearningPathID
		}
		if c.LearningPath != nil {
			item.PathTitle = c.LearningPath.Title
		}
		catalog = append(catalog, item)
	}
	return catalog, nil
}

func toCountMap(rows []courseCount) map[uint]int64 {
	m := make(map[uint]int64, len(rows))
	for _, r := range rows {
		m[r.CourseID] = r.Total
	}
	return m
}

func loadCompletions(tx *gorm.DB, userID uint) ([]model.CourseCompletion, error) {
	var rows []model.LessonProgress
	if err := tx.Where("user_id = ? AND completed = ?", userID, true).
		Order("course_id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	var completions []model.CourseCompletion
	index := make(map[uint]int)
	for _, row := range rows {
		i, ok := index[row.CourseID]
		if !ok {
			i = len(completions)
			index[row.CourseID] = i
			completions = append(completions, model.CourseCompletion{CourseID: row.CourseID})
		}
		cc := &completions[i]
		cc.CompletedLessons++
		if row.CompletedAt != nil && (cc.LastCompletedAt == nil || row.CompletedAt.After(*cc.LastCompletedAt)) {
			t := *row.CompletedAt
			cc.LastCompletedAt = &t
		}
	}
	return completions, nil
}

// loadLatestQuizScores 每个课时只保留最近一次测验
func loadLatestQuizScores(tx *gorm.DB, userID uint) ([]model.QuizScore, error) {
	var rows []model.QuizScore
	if err := tx.Where("user_id = ?", userID).
		Order("taken_at asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	latest := make(map[uint]int)
	var out []model.QuizScore
	for _, row := range rows {
		if i, ok := latest[row.LessonID]; ok {
			out[i] = row
			continue
		}
		latest[row.LessonID] = len(out)
		out = append(out, row)
	}
	return out, nil
}
