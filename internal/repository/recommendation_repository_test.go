package repository

import (
	"context"
	"course_recommender/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func rec(userID, courseID uint, score float64, rank int, reason model.ReasonType) model.Recommendation {
	return model.Recommendation{
		UserID:     userID,
		CourseID:   courseID,
		Score:      score,
		Rank:       rank,
		Reason:     "because",
		ReasonType: reason,
		CreatedAt:  testNow,
		ExpiresAt:  testNow.Add(24 * time.Hour),
	}
}

func TestReplaceAllSwapsBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecommendationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, 1, []model.Recommendation{
		rec(1, 10, 0.5, 0, model.ReasonPopular),
		rec(1, 11, 0.4, 1, model.ReasonPopular),
	}))
	require.NoError(t, repo.ReplaceAll(ctx, 2, []model.Recommendation{
		rec(2, 10, 0.9, 0, model.ReasonSkillGap),
	}))
	require.NoError(t, repo.ReplaceAll(ctx, 1, []model.Recommendation{
		rec(1, 12, 0.7, 0, model.ReasonContinuePath),
	}))

	got, err := repo.ListActive(ctx, 1, testNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, uint(12), got[0].CourseID)
	require.NotEmpty(t, got[0].ID)

	other, err := repo.ListActive(ctx, 2, testNow)
	require.NoError(t, err)
	require.Len(t, other, 1)

	require.NoError(t, repo.ReplaceAll(ctx, 1, nil))
	got, err = repo.ListActive(ctx, 1, testNow)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestListActiveFiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	path := model.LearningPath{Title: "Data"}
	require.NoError(t, db.Create(&path).Error)
	course := model.Course{Title: "Pandas", Difficulty: model.DifficultyIntermediate, DurationHours: 6, LearningPathID: &path.ID}
	require.NoError(t, db.Create(&course).Error)

	repo := NewRecommendationRepository(db)
	ctx := context.Background()

	expired := rec(1, 20, 0.99, 0, model.ReasonPopular)
	expired.ExpiresAt = testNow.Add(-time.Hour)
	dismissed := rec(1, 21, 0.95, 1, model.ReasonPopular)
	dismissed.Dismissed = true

	require.NoError(t, repo.ReplaceAll(ctx, 1, []model.Recommendation{
		expired,
		dismissed,
		rec(1, 22, 0.3, 2, model.ReasonPopular),
		rec(1, 23, 0.6, 4, model.ReasonSimilarTopic),
		rec(1, course.ID, 0.6, 3, model.ReasonComplement),
	}))

	got, err := repo.ListActive(ctx, 1, testNow)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, course.ID, got[0].CourseID)
	require.Equal(t, uint(23), got[1].CourseID)
	require.Equal(t, uint(22), got[2].CourseID)

	require.NotNil(t, got[0].Course)
	require.Equal(t, "Pandas", got[0].Course.Title)
	require.Equal(t, "Data", got[0].Course.PathTitle)
	require.Nil(t, got[1].Course)
}

func TestFeedbackFlagsAreIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecommendationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, 1, []model.Recommendation{
		rec(1, 30, 0.5, 0, model.ReasonPopular),
		rec(1, 31, 0.4, 1, model.ReasonSkillGap),
	}))

	require.NoError(t, repo.MarkClicked(ctx, 1, 30))
	require.NoError(t, repo.MarkClicked(ctx, 1, 30))
	require.NoError(t, repo.MarkEnrolled(ctx, 1, 30))
	require.NoError(t, repo.Dismiss(ctx, 1, 31))
	require.NoError(t, repo.Dismiss(ctx, 1, 31))

	// 不存在的推荐不报错
	require.NoError(t, repo.Dismiss(ctx, 1, 999))
	require.NoError(t, repo.MarkClicked(ctx, 7, 30))

	got, err := repo.ListActive(ctx, 1, testNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].Clicked)
	require.True(t, got[0].Enrolled)

	require.NoError(t, repo.ReplaceAll(ctx, 2, []model.Recommendation{
		rec(2, 30, 0.9, 0, model.ReasonPopular),
	}))

	stats, err := repo.FeedbackStats(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []model.RecommendationFeedbackStat{
		{ReasonType: model.ReasonPopular, Total: 1, Clicked: 1, Enrolled: 1, Dismissed: 0},
		{ReasonType: model.ReasonSkillGap, Total: 1, Clicked: 0, Enrolled: 0, Dismissed: 1},
	}, stats)

	all, err := repo.FeedbackStats(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, int64(2), all[0].Total)
}

func TestReplaceAllKeepsPreviousBatchOnFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecommendationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, 1, []model.Recommendation{
		rec(1, 10, 0.5, 0, model.ReasonPopular),
	}))

	// 主键冲突让插入失败，删除必须一起回滚
	first := rec(1, 11, 0.9, 0, model.ReasonSkillGap)
	first.ID = "dup-id"
	second := rec(1, 12, 0.8, 1, model.ReasonSkillGap)
	second.ID = "dup-id"
	require.Error(t, repo.ReplaceAll(ctx, 1, []model.Recommendation{first, second}))

	got, err := repo.ListActive(ctx, 1, testNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, uint(10), got[0].CourseID)
}
