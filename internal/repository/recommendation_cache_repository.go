package repository

import (
	"context"
	"course_recommender/internal/model"
	"course_recommender/pkg/logger"
	"course_recommender/pkg/monitoring"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// RecommendationCacheRepository 在 RecommendationStore 之上加一层 Redis 读缓存。
// 写操作先落库再删除该用户的缓存键，Redis 出错时直接读库。
type RecommendationCacheRepository struct {
	Store RecommendationStore
	Redis *redis.Client
	TTL   time.Duration
}

func NewRecommendationCacheRepository(store RecommendationStore, rdb *redis.Client, ttl time.Duration) *RecommendationCacheRepository {
	return &RecommendationCacheRepository{
		Store: store,
		Redis: rdb,
		TTL:   ttl,
	}
}

func activeRecommendationsKey(userID uint) string {
	return fmt.Sprintf("recommendations:active:%d", userID)
}

func (r *RecommendationCacheRepository) ListActive(ctx context.Context, userID uint, now time.Time) ([]model.Recommendation, error) {
	if r.Redis == nil {
		return r.Store.ListActive(ctx, userID, now)
	}

	key := activeRecommendationsKey(userID)
	raw, err := r.Redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []model.Recommendation
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			if active := filterActive(cached, now); len(active) > 0 {
				monitoring.RecommendationCacheResults.WithLabelValues("redis", "hit").Inc()
				return active, nil
			}
		} else {
			logger.Log.Warn("Failed to decode cached recommendations",
				zap.Uint("userID", userID),
				zap.Error(jsonErr))
		}
	case err != redis.Nil:
		logger.Log.Warn("Redis read failed, falling back to database",
			zap.Uint("userID", userID),
			zap.Error(err))
	}
	monitoring.RecommendationCacheResults.WithLabelValues("redis", "miss").Inc()

	recs, err := r.Store.ListActive(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	r.fill(ctx, key, recs, now)
	return recs, nil
}

// fill 缓存过期时间不超过批次中最早的过期时间
func (r *RecommendationCacheRepository) fill(ctx context.Context, key string, recs []model.Recommendation, now time.Time) {
	if len(recs) == 0 {
		return
	}
	ttl := r.TTL
	for _, rec := range recs {
		if left := rec.ExpiresAt.Sub(now); left < ttl {
			ttl = left
		}
	}
	if ttl <= 0 {
		return
	}
	payload, err := json.Marshal(recs)
	if err != nil {
		logger.Log.Warn("Failed to encode recommendations for cache", zap.Error(err))
		return
	}
	if err := r.Redis.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Log.Warn("Redis write failed", zap.String("key", key), zap.Error(err))
	}
}

func filterActive(recs []model.Recommendation, now time.Time) []model.Recommendation {
	active := recs[:0]
	for _, rec := range recs {
		if !rec.Dismissed && rec.ExpiresAt.After(now) {
			active = append(active, rec)
		}
	}
	return active
}

func (r *RecommendationCacheRepository) invalidate(ctx context.Context, userID uint) {
	if r.Redis == nil {
		return
	}
	if err := r.Redis.Del(ctx, activeRecommendationsKey(userID)).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate recommendation cache",
			zap.Uint("userID", userID),
			zap.Error(err))
	}
}

func (r *RecommendationCacheRepository) ReplaceAll(ctx context.Context, userID uint, recs []model.Recommendation) error {
	if err := r.Store.ReplaceAll(ctx, userID, recs); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *RecommendationCacheRepository) Dismiss(ctx context.Context, userID, courseID uint) error {
	if err := r.Store.Dismiss(ctx, userID, courseID); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *RecommendationCacheRepository) MarkClicked(ctx context.Context, userID, courseID uint) error {
	if err := r.Store.MarkClicked(ctx, userID, courseID); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *RecommendationCacheRepository) MarkEnrolled(ctx context.Context, userID, courseID uint) error {
	if err := r.Store.MarkEnrolled(ctx, userID, courseID); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *RecommendationCacheRepository) FeedbackStats(ctx context.Context, userID uint) ([]model.RecommendationFeedbackStat, error) {
	return r.Store.FeedbackStats(ctx, userID)
}
