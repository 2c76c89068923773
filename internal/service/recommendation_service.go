package service

import (
	"context"
	"course_recommender/internal/config"
	"course_recommender/internal/model"
	"course_recommender/internal/recommend"
	"course_recommender/internal/repository"
	"course_recommender/internal/util"
	"course_recommender/pkg/logger"
	"course_recommender/pkg/monitoring"
	"course_recommender/pkg/tracing"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// LearnerSource 提供一次打分所需的一致性快照
type LearnerSource interface {
	Snapshot(ctx context.Context, userID uint) (*model.LearnerSnapshot, error)
}

type RecommendationService struct {
	Store   repository.RecommendationStore
	Learner LearnerSource
	Scorers []recommend.Scorer
	Now     func() time.Time

	mu    sync.RWMutex
	limit int
	ttl   time.Duration
}

func NewRecommendationService(
	store repository.RecommendationStore,
	learner LearnerSource,
	cfg config.RecommendationConfig,
) *RecommendationService {
	s := &RecommendationService{
		Store:   store,
		Learner: learner,
		Scorers: recommend.DefaultScorers,
		Now:     time.Now,
	}
	s.UpdateSettings(cfg)
	return s
}

// UpdateSettings 热更新推荐数量和有效期，非正数保留原值
func (s *RecommendationService) UpdateSettings(cfg config.RecommendationConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.Limit > 0 {
		s.limit = cfg.Limit
	} else if s.limit == 0 {
		s.limit = recommend.DefaultLimit
	}
	if ttl := cfg.TTL(); ttl > 0 {
		s.ttl = ttl
	} else if s.ttl == 0 {
		s.ttl = 24 * time.Hour
	}
}

func (s *RecommendationService) settings() (int, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limit, s.ttl
}

// GetRecommendations returns the stored batch while any of it is still active
// and only scores the catalog again once nothing active remains.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID uint) ([]model.Recommendation, error) {
	ctx, span := tracing.Tracer.Start(ctx, "RecommendationService.GetRecommendations")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))

	active, err := s.Store.ListActive(ctx, userID, s.Now())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list active recommendations: %w", err)
	}
	if len(active) > 0 {
		monitoring.RecommendationCacheResults.WithLabelValues("store", "hit").Inc()
		logger.Log.Debug("Serving stored recommendations",
			zap.Uint("user_id", userID),
			zap.Int("count", len(active)))
		return active, nil
	}

	monitoring.RecommendationCacheResults.WithLabelValues("store", "miss").Inc()
	return s.GenerateRecommendations(ctx, userID)
}

// GenerateRecommendations scores the whole catalog for the user and replaces
// the stored batch, whatever is currently active.
func (s *RecommendationService) GenerateRecommendations(ctx context.Context, userID uint) ([]model.Recommendation, error) {
	ctx, span := tracing.Tracer.Start(ctx, "RecommendationService.GenerateRecommendations")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))

	start := time.Now()
	limit, ttl := s.settings()

	recs, err := s.generate(ctx, userID, limit, ttl)
	monitoring.RecommendationGenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		monitoring.RecommendationGenerations.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.FromContext(ctx).Error("Failed to generate recommendations",
			zap.Uint("user_id", userID),
			zap.Error(err))
		return nil, err
	}

	monitoring.RecommendationGenerations.WithLabelValues("success").Inc()
	span.SetAttributes(attribute.Int("recommendation.count", len(recs)))
	logger.FromContext(ctx).Info("Generated recommendations",
		zap.Uint("user_id", userID),
		zap.Int("count", len(recs)),
		zap.Duration("duration", time.Since(start)))
	return recs, nil
}

func (s *RecommendationService) generate(ctx context.Context, userID uint, limit int, ttl time.Duration) ([]model.Recommendation, error) {
	snap, err := s.Learner.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load learner snapshot: %w", err)
	}
	if !snap.UserFound {
		logger.Log.Debug("Unknown user, scoring with catalog signals only", zap.Uint("user_id", userID))
	}

	scored := recommend.Score(recommend.BuildContext(snap), s.Scorers, limit)

	now := s.Now()
	recs := make([]model.Recommendation, 0, len(scored))
	for i, sc := range scored {
		recs = append(recs, model.Recommendation{
			ID:         uuid.NewString(),
			UserID:     userID,
			CourseID:   sc.Course.ID,
			Score:      sc.Score,
			Rank:       i,
			Reason:     sc.Reason,
			ReasonType: sc.ReasonType,
			CreatedAt:  now,
			ExpiresAt:  now.Add(ttl),
			Course:     sc.Course.Summary(),
		})
	}

	if err := s.Store.ReplaceAll(ctx, userID, recs); err != nil {
		return nil, fmt.Errorf("%w: %w", util.ErrRecommendationStore, err)
	}
	return recs, nil
}

// DismissRecommendation 推荐不存在时静默成功
func (s *RecommendationService) DismissRecommendation(ctx context.Context, userID, courseID uint) error {
	return s.feedback(ctx, "dismiss", userID, courseID, s.Store.Dismiss)
}

func (s *RecommendationService) TrackRecommendationClick(ctx context.Context, userID, courseID uint) error {
	return s.feedback(ctx, "click", userID, courseID, s.Store.MarkClicked)
}

func (s *RecommendationService) TrackRecommendationEnrollment(ctx context.Context, userID, courseID uint) error {
	return s.feedback(ctx, "enroll", userID, courseID, s.Store.MarkEnrolled)
}

func (s *RecommendationService) feedback(
	ctx context.Context,
	action string,
	userID, courseID uint,
	apply func(context.Context, uint, uint) error,
) error {
	ctx, span := tracing.Tracer.Start(ctx, "RecommendationService.Feedback")
	defer span.End()
	span.SetAttributes(
		attribute.String("feedback.action", action),
		attribute.Int64("user.id", int64(userID)),
		attribute.Int64("course.id", int64(courseID)),
	)

	if err := apply(ctx, userID, courseID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %s: %w", util.ErrRecommendationStore, action, err)
	}
	monitoring.RecommendationFeedback.WithLabelValues(action).Inc()
	return nil
}

// GetFeedbackStats userID 为 0 时返回全站统计
func (s *RecommendationService) GetFeedbackStats(ctx context.Context, userID uint) ([]model.RecommendationFeedbackStat, error) {
	stats, err := s.Store.FeedbackStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", util.ErrRecommendationStore, err)
	}
	if stats == nil {
		stats = []model.RecommendationFeedbackStat{}
	}
	return stats, nil
}
