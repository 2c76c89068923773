package repository

import (
	"context"
	"course_recommender/internal/model"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	RecommendationStore
	listCalls int
	listErr   error
}

func (s *countingStore) ListActive(ctx context.Context, userID uint, now time.Time) ([]model.Recommendation, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.RecommendationStore.ListActive(ctx, userID, now)
}

func newCachedStore(t *testing.T) (*RecommendationCacheRepository, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	inner := &countingStore{RecommendationStore: NewRecommendationRepository(newTestDB(t))}
	return NewRecommendationCacheRepository(inner, rdb, 15*time.Minute), inner, mr
}

func TestCacheServesRepeatedReads(t *testing.T) {
	cache, inner, mr := newCachedStore(t)
	ctx := context.Background()

	require.NoError(t, cache.ReplaceAll(ctx, 1, []model.Recommendation{
		rec(1, 40, 0.8, 0, model.ReasonContinuePath),
	}))

	first, err := cache.ListActive(ctx, 1, testNow)
	require.NoError(t, err)
	second, err := cache.ListActive(ctx, 1, testNow)
	require.NoError(t, err)

	require.Equal(t, 1, inner.listCalls)
	require.Len(t, second, 1)
	require.Equal(t, first[0].ID, second[0].ID)
	require.Equal(t, model.ReasonContinuePath, second[0].ReasonType)
	require.True(t, mr.Exists(activeRecommendationsKey(1)))
	require.Equal(t, 15*time.Minute, mr.TTL(activeRecommendationsKey(1)))
}

func TestCacheTTLBoundedByExpiry(t *testing.T) {
	cache, _, mr := newCachedStore(t)
	ctx := context.Background()

	soon := rec(1, 41, 0.5, 0, model.ReasonPopular)
	soon.ExpiresAt = testNow.Add(5 * time.Minute)
	require.NoError(t, cache.ReplaceAll(ctx, 1, []model.Recommendation{soon}))

	_, err := cache.ListActive(ctx, 1, testNow)
	require.NoError(t, err)
	require.Equal(t, 5*time.Minute, mr.TTL(activeRecommendationsKey(1)))
}

func TestCacheInvalidatedByFeedback(t *testing.T) {
	cache, inner, mr := newCachedStore(t)
	ctx := context.Background()

	require.NoError(t, cache.ReplaceAll(ctx, 1, []model.Recommendation{
		rec(1, 42, 0.8, 0, model.ReasonPopular),
		rec(1, 43, 0.7, 1, model.ReasonPopular),
	}))
	_, err := cache.ListActive(ctx, 1, testNow)
	require.NoError(t, err)

	require.NoError(t, cache.Dismiss(ctx, 1, 42))
	require.False(t, mr.Exists(activeRecommendationsKey(1)))

	got, err := cache.ListActive(ctx, 1, testNow)
	require.NoError(t, err)
	require.Equal(t, 2, inner.listCalls)
	require.Len(t, got, 1)
	require.Equal(t, uint(43), got[0].CourseID)
}

func TestCacheSkipsEmptyBatch(t *testing.T) {
	cache, inner, mr := newCachedStore(t)
	ctx := context.Background()

	got, err := cache.ListActive(ctx, 1, testNow)
	require.NoError(t, err)
	require.Empty(t, got)
	require.False(t, mr.Exists(activeRecommendationsKey(1)))

	_, err = cache.ListActive(ctx, 1, testNow)
	require.NoError(t, err)
	require.Equal(t, 2, inner.listCalls)
}

func TestCacheFallsBackWhenRedisDown(t *testing.T) {
	cache, inner, mr := newCachedStore(t)
	ctx := context.Background()

	require.NoError(t, cache.Store.ReplaceAll(ctx, 1, []model.Recommendation{
		rec(1, 44, 0.8, 0, model.ReasonPopular),
	}))
	mr.Close()

	got, err := cache.ListActive(ctx, 1, testNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1, inner.listCalls)
}

func TestCachePropagatesStoreError(t *testing.T) {
	cache, inner, _ := newCachedStore(t)
	inner.listErr = errors.New("db down")

	_, err := cache.ListActive(context.Background(), 1, testNow)
	require.EqualError(t, err, "db down")
}
