package review

import (
	"context"
	"testing"

	"marketReviews/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewsWithRatings(productID uint64, ratings ...int) []domain.Review {
	out := make([]domain.Review, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, domain.Review{ProductID: productID, Rating: r})
	}
	return out
}

func TestBuildSummary(t *testing.T) {
	cases := []struct {
		name        string
		ratings     []int
		wantAverage float64
	}{
		{"single review", []int{4}, 4.0},
		{"exact half rounds away from zero", []int{4, 5}, 4.5},
		{"quarter rounds up", []int{4, 4, 4, 5}, 4.3}, // 17/4 = 4.25
		{"repeating third rounds down", []int{1, 1, 2}, 1.3},
		{"repeating two thirds rounds up", []int{2, 3, 3}, 2.7},
		{"all fives", []int{5, 5, 5, 5}, 5.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary := buildSummary(7, reviewsWithRatings(7, tc.ratings...))

			assert.Equal(t, uint64(7), summary.ProductID)
			assert.Equal(t, int64(len(tc.ratings)), summary.TotalReviews)
			assert.Equal(t, tc.wantAverage, summary.AverageRating)

			var bucketSum int64
			for rating, count := range summary.Distribution() {
				assert.GreaterOrEqual(t, rating, 1)
				assert.LessOrEqual(t, rating, 5)
				bucketSum += count
			}
			assert.Equal(t, summary.TotalReviews, bucketSum)
		})
	}
}

func TestBuildSummary_Distribution(t *testing.T) {
	summary := buildSummary(1, reviewsWithRatings(1, 5, 4, 4, 1, 5, 5))

	assert.Equal(t, map[int]int64{1: 1, 4: 2, 5: 3}, summary.Distribution())
}

func TestRecompute_PersistsSummary(t *testing.T) {
	repo := &fakeReviewRepo{reviews: reviewsWithRatings(9, 4, 5)}
	store := newFakeSummaryStore()
	maintainer := NewSummaryMaintainer(repo, store)

	summary, err := maintainer.Recompute(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, summary)

	stored, err := store.Get(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, summary, stored)
	assert.Equal(t, 4.5, stored.AverageRating)
}

func TestRecompute_EmptySetPersistsAbsence(t *testing.T) {
	repo := &fakeReviewRepo{}
	store := newFakeSummaryStore()
	store.summaries[3] = domain.ReviewSummary{ProductID: 3, TotalReviews: 12, AverageRating: 4.2}

	maintainer := NewSummaryMaintainer(repo, store)

	summary, err := maintainer.Recompute(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, summary, "empty review set must not produce a zero-filled summary")

	stored, err := store.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, stored, "stale summary row must be removed")
	assert.Equal(t, 1, store.deleteCalls)
}

func TestRecompute_Idempotent(t *testing.T) {
	repo := &fakeReviewRepo{reviews: reviewsWithRatings(5, 3, 4, 4, 5, 1)}
	store := newFakeSummaryStore()
	maintainer := NewSummaryMaintainer(repo, store)

	first, err := maintainer.Recompute(context.Background(), 5)
	require.NoError(t, err)

	second, err := maintainer.Recompute(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
