package review

import (
	"context"
	"fmt"
	"math"

	"marketReviews/domain"
	"marketReviews/pkg/logger"

	"gorm.io/datatypes"
)

// SummaryMaintainer owns the persisted per-product summary. It always
// recomputes from the full review set and replaces the row whole; there
// are no incremental counter updates to go wrong under partial writes.
type SummaryMaintainer struct {
	reviewRepo ReviewRepository
	summaries  SummaryStore
}

func NewSummaryMaintainer(reviewRepo ReviewRepository, summaries SummaryStore) *SummaryMaintainer {
	return &SummaryMaintainer{
		reviewRepo: reviewRepo,
		summaries:  summaries,
	}
}

// Recompute rebuilds the summary for a product from an uncached fetch of
// its reviews. An empty review set persists absence, not a zero-filled
// row: a product with no reviews must read as "no data", not "0.0".
// Returns the persisted summary, or nil when the set was empty.
func (m *SummaryMaintainer) Recompute(ctx context.Context, productID uint64) (*domain.ReviewSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	reviews, err := m.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: list reviews for recompute: %v", domain.ErrStorage, err)
	}

	if len(reviews) == 0 {
		if err := m.summaries.Delete(ctx, productID); err != nil {
			return nil, fmt.Errorf("%w: clear summary: %v", domain.ErrStorage, err)
		}
		logger.Debug("summary cleared, no reviews", "product_id", productID)
		return nil, nil
	}

	summary := buildSummary(productID, reviews)
	if err := m.summaries.Put(ctx, summary); err != nil {
		return nil, fmt.Errorf("%w: persist summary: %v", domain.ErrStorage, err)
	}

	logger.Debug("summary recomputed",
		"product_id", productID,
		"total_reviews", summary.TotalReviews,
		"average_rating", summary.AverageRating,
	)

	return summary, nil
}

// buildSummary tallies the histogram and the one-decimal average over a
// non-empty review set. Deterministic: the same set always yields the
// same summary.
func buildSummary(productID uint64, reviews []domain.Review) *domain.ReviewSummary {
	distribution := make(map[int]int64, 5)
	sum := 0

	for _, r := range reviews {
		distribution[r.Rating]++
		sum += r.Rating
	}

	average := roundToOneDecimal(float64(sum) / float64(len(reviews)))

	return &domain.ReviewSummary{
		ProductID:          productID,
		AverageRating:      average,
		TotalReviews:       int64(len(reviews)),
		RatingDistribution: datatypes.NewJSONType(distribution),
	}
}

// roundToOneDecimal rounds half away from zero.
func roundToOneDecimal(x float64) float64 {
	return math.Round(x*10) / 10
}
