package review

import (
	"context"
	"fmt"
	"math"

	"marketReviews/domain"
	"marketReviews/pkg/logger"
	"marketReviews/pkg/metrics"
)

// averageDriftEpsilon bounds the allowed difference between the stored
// average and a freshly computed one. Both sides use identical rounding,
// so any real drift moves the value by at least 0.1.
const averageDriftEpsilon = 0.001

// Reconciler detects and repairs drift between the persisted summary and
// the review set it was derived from. Review append and summary replace
// are two independent writes with no transaction across them; a crash or
// a lost race between them leaves the summary behind. The reconciler is
// the read-repair pass that closes that window whenever a summary is
// read, instead of a background job.
type Reconciler struct {
	reviewRepo ReviewRepository
	summaries  SummaryStore
	maintainer *SummaryMaintainer
	cache      *ReviewCache
}

func NewReconciler(reviewRepo ReviewRepository, summaries SummaryStore, maintainer *SummaryMaintainer, cache *ReviewCache) *Reconciler {
	return &Reconciler{
		reviewRepo: reviewRepo,
		summaries:  summaries,
		maintainer: maintainer,
		cache:      cache,
	}
}

// Reconcile compares ground truth with the stored summary and repairs on
// mismatch. The review fetch deliberately bypasses the cache; comparing
// a cached list against the summary would just re-check one derived view
// against another. The fresh list refreshes the cache on the way.
func (r *Reconciler) Reconcile(ctx context.Context, productID uint64) (*domain.ReconcileReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	metrics.ReconcileChecks.Inc()

	observed, err := r.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: list reviews for reconcile: %v", domain.ErrStorage, err)
	}
	r.cache.Set(productID, observed)

	stored, err := r.summaries.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: read summary for reconcile: %v", domain.ErrStorage, err)
	}

	report := &domain.ReconcileReport{
		ProductID:     productID,
		ObservedCount: int64(len(observed)),
		Before:        stored,
		After:         stored,
	}

	if !drifted(stored, observed) {
		return report, nil
	}

	report.Drifted = true
	metrics.ReconcileRepairs.Inc()

	var storedCount int64 = -1
	if stored != nil {
		storedCount = stored.TotalReviews
	}
	logger.Warn("review summary drift detected, repairing",
		"product_id", productID,
		"observed_count", len(observed),
		"stored_count", storedCount,
	)

	r.cache.Invalidate(productID)

	repaired, err := r.maintainer.Recompute(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("repair summary: %w", err)
	}
	report.After = repaired

	return report, nil
}

func drifted(stored *domain.ReviewSummary, observed []domain.Review) bool {
	if stored == nil {
		return len(observed) > 0
	}

	if stored.TotalReviews != int64(len(observed)) {
		return true
	}

	if len(observed) == 0 {
		// stored.TotalReviews is also zero here; a zero-filled row should
		// not exist, treat it as drift so the repair clears it.
		return true
	}

	fresh := buildSummary(stored.ProductID, observed)
	return math.Abs(stored.AverageRating-fresh.AverageRating) > averageDriftEpsilon
}
