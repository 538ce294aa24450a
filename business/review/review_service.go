package review

import (
	"context"
	"fmt"
	"time"

	"marketReviews/domain"
	"marketReviews/pkg/logger"
	"marketReviews/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

// ReviewRepository contract interface. Append assigns the id; the list
// operations return newest-first, the sort is owned by the repository
// because the store itself guarantees no order. Append does not check
// uniqueness, that lives in the eligibility layer.
type ReviewRepository interface {
	Append(ctx context.Context, review *domain.Review) (string, error)
	ListByProduct(ctx context.Context, productID uint64) ([]domain.Review, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Review, error)
	FindByOrderAndProduct(ctx context.Context, userID uint, orderID, productID uint64) (*domain.Review, error)
}

// SummaryStore contract interface. Get returns nil when the summary is
// absent; Put replaces the whole row; Delete persists absence.
type SummaryStore interface {
	Get(ctx context.Context, productID uint64) (*domain.ReviewSummary, error)
	Put(ctx context.Context, summary *domain.ReviewSummary) error
	Delete(ctx context.Context, productID uint64) error
}

// OrdersRepository is the read-only view of the order service. GetOrder
// returns nil when no order matches the (user, order) pair.
type OrdersRepository interface {
	GetOrder(ctx context.Context, userID uint, orderID uint64) (*domain.Orders, error)
}

type CreateReviewInput struct {
	UserID         uint   `validate:"required"`
	UserName       string `validate:"required"`
	OrderID        uint64 `validate:"required"`
	ProductID      uint64 `validate:"required"`
	ProductName    string `validate:"required"`
	ProductImage   string
	Rating         int    `validate:"required,min=1,max=5"`
	ShippingRating int    `validate:"required,min=1,max=5"`
	Comment        string `validate:"required,min=3"`
}

type ReviewService struct {
	reviewRepo  ReviewRepository
	summaries   SummaryStore
	cache       *ReviewCache
	eligibility *EligibilityChecker
	maintainer  *SummaryMaintainer
	reconciler  *Reconciler
	validate    *validator.Validate
	now         func() time.Time
}

func NewReviewService(
	reviewRepo ReviewRepository,
	summaries SummaryStore,
	orderRepo OrdersRepository,
	cache *ReviewCache,
	validate *validator.Validate,
) *ReviewService {
	maintainer := NewSummaryMaintainer(reviewRepo, summaries)

	return &ReviewService{
		reviewRepo:  reviewRepo,
		summaries:   summaries,
		cache:       cache,
		eligibility: NewEligibilityChecker(orderRepo, reviewRepo),
		maintainer:  maintainer,
		reconciler:  NewReconciler(reviewRepo, summaries, maintainer, cache),
		validate:    validate,
		now:         time.Now,
	}
}

// CreateReview runs the full creation path: validate, re-check
// eligibility, append, invalidate the cache, recompute the summary.
// Append and recompute are independent writes; a recompute failure after
// a successful append is logged and left for the reconciler, the review
// itself stands.
func (s *ReviewService) CreateReview(ctx context.Context, input CreateReviewInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(&input); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	reason, err := s.eligibility.Check(ctx, input.UserID, input.ProductID, input.OrderID)
	if err != nil {
		return "", err
	}
	switch reason {
	case Eligible:
	case ReasonAlreadyReviewed:
		return "", domain.ErrDuplicateReview
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrIneligible, reason)
	}

	now := s.now()
	rev := &domain.Review{
		UserID:         input.UserID,
		OrderID:        input.OrderID,
		ProductID:      input.ProductID,
		UserName:       input.UserName,
		ProductName:    input.ProductName,
		ProductImage:   input.ProductImage,
		Rating:         input.Rating,
		ShippingRating: input.ShippingRating,
		Comment:        input.Comment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	id, err := s.reviewRepo.Append(ctx, rev)
	if err != nil {
		logger.Error("failed to append review", "user_id", input.UserID, "product_id", input.ProductID, "error", err)
		return "", fmt.Errorf("%w: append review: %v", domain.ErrStorage, err)
	}

	metrics.ReviewsCreated.Inc()

	// Invalidate before recompute so a concurrent reader forced to miss
	// observes post-write state.
	s.cache.Invalidate(input.ProductID)

	if _, err := s.maintainer.Recompute(ctx, input.ProductID); err != nil {
		logger.Error("summary recompute failed after review append, reconciler will repair",
			"product_id", input.ProductID, "review_id", id, "error", err)
	}

	logger.Info("review created", "review_id", id, "user_id", input.UserID, "product_id", input.ProductID)

	return id, nil
}

// GetReviewsForProduct returns the product's reviews newest-first,
// served through the cache.
func (s *ReviewService) GetReviewsForProduct(ctx context.Context, productID uint64) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.getReviews(ctx, productID, true)
}

// GetReviewsForUser returns the user's reviews newest-first. User lists
// are not cached; the cache is keyed by product only.
func (s *ReviewService) GetReviewsForUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list reviews by user: %v", domain.ErrStorage, err)
	}

	return reviews, nil
}

// GetSummary returns the read-repaired summary for a product, or
// domain.ErrNotFound when the product has no reviews. When the repair
// pass itself fails, the last stored summary is served instead; a stale
// summary beats a broken read path.
func (s *ReviewService) GetSummary(ctx context.Context, productID uint64) (*domain.ReviewSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	report, err := s.reconciler.Reconcile(ctx, productID)
	if err != nil {
		logger.Warn("reconcile failed, serving stored summary", "product_id", productID, "error", err)

		stored, serr := s.summaries.Get(ctx, productID)
		if serr != nil {
			return nil, fmt.Errorf("%w: read summary: %v", domain.ErrStorage, serr)
		}
		if stored == nil {
			return nil, domain.ErrNotFound
		}
		return stored, nil
	}

	if report.After == nil {
		return nil, domain.ErrNotFound
	}

	return report.After, nil
}

// CheckEligibility reports whether the user may still review the product
// from the given order. False is an answer, not an error; errors mean
// the check itself could not run.
func (s *ReviewService) CheckEligibility(ctx context.Context, userID uint, productID, orderID uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	reason, err := s.eligibility.Check(ctx, userID, productID, orderID)
	if err != nil {
		return false, err
	}

	return reason == Eligible, nil
}

// ForceReconcile runs the drift check unconditionally and returns the
// before/after report. Exposed for operational use.
func (s *ReviewService) ForceReconcile(ctx context.Context, productID uint64) (*domain.ReconcileReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.reconciler.Reconcile(ctx, productID)
}

func (s *ReviewService) getReviews(ctx context.Context, productID uint64, allowCache bool) ([]domain.Review, error) {
	if allowCache {
		if reviews, ok := s.cache.Get(productID); ok {
			metrics.ReviewCacheHits.Inc()
			return reviews, nil
		}
		metrics.ReviewCacheMisses.Inc()
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: list reviews by product: %v", domain.ErrStorage, err)
	}

	s.cache.Set(productID, reviews)

	return reviews, nil
}
