package postgres

import (
	"context"
	"errors"

	"marketReviews/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

// Append inserts the review and assigns its id. No uniqueness check
// here; the eligibility layer owns duplicate prevention.
func (r *ReviewRepository) Append(ctx context.Context, review *domain.Review) (string, error) {
	review.ID = uuid.NewString()

	if err := r.DB.WithContext(ctx).Create(review).Error; err != nil {
		return "", err
	}

	return review.ID, nil
}

// ListByProduct returns the product's reviews newest-first. The sort
// lives here: the repository owns the ordering contract.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID uint64) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// FindByOrderAndProduct returns nil when no review exists for the
// (user, order, product) triple.
func (r *ReviewRepository) FindByOrderAndProduct(ctx context.Context, userID uint, orderID, productID uint64) (*domain.Review, error) {
	var review domain.Review
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND order_id = ? AND product_id = ?", userID, orderID, productID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &review, nil
}
