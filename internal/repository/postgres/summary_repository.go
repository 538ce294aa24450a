package postgres

import (
	"context"
	"errors"

	"marketReviews/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SummaryRepository struct {
	DB *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{
		DB: db,
	}
}

// Get returns nil when no summary row exists for the product.
func (r *SummaryRepository) Get(ctx context.Context, productID uint64) (*domain.ReviewSummary, error) {
	var summary domain.ReviewSummary
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &summary, nil
}

// Put replaces the summary row whole. Single-statement upsert, never a
// partial patch.
func (r *SummaryRepository) Put(ctx context.Context, summary *domain.ReviewSummary) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			UpdateAll: true,
		}).
		Create(summary).Error
}

// Delete persists absence. Deleting a row that is already gone is fine.
func (r *SummaryRepository) Delete(ctx context.Context, productID uint64) error {
	return r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.ReviewSummary{}).Error
}
