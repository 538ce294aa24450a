package postgres

import (
	"context"
	"errors"

	"marketReviews/domain"

	"gorm.io/gorm"
)

// OrdersRepository is a read-only view of the order service's tables,
// used for eligibility checks. This service never writes orders.
type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// GetOrder fetches the order with its line items, scoped to the user so
// one user cannot review against another user's order. Returns nil when
// no such order exists.
func (r *OrdersRepository) GetOrder(ctx context.Context, userID uint, orderID uint64) (*domain.Orders, error) {
	var order domain.Orders
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &order, nil
}
