package review

import (
	"context"
	"fmt"

	"marketReviews/domain"
	"marketReviews/pkg/logger"
)

// EligibilityReason explains why a (user, order, product) triple may or
// may not produce a new review.
type EligibilityReason int

const (
	Eligible EligibilityReason = iota
	ReasonOrderNotFound
	ReasonOrderNotDelivered
	ReasonProductNotInOrder
	ReasonAlreadyReviewed
)

func (r EligibilityReason) String() string {
	switch r {
	case Eligible:
		return "eligible"
	case ReasonOrderNotFound:
		return "order not found"
	case ReasonOrderNotDelivered:
		return "order not delivered"
	case ReasonProductNotInOrder:
		return "product not in order"
	case ReasonAlreadyReviewed:
		return "already reviewed"
	}
	return "unknown"
}

// EligibilityChecker decides whether a user may review a product from a
// given order. This is the only defense against duplicate reviews, so it
// runs again at creation time, not just when the UI asks.
type EligibilityChecker struct {
	orderRepo  OrdersRepository
	reviewRepo ReviewRepository
}

func NewEligibilityChecker(orderRepo OrdersRepository, reviewRepo ReviewRepository) *EligibilityChecker {
	return &EligibilityChecker{
		orderRepo:  orderRepo,
		reviewRepo: reviewRepo,
	}
}

// Check evaluates the rules in order, short-circuiting on the first
// failure: the order exists for this user, it was delivered, it contains
// the product, and no review exists yet for the triple. A non-nil error
// means an I/O failure, never a "no" answer.
func (e *EligibilityChecker) Check(ctx context.Context, userID uint, productID, orderID uint64) (EligibilityReason, error) {
	if err := ctx.Err(); err != nil {
		return ReasonOrderNotFound, fmt.Errorf("context error: %w", err)
	}

	order, err := e.orderRepo.GetOrder(ctx, userID, orderID)
	if err != nil {
		logger.Error("order lookup failed during eligibility check", "user_id", userID, "order_id", orderID, "error", err)
		return ReasonOrderNotFound, fmt.Errorf("%w: %v", domain.ErrOrderLookup, err)
	}
	if order == nil {
		return ReasonOrderNotFound, nil
	}

	if order.OrderStatus != domain.OrderStatusDelivered {
		return ReasonOrderNotDelivered, nil
	}

	if !order.Contains(productID) {
		return ReasonProductNotInOrder, nil
	}

	existing, err := e.reviewRepo.FindByOrderAndProduct(ctx, userID, orderID, productID)
	if err != nil {
		return ReasonAlreadyReviewed, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	if existing != nil {
		return ReasonAlreadyReviewed, nil
	}

	return Eligible, nil
}
