package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketReviews/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibility_Check(t *testing.T) {
	const (
		userID    uint   = 10
		orderID   uint64 = 100
		productID uint64 = 1000
	)

	cases := []struct {
		name  string
		setup func(orders *fakeOrdersRepo, reviews *fakeReviewRepo)
		want  EligibilityReason
	}{
		{
			name:  "order does not exist",
			setup: func(orders *fakeOrdersRepo, reviews *fakeReviewRepo) {},
			want:  ReasonOrderNotFound,
		},
		{
			name: "order belongs to another user",
			setup: func(orders *fakeOrdersRepo, reviews *fakeReviewRepo) {
				orders.addOrder(orderID, 99, domain.OrderStatusDelivered, productID)
			},
			want: ReasonOrderNotFound,
		},
		{
			name: "order not delivered yet",
			setup: func(orders *fakeOrdersRepo, reviews *fakeReviewRepo) {
				orders.addOrder(orderID, userID, domain.OrderStatusShipped, productID)
			},
			want: ReasonOrderNotDelivered,
		},
		{
			name: "returned order blocks review",
			setup: func(orders *fakeOrdersRepo, reviews *fakeReviewRepo) {
				orders.addOrder(orderID, userID, domain.OrderStatusReturned, productID)
			},
			want: ReasonOrderNotDelivered,
		},
		{
			name: "product not part of the order",
			setup: func(orders *fakeOrdersRepo, reviews *fakeReviewRepo) {
				orders.addOrder(orderID, userID, domain.OrderStatusDelivered, productID+1)
			},
			want: ReasonProductNotInOrder,
		},
		{
			name: "review already exists for the triple",
			setup: func(orders *fakeOrdersRepo, reviews *fakeReviewRepo) {
				orders.addOrder(orderID, userID, domain.OrderStatusDelivered, productID)
				reviews.reviews = append(reviews.reviews, domain.Review{
					ID: "existing", UserID: userID, OrderID: orderID, ProductID: productID,
					Rating: 4, CreatedAt: time.Now(),
				})
			},
			want: ReasonAlreadyReviewed,
		},
		{
			name: "all conditions pass",
			setup: func(orders *fakeOrdersRepo, reviews *fakeReviewRepo) {
				orders.addOrder(orderID, userID, domain.OrderStatusDelivered, productID, productID+1)
			},
			want: Eligible,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orders := newFakeOrdersRepo()
			reviews := &fakeReviewRepo{}
			tc.setup(orders, reviews)

			checker := NewEligibilityChecker(orders, reviews)

			reason, err := checker.Check(context.Background(), userID, productID, orderID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, reason)
		})
	}
}

func TestEligibility_OrderLookupFailure(t *testing.T) {
	orders := newFakeOrdersRepo()
	orders.err = errors.New("connection refused")

	checker := NewEligibilityChecker(orders, &fakeReviewRepo{})

	_, err := checker.Check(context.Background(), 1, 2, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOrderLookup, "collaborator failure must be distinguishable from a plain no")
}

func TestEligibility_ReviewLookupFailure(t *testing.T) {
	orders := newFakeOrdersRepo()
	orders.addOrder(3, 1, domain.OrderStatusDelivered, 2)

	reviews := &fakeReviewRepo{findErr: errors.New("timeout")}
	checker := NewEligibilityChecker(orders, reviews)

	_, err := checker.Check(context.Background(), 1, 2, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
