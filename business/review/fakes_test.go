package review

import (
	"context"
	"sort"
	"sync"

	"marketReviews/domain"

	"github.com/google/uuid"
)

// In-memory fakes for the repository contracts. The list fakes sort
// explicitly because the contract promises newest-first while the
// backing store promises nothing.

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []domain.Review

	listByProductCalls int

	appendErr error
	listErr   error
	findErr   error
}

func (f *fakeReviewRepo) Append(_ context.Context, review *domain.Review) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.appendErr != nil {
		return "", f.appendErr
	}

	review.ID = uuid.NewString()
	f.reviews = append(f.reviews, *review)
	return review.ID, nil
}

func (f *fakeReviewRepo) ListByProduct(_ context.Context, productID uint64) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listByProductCalls++

	if f.listErr != nil {
		return nil, f.listErr
	}

	var out []domain.Review
	for _, r := range f.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *fakeReviewRepo) ListByUser(_ context.Context, userID uint) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	var out []domain.Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *fakeReviewRepo) FindByOrderAndProduct(_ context.Context, userID uint, orderID, productID uint64) (*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return nil, f.findErr
	}

	for i := range f.reviews {
		r := f.reviews[i]
		if r.UserID == userID && r.OrderID == orderID && r.ProductID == productID {
			return &r, nil
		}
	}
	return nil, nil
}

func sortNewestFirst(reviews []domain.Review) {
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
}

type fakeSummaryStore struct {
	mu        sync.Mutex
	summaries map[uint64]domain.ReviewSummary

	putCalls    int
	deleteCalls int

	getErr error
	putErr error
}

func newFakeSummaryStore() *fakeSummaryStore {
	return &fakeSummaryStore{summaries: make(map[uint64]domain.ReviewSummary)}
}

func (f *fakeSummaryStore) Get(_ context.Context, productID uint64) (*domain.ReviewSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}

	s, ok := f.summaries[productID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSummaryStore) Put(_ context.Context, summary *domain.ReviewSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.putCalls++

	if f.putErr != nil {
		return f.putErr
	}

	f.summaries[summary.ProductID] = *summary
	return nil
}

func (f *fakeSummaryStore) Delete(_ context.Context, productID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleteCalls++
	delete(f.summaries, productID)
	return nil
}

// corrupt overwrites the stored summary in place, bypassing the
// maintainer, to simulate drift.
func (f *fakeSummaryStore) corrupt(productID uint64, mutate func(*domain.ReviewSummary)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.summaries[productID]
	mutate(&s)
	f.summaries[productID] = s
}

type fakeOrdersRepo struct {
	orders map[uint64]domain.Orders
	err    error
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{orders: make(map[uint64]domain.Orders)}
}

func (f *fakeOrdersRepo) addOrder(orderID uint64, userID uint, status string, productIDs ...uint64) {
	order := domain.Orders{
		ID:          orderID,
		UserID:      userID,
		OrderStatus: status,
	}
	for _, pid := range productIDs {
		order.Items = append(order.Items, domain.OrderItem{OrderID: orderID, ProductID: pid, Quantity: 1})
	}
	f.orders[orderID] = order
}

func (f *fakeOrdersRepo) GetOrder(_ context.Context, userID uint, orderID uint64) (*domain.Orders, error) {
	if f.err != nil {
		return nil, f.err
	}

	order, ok := f.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, nil
	}
	return &order, nil
}
