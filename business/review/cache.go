package review

import (
	"sync"
	"time"

	"marketReviews/domain"
)

// DefaultCacheTTL is how long a cached review list stays valid without
// a refetch.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	reviews   []domain.Review
	fetchedAt time.Time
}

// ReviewCache holds per-product review lists in process memory. Entries
// expire after the TTL and are evicted explicitly whenever a review for
// the product is written, so a reader forced to miss observes post-write
// state. Nothing here survives a restart; the lists are rebuilt from the
// repository on the next miss.
type ReviewCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uint64]cacheEntry
}

func NewReviewCache(ttl time.Duration) *ReviewCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &ReviewCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uint64]cacheEntry),
	}
}

// Get returns the cached list for the product, or false when there is no
// entry or the entry has outlived the TTL.
func (c *ReviewCache) Get(productID uint64) ([]domain.Review, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[productID]
	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		return nil, false
	}

	return entry.reviews, true
}

// Set stores a freshly fetched list, stamping it with the current time.
func (c *ReviewCache) Set(productID uint64, reviews []domain.Review) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[productID] = cacheEntry{
		reviews:   reviews,
		fetchedAt: c.now(),
	}
}

// Invalidate drops the entry for the product, if any.
func (c *ReviewCache) Invalidate(productID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, productID)
}
