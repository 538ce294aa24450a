package review

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"marketReviews/domain"

	"github.com/stretchr/testify/assert"
)

func TestCache_GetWithinTTL(t *testing.T) {
	now := time.Now()
	cache := NewReviewCache(5 * time.Minute)
	cache.now = func() time.Time { return now }

	cache.Set(1, []domain.Review{{ID: "a", ProductID: 1}})

	now = now.Add(4 * time.Minute)
	got, ok := cache.Get(1)
	assert.True(t, ok)
	assert.Len(t, got, 1)
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	now := time.Now()
	cache := NewReviewCache(5 * time.Minute)
	cache.now = func() time.Time { return now }

	cache.Set(1, []domain.Review{{ID: "a", ProductID: 1}})

	now = now.Add(5 * time.Minute)
	_, ok := cache.Get(1)
	assert.False(t, ok, "entry at exactly TTL must be treated as expired")
}

func TestCache_InvalidateEvictsWithinTTL(t *testing.T) {
	now := time.Now()
	cache := NewReviewCache(5 * time.Minute)
	cache.now = func() time.Time { return now }

	cache.Set(1, []domain.Review{{ID: "a", ProductID: 1}})
	cache.Invalidate(1)

	_, ok := cache.Get(1)
	assert.False(t, ok, "invalidated entry must not be served even inside the TTL window")
}

func TestCache_UnknownProductMisses(t *testing.T) {
	cache := NewReviewCache(5 * time.Minute)

	_, ok := cache.Get(42)
	assert.False(t, ok)
}

func TestCache_PerProductIsolation(t *testing.T) {
	cache := NewReviewCache(5 * time.Minute)

	cache.Set(1, []domain.Review{{ID: "a", ProductID: 1}})
	cache.Set(2, []domain.Review{{ID: "b", ProductID: 2}})
	cache.Invalidate(1)

	_, ok := cache.Get(1)
	assert.False(t, ok)

	got, ok := cache.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "b", got[0].ID)
}

func TestCache_ConcurrentReadWriteInvalidate(t *testing.T) {
	cache := NewReviewCache(time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				pid := uint64(i % 10)
				switch g % 3 {
				case 0:
					cache.Set(pid, []domain.Review{{ID: fmt.Sprintf("%d-%d", g, i), ProductID: pid}})
				case 1:
					cache.Get(pid)
				default:
					cache.Invalidate(pid)
				}
			}
		}(g)
	}
	wg.Wait()
}
