package mocks

import (
	"context"
	"sync"

	"github.com/travelinfo/travel-api/internal/domain"
)

// MockRatingCache is an in-memory rating cache with call tracking.
type MockRatingCache struct {
	mu      sync.Mutex
	entries map[domain.ID]domain.RatingSummary

	// Err is returned by every method when set.
	Err error

	Hits        int
	Misses      int
	Invalidated []domain.ID
}

// NewMockRatingCache creates an empty cache.
func NewMockRatingCache() *MockRatingCache {
	return &MockRatingCache{entries: make(map[domain.ID]domain.RatingSummary)}
}

func (c *MockRatingCache) GetRating(_ context.Context, placeID domain.ID) (domain.RatingSummary, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return domain.RatingSummary{}, false, c.Err
	}
	s, ok := c.entries[placeID]
	if ok {
		c.Hits++
	} else {
		c.Misses++
	}
	return s, ok, nil
}

func (c *MockRatingCache) SetRating(_ context.Context, summary domain.RatingSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.entries[summary.PlaceID] = summary
	return nil
}

func (c *MockRatingCache) InvalidateRating(_ context.Context, placeID domain.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidated = append(c.Invalidated, placeID)
	if c.Err != nil {
		return c.Err
	}
	delete(c.entries, placeID)
	return nil
}

// Cached reports whether placeID has an entry.
func (c *MockRatingCache) Cached(placeID domain.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[placeID]
	return ok
}
