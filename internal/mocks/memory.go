package mocks

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/travelinfo/travel-api/internal/domain"
)

type placeTaxi struct {
	placeID domain.ID
	taxiID  domain.ID
}

// Memory is an in-memory database backing the store mocks.
type Memory struct {
	mu      sync.Mutex
	nextID  domain.ID
	places  map[domain.ID]domain.Place
	taxis   map[domain.ID]domain.Taxi
	reviews map[domain.ID]domain.Review
	users   map[domain.ID]domain.User
	links   map[placeTaxi]struct{}

	// Now supplies timestamps. Tests may replace it.
	Now func() time.Time
}

// NewMemory creates an empty in-memory database.
func NewMemory() *Memory {
	return &Memory{
		places:  make(map[domain.ID]domain.Place),
		taxis:   make(map[domain.ID]domain.Taxi),
		reviews: make(map[domain.ID]domain.Review),
		users:   make(map[domain.ID]domain.User),
		links:   make(map[placeTaxi]struct{}),
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// PlaceStore returns a place store over the memory.
func (m *Memory) PlaceStore() *MockPlaceStore { return &MockPlaceStore{mem: m} }

// TaxiStore returns a taxi store over the memory.
func (m *Memory) TaxiStore() *MockTaxiStore { return &MockTaxiStore{mem: m} }

// ReviewStore returns a review store over the memory.
func (m *Memory) ReviewStore() *MockReviewStore { return &MockReviewStore{mem: m} }

// UserStore returns a user store over the memory.
func (m *Memory) UserStore() *MockUserStore { return &MockUserStore{mem: m} }

// allocID must be called with mu held.
func (m *Memory) allocID() domain.ID {
	m.nextID++
	return m.nextID
}

func containsFold(haystack *string, needle string) bool {
	if haystack == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*haystack), strings.ToLower(needle))
}

func sortedByID[T any](items map[domain.ID]T, keep func(T) bool) []T {
	ids := make([]domain.ID, 0, len(items))
	for id, item := range items {
		if keep == nil || keep(item) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, items[id])
	}
	return out
}
