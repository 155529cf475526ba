package mocks

import (
	"context"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/store"
)

// MockPlaceStore implements store.PlaceStore for testing
type MockPlaceStore struct {
	mem *Memory

	ListFn       func(ctx context.Context) ([]domain.Place, error)
	GetByIDFn    func(ctx context.Context, id domain.ID) (*domain.Place, error)
	CreateFn     func(ctx context.Context, place *domain.Place) error
	UpdateFn     func(ctx context.Context, id domain.ID, patch domain.PlacePatch) (*domain.Place, error)
	DeleteFn     func(ctx context.Context, id domain.ID) error
	SearchFn     func(ctx context.Context, filter domain.PlaceFilter) ([]domain.Place, error)
	ListByTaxiFn func(ctx context.Context, taxiID domain.ID) ([]domain.Place, error)
}

var _ store.PlaceStore = (*MockPlaceStore)(nil)

func (s *MockPlaceStore) List(ctx context.Context) ([]domain.Place, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	return sortedByID(s.mem.places, nil), nil
}

func (s *MockPlaceStore) GetByID(ctx context.Context, id domain.ID) (*domain.Place, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	p, ok := s.mem.places[id]
	if !ok {
		return nil, store.ErrPlaceNotFound
	}
	return &p, nil
}

func (s *MockPlaceStore) Create(ctx context.Context, place *domain.Place) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, place)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	now := s.mem.Now()
	place.ID = s.mem.allocID()
	place.CreatedAt, place.UpdatedAt = now, now
	s.mem.places[place.ID] = *place
	return nil
}

func (s *MockPlaceStore) Update(ctx context.Context, id domain.ID, patch domain.PlacePatch) (*domain.Place, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	p, ok := s.mem.places[id]
	if !ok {
		return nil, store.ErrPlaceNotFound
	}
	if patch.IsEmpty() {
		return &p, nil
	}
	set(&p.Name, patch.Name)
	set(&p.Latitude, patch.Latitude)
	set(&p.Longitude, patch.Longitude)
	setPtr(&p.Description, patch.Description)
	setPtr(&p.Address, patch.Address)
	setPtr(&p.City, patch.City)
	setPtr(&p.Country, patch.Country)
	setPtr(&p.Category, patch.Category)
	setPtr(&p.ImageURL, patch.ImageURL)
	setPtr(&p.Website, patch.Website)
	setPtr(&p.Phone, patch.Phone)
	setPtr(&p.Email, patch.Email)
	p.UpdatedAt = s.mem.Now()
	s.mem.places[id] = p
	return &p, nil
}

func (s *MockPlaceStore) Delete(ctx context.Context, id domain.ID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	if _, ok := s.mem.places[id]; !ok {
		return store.ErrPlaceNotFound
	}
	delete(s.mem.places, id)
	for rid, r := range s.mem.reviews {
		if r.PlaceID == id {
			delete(s.mem.reviews, rid)
		}
	}
	for link := range s.mem.links {
		if link.placeID == id {
			delete(s.mem.links, link)
		}
	}
	return nil
}

func (s *MockPlaceStore) Search(ctx context.Context, filter domain.PlaceFilter) ([]domain.Place, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, filter)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	return sortedByID(s.mem.places, func(p domain.Place) bool {
		if filter.Category != nil && (p.Category == nil || *p.Category != *filter.Category) {
			return false
		}
		return containsFold(&p.Name, filter.Query) || containsFold(p.Description, filter.Query)
	}), nil
}

func (s *MockPlaceStore) ListByTaxi(ctx context.Context, taxiID domain.ID) ([]domain.Place, error) {
	if s.ListByTaxiFn != nil {
		return s.ListByTaxiFn(ctx, taxiID)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	return sortedByID(s.mem.places, func(p domain.Place) bool {
		_, ok := s.mem.links[placeTaxi{placeID: p.ID, taxiID: taxiID}]
		return ok
	}), nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setPtr[T any](dst **T, v *T) {
	if v != nil {
		c := *v
		*dst = &c
	}
}
