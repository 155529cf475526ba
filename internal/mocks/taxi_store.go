package mocks

import (
	"context"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/store"
)

// MockTaxiStore implements store.TaxiStore for testing
type MockTaxiStore struct {
	mem *Memory

	ListFn        func(ctx context.Context) ([]domain.Taxi, error)
	GetByIDFn     func(ctx context.Context, id domain.ID) (*domain.Taxi, error)
	CreateFn      func(ctx context.Context, taxi *domain.Taxi, placeIDs []domain.ID) error
	UpdateFn      func(ctx context.Context, id domain.ID, patch domain.TaxiPatch) (*domain.Taxi, error)
	DeleteFn      func(ctx context.Context, id domain.ID) error
	SearchFn      func(ctx context.Context, filter domain.TaxiFilter) ([]domain.Taxi, error)
	ListByPlaceFn func(ctx context.Context, placeID domain.ID) ([]domain.Taxi, error)
}

var _ store.TaxiStore = (*MockTaxiStore)(nil)

func (s *MockTaxiStore) List(ctx context.Context) ([]domain.Taxi, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	return sortedByID(s.mem.taxis, nil), nil
}

func (s *MockTaxiStore) GetByID(ctx context.Context, id domain.ID) (*domain.Taxi, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	t, ok := s.mem.taxis[id]
	if !ok {
		return nil, store.ErrTaxiNotFound
	}
	return &t, nil
}

// Create mirrors the transactional store: an unknown place ID fails the
// whole call and nothing is written.
func (s *MockTaxiStore) Create(ctx context.Context, taxi *domain.Taxi, placeIDs []domain.ID) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, taxi, placeIDs)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	if err := s.checkPlaces(placeIDs); err != nil {
		return err
	}
	now := s.mem.Now()
	taxi.ID = s.mem.allocID()
	taxi.CreatedAt, taxi.UpdatedAt = now, now
	s.mem.taxis[taxi.ID] = *taxi
	s.connect(taxi.ID, placeIDs)
	return nil
}

func (s *MockTaxiStore) Update(ctx context.Context, id domain.ID, patch domain.TaxiPatch) (*domain.Taxi, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	t, ok := s.mem.taxis[id]
	if !ok {
		return nil, store.ErrTaxiNotFound
	}
	if err := s.checkPlaces(patch.ConnectPlaceIDs); err != nil {
		return nil, err
	}
	if patch.HasColumns() {
		set(&t.Name, patch.Name)
		set(&t.Phone, patch.Phone)
		set(&t.IsAvailable, patch.IsAvailable)
		setPtr(&t.Company, patch.Company)
		setPtr(&t.Rating, patch.Rating)
		t.UpdatedAt = s.mem.Now()
		s.mem.taxis[id] = t
	}
	s.connect(id, patch.ConnectPlaceIDs)
	return &t, nil
}

func (s *MockTaxiStore) Delete(ctx context.Context, id domain.ID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	if _, ok := s.mem.taxis[id]; !ok {
		return store.ErrTaxiNotFound
	}
	delete(s.mem.taxis, id)
	for link := range s.mem.links {
		if link.taxiID == id {
			delete(s.mem.links, link)
		}
	}
	return nil
}

func (s *MockTaxiStore) Search(ctx context.Context, filter domain.TaxiFilter) ([]domain.Taxi, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, filter)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	return sortedByID(s.mem.taxis, func(t domain.Taxi) bool {
		if filter.Available != nil && t.IsAvailable != *filter.Available {
			return false
		}
		return containsFold(&t.Name, filter.Query) ||
			containsFold(t.Company, filter.Query) ||
			containsFold(&t.Phone, filter.Query)
	}), nil
}

func (s *MockTaxiStore) ListByPlace(ctx context.Context, placeID domain.ID) ([]domain.Taxi, error) {
	if s.ListByPlaceFn != nil {
		return s.ListByPlaceFn(ctx, placeID)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	return sortedByID(s.mem.taxis, func(t domain.Taxi) bool {
		_, ok := s.mem.links[placeTaxi{placeID: placeID, taxiID: t.ID}]
		return ok
	}), nil
}

func (s *MockTaxiStore) checkPlaces(ids []domain.ID) error {
	for _, pid := range ids {
		if _, ok := s.mem.places[pid]; !ok {
			return &store.ConstraintError{
				Kind:       store.ConstraintForeignKey,
				Constraint: "place_taxis_place_id_fkey",
				Table:      "place_taxis",
				Column:     "place_id",
			}
		}
	}
	return nil
}

func (s *MockTaxiStore) connect(taxiID domain.ID, placeIDs []domain.ID) {
	for _, pid := range placeIDs {
		s.mem.links[placeTaxi{placeID: pid, taxiID: taxiID}] = struct{}{}
	}
}
