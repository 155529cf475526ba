package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/store"
)

// TaxiService provides taxi operations.
type TaxiService interface {
	List(ctx context.Context) ([]domain.Taxi, error)

	// GetByID returns the taxi with the places it serves.
	GetByID(ctx context.Context, id domain.ID) (*domain.Taxi, error)

	// Create stores the taxi and connects it to placeIDs in one transaction.
	Create(ctx context.Context, taxi *domain.Taxi, placeIDs []domain.ID) (*domain.Taxi, error)

	Update(ctx context.Context, id domain.ID, patch domain.TaxiPatch) (*domain.Taxi, error)
	Delete(ctx context.Context, id domain.ID) error
	Search(ctx context.Context, filter domain.TaxiFilter) ([]domain.Taxi, error)

	// ByPlace lists the taxis serving a place. An unknown place yields an empty list.
	ByPlace(ctx context.Context, placeID domain.ID) ([]domain.Taxi, error)
}

type taxiService struct {
	taxis  store.TaxiStore
	places store.PlaceStore
	logger *slog.Logger
}

// NewTaxiService creates a TaxiService.
func NewTaxiService(taxis store.TaxiStore, places store.PlaceStore, logger *slog.Logger) TaxiService {
	return &taxiService{
		taxis:  taxis,
		places: places,
		logger: logger.With("component", "taxi_service"),
	}
}

func (s *taxiService) List(ctx context.Context) ([]domain.Taxi, error) {
	taxis, err := s.taxis.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxis: %w", err)
	}
	return taxis, nil
}

func (s *taxiService) GetByID(ctx context.Context, id domain.ID) (*domain.Taxi, error) {
	taxi, err := s.taxis.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get taxi: %w", err)
	}
	if err := s.loadPlaces(ctx, taxi); err != nil {
		return nil, err
	}
	return taxi, nil
}

func (s *taxiService) Create(
	ctx context.Context,
	taxi *domain.Taxi,
	placeIDs []domain.ID,
) (*domain.Taxi, error) {
	if err := taxi.Validate(); err != nil {
		return nil, err
	}
	if err := s.taxis.Create(ctx, taxi, dedupeIDs(placeIDs)); err != nil {
		s.logger.Error("failed to create taxi",
			"error", err,
			"name", taxi.Name,
			"place_count", len(placeIDs))
		return nil, fmt.Errorf("failed to create taxi: %w", err)
	}
	if err := s.loadPlaces(ctx, taxi); err != nil {
		return nil, err
	}

	s.logger.Info("taxi created", "taxi_id", taxi.ID, "place_count", len(taxi.Places))
	return taxi, nil
}

func (s *taxiService) Update(
	ctx context.Context,
	id domain.ID,
	patch domain.TaxiPatch,
) (*domain.Taxi, error) {
	patch.ConnectPlaceIDs = dedupeIDs(patch.ConnectPlaceIDs)

	taxi, err := s.taxis.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("failed to update taxi", "error", err, "taxi_id", id)
		}
		return nil, fmt.Errorf("failed to update taxi: %w", err)
	}
	if err := s.loadPlaces(ctx, taxi); err != nil {
		return nil, err
	}
	return taxi, nil
}

func (s *taxiService) Delete(ctx context.Context, id domain.ID) error {
	if err := s.taxis.Delete(ctx, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("failed to delete taxi", "error", err, "taxi_id", id)
		}
		return fmt.Errorf("failed to delete taxi: %w", err)
	}
	s.logger.Info("taxi deleted", "taxi_id", id)
	return nil
}

func (s *taxiService) Search(ctx context.Context, filter domain.TaxiFilter) ([]domain.Taxi, error) {
	taxis, err := s.taxis.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search taxis: %w", err)
	}
	return taxis, nil
}

func (s *taxiService) ByPlace(ctx context.Context, placeID domain.ID) ([]domain.Taxi, error) {
	taxis, err := s.taxis.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxis of place: %w", err)
	}
	return taxis, nil
}

func (s *taxiService) loadPlaces(ctx context.Context, taxi *domain.Taxi) error {
	places, err := s.places.ListByTaxi(ctx, taxi.ID)
	if err != nil {
		return fmt.Errorf("failed to load places of taxi: %w", err)
	}
	taxi.Places = places
	return nil
}

// dedupeIDs drops repeated IDs, keeping first-seen order.
func dedupeIDs(ids []domain.ID) []domain.ID {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[domain.ID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
