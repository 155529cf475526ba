package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/store"
)

// PlaceService provides place operations.
type PlaceService interface {
	List(ctx context.Context) ([]domain.Place, error)

	// GetByID returns the place with its reviews and connected taxis.
	GetByID(ctx context.Context, id domain.ID) (*domain.Place, error)

	Create(ctx context.Context, place *domain.Place) (*domain.Place, error)

	// Update applies a partial update. An empty patch returns the current place.
	Update(ctx context.Context, id domain.ID, patch domain.PlacePatch) (*domain.Place, error)

	// Delete removes the place together with its reviews and taxi links.
	Delete(ctx context.Context, id domain.ID) error

	Search(ctx context.Context, filter domain.PlaceFilter) ([]domain.Place, error)
}

type placeService struct {
	places  store.PlaceStore
	taxis   store.TaxiStore
	reviews store.ReviewStore
	ratings RatingCache
	logger  *slog.Logger
}

// NewPlaceService creates a PlaceService. ratings may be nil.
func NewPlaceService(
	places store.PlaceStore,
	taxis store.TaxiStore,
	reviews store.ReviewStore,
	ratings RatingCache,
	logger *slog.Logger,
) PlaceService {
	return &placeService{
		places:  places,
		taxis:   taxis,
		reviews: reviews,
		ratings: orNoopCache(ratings),
		logger:  logger.With("component", "place_service"),
	}
}

func (s *placeService) List(ctx context.Context) ([]domain.Place, error) {
	places, err := s.places.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return places, nil
}

func (s *placeService) GetByID(ctx context.Context, id domain.ID) (*domain.Place, error) {
	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	reviews, err := s.reviews.ListByPlace(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews of place: %w", err)
	}
	taxis, err := s.taxis.ListByPlace(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxis of place: %w", err)
	}

	place.Reviews = reviews
	place.Taxis = taxis
	return place, nil
}

func (s *placeService) Create(ctx context.Context, place *domain.Place) (*domain.Place, error) {
	if err := place.Validate(); err != nil {
		return nil, err
	}
	if err := s.places.Create(ctx, place); err != nil {
		s.logger.Error("failed to create place", "error", err, "name", place.Name)
		return nil, fmt.Errorf("failed to create place: %w", err)
	}

	s.logger.Info("place created", "place_id", place.ID)
	return place, nil
}

func (s *placeService) Update(
	ctx context.Context,
	id domain.ID,
	patch domain.PlacePatch,
) (*domain.Place, error) {
	place, err := s.places.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("failed to update place", "error", err, "place_id", id)
		}
		return nil, fmt.Errorf("failed to update place: %w", err)
	}
	return place, nil
}

func (s *placeService) Delete(ctx context.Context, id domain.ID) error {
	if err := s.places.Delete(ctx, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("failed to delete place", "error", err, "place_id", id)
		}
		return fmt.Errorf("failed to delete place: %w", err)
	}

	// Reviews went with the place.
	if err := s.ratings.InvalidateRating(ctx, id); err != nil {
		s.logger.Warn("failed to invalidate rating cache", "error", err, "place_id", id)
	}

	s.logger.Info("place deleted", "place_id", id)
	return nil
}

func (s *placeService) Search(ctx context.Context, filter domain.PlaceFilter) ([]domain.Place, error) {
	places, err := s.places.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}
	return places, nil
}
