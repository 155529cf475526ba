package store

import (
	"context"

	"github.com/travelinfo/travel-api/internal/domain"
)

// PlaceStore defines the interface for place persistence.
// Returned places never carry related reviews or taxis.
type PlaceStore interface {
	// List returns every place ordered by ID.
	List(ctx context.Context) ([]domain.Place, error)

	// GetByID returns ErrPlaceNotFound if the place does not exist.
	GetByID(ctx context.Context, id domain.ID) (*domain.Place, error)

	// Create inserts place and writes back ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, place *domain.Place) error

	// Update applies the non-nil fields of patch and returns the stored row.
	// Returns ErrPlaceNotFound if the place does not exist.
	Update(ctx context.Context, id domain.ID, patch domain.PlacePatch) (*domain.Place, error)

	// Delete removes the place together with its reviews and taxi links.
	// Returns ErrPlaceNotFound if the place does not exist.
	Delete(ctx context.Context, id domain.ID) error

	// Search matches filter.Query case-insensitively against name and
	// description, narrowed by the optional exact category.
	Search(ctx context.Context, filter domain.PlaceFilter) ([]domain.Place, error)

	// ListByTaxi returns the places a taxi serves.
	ListByTaxi(ctx context.Context, taxiID domain.ID) ([]domain.Place, error)
}
