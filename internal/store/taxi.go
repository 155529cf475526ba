package store

import (
	"context"

	"github.com/travelinfo/travel-api/internal/domain"
)

// TaxiStore defines the interface for taxi persistence.
type TaxiStore interface {
	List(ctx context.Context) ([]domain.Taxi, error)

	// GetByID returns ErrTaxiNotFound if the taxi does not exist.
	GetByID(ctx context.Context, id domain.ID) (*domain.Taxi, error)

	// Create inserts taxi and links it to placeIDs in one transaction.
	// An unknown place ID fails with a foreign key *ConstraintError and
	// nothing is written.
	Create(ctx context.Context, taxi *domain.Taxi, placeIDs []domain.ID) error

	// Update applies the non-nil fields of patch and links any
	// patch.ConnectPlaceIDs. Existing links are kept.
	// Returns ErrTaxiNotFound if the taxi does not exist.
	Update(ctx context.Context, id domain.ID, patch domain.TaxiPatch) (*domain.Taxi, error)

	// Delete returns ErrTaxiNotFound if the taxi does not exist.
	Delete(ctx context.Context, id domain.ID) error

	// Search matches filter.Query case-insensitively against name, company
	// and phone, narrowed by the optional availability flag.
	Search(ctx context.Context, filter domain.TaxiFilter) ([]domain.Taxi, error)

	// ListByPlace returns the taxis linked to a place.
	ListByPlace(ctx context.Context, placeID domain.ID) ([]domain.Taxi, error)
}
