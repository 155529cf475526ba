package store

import (
	"context"

	"github.com/travelinfo/travel-api/internal/domain"
)

// ReviewStore defines the interface for review persistence.
type ReviewStore interface {
	List(ctx context.Context) ([]domain.Review, error)

	// GetByID returns ErrReviewNotFound if the review does not exist.
	GetByID(ctx context.Context, id domain.ID) (*domain.Review, error)

	// Create inserts review and writes back ID and timestamps. An unknown
	// place or user fails with a foreign key *ConstraintError.
	Create(ctx context.Context, review *domain.Review) error

	// Update returns ErrReviewNotFound if the review does not exist.
	Update(ctx context.Context, id domain.ID, patch domain.ReviewPatch) (*domain.Review, error)

	// Delete returns ErrReviewNotFound if the review does not exist.
	Delete(ctx context.Context, id domain.ID) error

	// ListByPlace returns the reviews of a place, newest first.
	ListByPlace(ctx context.Context, placeID domain.ID) ([]domain.Review, error)

	// RatingSummary returns the mean rating and review count of a place.
	// Average is nil when the place has no reviews.
	RatingSummary(ctx context.Context, placeID domain.ID) (domain.RatingSummary, error)
}
