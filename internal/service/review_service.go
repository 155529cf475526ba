package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/store"
)

// ReviewService provides review operations. Mutations take the calling
// identity: the author is always the caller, and only the author or an
// ADMIN may change or remove a review.
type ReviewService interface {
	List(ctx context.Context) ([]domain.Review, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Review, error)
	Create(ctx context.Context, who domain.Identity, review *domain.Review) (*domain.Review, error)
	Update(ctx context.Context, who domain.Identity, id domain.ID, patch domain.ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, who domain.Identity, id domain.ID) error
	ByPlace(ctx context.Context, placeID domain.ID) ([]domain.Review, error)

	// AverageRating returns the mean rating of a place; Average is nil when
	// the place has no reviews.
	AverageRating(ctx context.Context, placeID domain.ID) (domain.RatingSummary, error)
}

type reviewService struct {
	reviews store.ReviewStore
	ratings RatingCache
	logger  *slog.Logger
}

// NewReviewService creates a ReviewService. ratings may be nil.
func NewReviewService(reviews store.ReviewStore, ratings RatingCache, logger *slog.Logger) ReviewService {
	return &reviewService{
		reviews: reviews,
		ratings: orNoopCache(ratings),
		logger:  logger.With("component", "review_service"),
	}
}

func (s *reviewService) List(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) GetByID(ctx context.Context, id domain.ID) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Create(
	ctx context.Context,
	who domain.Identity,
	review *domain.Review,
) (*domain.Review, error) {
	review.UserID = who.ID
	if err := review.Validate(); err != nil {
		return nil, err
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if !errors.Is(err, store.ErrConstraintViolation) {
			s.logger.Error("failed to create review",
				"error", err,
				"place_id", review.PlaceID,
				"user_id", who.ID)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.invalidate(ctx, review.PlaceID)
	s.logger.Info("review created",
		"review_id", review.ID,
		"place_id", review.PlaceID,
		"user_id", who.ID)
	return review, nil
}

func (s *reviewService) Update(
	ctx context.Context,
	who domain.Identity,
	id domain.ID,
	patch domain.ReviewPatch,
) (*domain.Review, error) {
	current, err := s.authorize(ctx, who, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	updated, err := s.reviews.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrConstraintViolation) {
			s.logger.Error("failed to update review", "error", err, "review_id", id)
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.invalidate(ctx, current.PlaceID)
	if updated.PlaceID != current.PlaceID {
		s.invalidate(ctx, updated.PlaceID)
	}
	return updated, nil
}

func (s *reviewService) Delete(ctx context.Context, who domain.Identity, id domain.ID) error {
	current, err := s.authorize(ctx, who, id)
	if err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("failed to delete review", "error", err, "review_id", id)
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.invalidate(ctx, current.PlaceID)
	s.logger.Info("review deleted", "review_id", id, "user_id", who.ID)
	return nil
}

func (s *reviewService) ByPlace(ctx context.Context, placeID domain.ID) ([]domain.Review, error) {
	reviews, err := s.reviews.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of place: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) AverageRating(ctx context.Context, placeID domain.ID) (domain.RatingSummary, error) {
	summary, ok, err := s.ratings.GetRating(ctx, placeID)
	if err != nil {
		s.logger.Warn("rating cache read failed", "error", err, "place_id", placeID)
	}
	if ok {
		return summary, nil
	}

	summary, err = s.reviews.RatingSummary(ctx, placeID)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("failed to compute average rating: %w", err)
	}
	if err := s.ratings.SetRating(ctx, summary); err != nil {
		s.logger.Warn("rating cache write failed", "error", err, "place_id", placeID)
	}
	return summary, nil
}

// authorize loads the review and checks that who may modify it.
func (s *reviewService) authorize(ctx context.Context, who domain.Identity, id domain.ID) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if !review.IsWrittenBy(who) && !who.IsAdmin() {
		s.logger.Debug("review modification denied",
			"review_id", id,
			"owner_id", review.UserID,
			"caller_id", who.ID)
		return nil, ErrNotOwned
	}
	return review, nil
}

func (s *reviewService) invalidate(ctx context.Context, placeID domain.ID) {
	if err := s.ratings.InvalidateRating(ctx, placeID); err != nil {
		s.logger.Warn("failed to invalidate rating cache", "error", err, "place_id", placeID)
	}
}
