package service

import (
	"context"

	"github.com/travelinfo/travel-api/internal/domain"
)

// RatingCache caches per-place rating summaries. Implementations must be safe
// for concurrent use.
type RatingCache interface {
	GetRating(ctx context.Context, placeID domain.ID) (domain.RatingSummary, bool, error)
	SetRating(ctx context.Context, summary domain.RatingSummary) error
	InvalidateRating(ctx context.Context, placeID domain.ID) error
}

// noopRatingCache is used when no cache is configured.
type noopRatingCache struct{}

func (noopRatingCache) GetRating(context.Context, domain.ID) (domain.RatingSummary, bool, error) {
	return domain.RatingSummary{}, false, nil
}

func (noopRatingCache) SetRating(context.Context, domain.RatingSummary) error { return nil }

func (noopRatingCache) InvalidateRating(context.Context, domain.ID) error { return nil }

func orNoopCache(c RatingCache) RatingCache {
	if c == nil {
		return noopRatingCache{}
	}
	return c
}
