package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/platform/logger"
)

const ratingKeyPrefix = "travel:rating:"

// commander is the subset of redis.Cmdable the cache needs.
type commander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RatingCache stores place rating summaries as JSON with a fixed TTL.
type RatingCache struct {
	client commander
	ttl    time.Duration
	logger *slog.Logger
}

// NewRatingCache creates a cache over client. If logger is nil, a default logger will be used.
func NewRatingCache(client commander, ttl time.Duration, logger *slog.Logger) *RatingCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RatingCache{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "rating_cache")),
	}
}

func ratingKey(placeID domain.ID) string {
	return ratingKeyPrefix + placeID.String()
}

// GetRating returns the cached summary. ok is false on a miss.
func (c *RatingCache) GetRating(ctx context.Context, placeID domain.ID) (summary domain.RatingSummary, ok bool, err error) {
	raw, err := c.client.Get(ctx, ratingKey(placeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RatingSummary{}, false, nil
	}
	if err != nil {
		return domain.RatingSummary{}, false, fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal(raw, &summary); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set.
		logger.FromContextOrDefault(ctx, c.logger).Warn("discarding undecodable rating cache entry",
			slog.Int64("place_id", int64(placeID)), slog.String("error", err.Error()))
		return domain.RatingSummary{}, false, nil
	}
	return summary, true, nil
}

// SetRating caches summary under its place ID.
func (c *RatingCache) SetRating(ctx context.Context, summary domain.RatingSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode rating summary: %w", err)
	}
	if err := c.client.Set(ctx, ratingKey(summary.PlaceID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in cache: %w", err)
	}
	return nil
}

// InvalidateRating drops the cached summary of a place.
func (c *RatingCache) InvalidateRating(ctx context.Context, placeID domain.ID) error {
	if err := c.client.Del(ctx, ratingKey(placeID)).Err(); err != nil {
		return fmt.Errorf("failed to delete from cache: %w", err)
	}
	return nil
}
