package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/platform/logger"
	"github.com/travelinfo/travel-api/internal/store"
)

const reviewsTable = "reviews"

var reviewColumns = []any{
	"id", "content", "rating", "author", "place_id", "user_id", "created_at", "updated_at",
}

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

func scanReview(row rowScanner) (domain.Review, error) {
	var r domain.Review
	err := row.Scan(
		&r.ID, &r.Content, &r.Rating, &r.Author, &r.PlaceID,
		&r.UserID, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func selectReviews() *goqu.SelectDataset {
	return dialect.From(reviewsTable).Prepared(true).Select(reviewColumns...)
}

// List implements store.ReviewStore.List
func (s *PostgresReviewStore) List(ctx context.Context) ([]domain.Review, error) {
	reviews, err := queryRows(ctx, s.db, selectReviews().Order(goqu.C("id").Asc()), scanReview)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list reviews",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("review", "list", "query failed", err)
	}
	return reviews, nil
}

// GetByID implements store.ReviewStore.GetByID
func (s *PostgresReviewStore) GetByID(ctx context.Context, id domain.ID) (*domain.Review, error) {
	ds := selectReviews().Where(goqu.C("id").Eq(id))
	r, err := queryRow(ctx, s.db, ds, scanReview, store.ErrReviewNotFound)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get review",
				slog.Int64("review_id", int64(id)), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return &r, nil
}

// Create implements store.ReviewStore.Create
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during create", slog.String("error", err.Error()))
		return err
	}

	ds := dialect.Insert(reviewsTable).Prepared(true).
		Rows(goqu.Record{
			"content":  review.Content,
			"rating":   review.Rating,
			"author":   review.Author,
			"place_id": review.PlaceID,
			"user_id":  review.UserID,
		}).
		Returning("id", "created_at", "updated_at")

	query, args, err := ds.ToSQL()
	if err != nil {
		return store.NewStoreError("review", "create", "failed to build query", err)
	}

	err = s.db.QueryRowContext(ctx, query, args...).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during review creation",
				slog.Int64("place_id", int64(review.PlaceID)),
				slog.Int64("user_id", int64(review.UserID)))
		} else {
			log.Error("failed to create review", slog.String("error", err.Error()))
		}
		return MapError(err)
	}

	log.Info("review created",
		slog.Int64("review_id", int64(review.ID)),
		slog.Int64("place_id", int64(review.PlaceID)))
	return nil
}

// Update implements store.ReviewStore.Update
func (s *PostgresReviewStore) Update(ctx context.Context, id domain.ID, patch domain.ReviewPatch) (*domain.Review, error) {
	if patch.IsEmpty() {
		return s.GetByID(ctx, id)
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	rec := goqu.Record{"updated_at": goqu.L("NOW()")}
	setIfPresent(rec, "content", patch.Content)
	setIfPresent(rec, "rating", patch.Rating)
	setIfPresent(rec, "author", patch.Author)
	setIfPresent(rec, "place_id", patch.PlaceID)

	ds := dialect.Update(reviewsTable).Prepared(true).
		Set(rec).
		Where(goqu.C("id").Eq(id)).
		Returning(reviewColumns...)

	r, err := queryRow(ctx, s.db, ds, scanReview, store.ErrReviewNotFound)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to update review", slog.Int64("review_id", int64(id)), slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Info("review updated", slog.Int64("review_id", int64(id)))
	return &r, nil
}

// Delete implements store.ReviewStore.Delete
func (s *PostgresReviewStore) Delete(ctx context.Context, id domain.ID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ds := dialect.Delete(reviewsTable).Prepared(true).Where(goqu.C("id").Eq(id))
	if err := execDelete(ctx, s.db, ds, store.ErrReviewNotFound); err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete review", slog.Int64("review_id", int64(id)), slog.String("error", err.Error()))
		}
		return err
	}

	log.Info("review deleted", slog.Int64("review_id", int64(id)))
	return nil
}

// ListByPlace implements store.ReviewStore.ListByPlace
func (s *PostgresReviewStore) ListByPlace(ctx context.Context, placeID domain.ID) ([]domain.Review, error) {
	ds := selectReviews().
		Where(goqu.C("place_id").Eq(placeID)).
		Order(goqu.C("created_at").Desc(), goqu.C("id").Desc())

	reviews, err := queryRows(ctx, s.db, ds, scanReview)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list reviews for place",
			slog.Int64("place_id", int64(placeID)), slog.String("error", err.Error()))
		return nil, store.NewStoreError("review", "list_by_place", "query failed", err)
	}
	return reviews, nil
}

// RatingSummary implements store.ReviewStore.RatingSummary
func (s *PostgresReviewStore) RatingSummary(ctx context.Context, placeID domain.ID) (domain.RatingSummary, error) {
	summary := domain.RatingSummary{PlaceID: placeID}

	ds := dialect.From(reviewsTable).Prepared(true).
		Select(goqu.L("AVG(?)::float8", goqu.C("rating")), goqu.COUNT("*")).
		Where(goqu.C("place_id").Eq(placeID))

	query, args, err := ds.ToSQL()
	if err != nil {
		return summary, store.NewStoreError("review", "rating_summary", "failed to build query", err)
	}

	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&avg, &summary.Count); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to compute rating summary",
			slog.Int64("place_id", int64(placeID)), slog.String("error", err.Error()))
		return summary, store.NewStoreError("review", "rating_summary", "query failed", MapError(err))
	}

	// AVG over zero rows is NULL.
	if avg.Valid {
		v := avg.Float64
		summary.Average = &v
	}
	return summary, nil
}
