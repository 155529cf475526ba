package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/store"
)

func reviewRows() *sqlmock.Rows {
	return sqlmock.NewRows(columnNames(reviewColumns))
}

func TestPostgresReviewStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresReviewStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reviews"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, testTime, testTime))

		r := &domain.Review{Content: "Amazing view", Rating: 5, PlaceID: 1, UserID: 2}
		require.NoError(t, s.Create(context.Background(), r))
		assert.Equal(t, domain.ID(11), r.ID)
	})

	t.Run("unknown place", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresReviewStore(db, nil)

		mock.ExpectQuery(`INSERT INTO "reviews"`).
			WillReturnError(newPgError(foreignKeyViolationCode, "reviews_place_id_fkey"))

		r := &domain.Review{Content: "Amazing view", Rating: 5, PlaceID: 404, UserID: 2}
		err := s.Create(context.Background(), r)
		assert.ErrorIs(t, err, store.ErrConstraintViolation)
	})

	t.Run("rating out of range", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresReviewStore(db, nil)

		r := &domain.Review{Content: "Too good", Rating: 6, PlaceID: 1, UserID: 2}
		assert.ErrorIs(t, s.Create(context.Background(), r), domain.ErrValidation)
	})
}

func TestPostgresReviewStore_GetUpdateDelete(t *testing.T) {
	t.Parallel()

	t.Run("get absent", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresReviewStore(db, nil)

		mock.ExpectQuery(`FROM "reviews"`).WithArgs(int64(5)).WillReturnRows(reviewRows())

		_, err := s.GetByID(context.Background(), 5)
		assert.ErrorIs(t, err, store.ErrReviewNotFound)
	})

	t.Run("update rating", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresReviewStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "reviews" SET`)).
			WithArgs(int64(3), int64(5)).
			WillReturnRows(reviewRows().AddRow(5, "Good", 3, nil, 1, 2, testTime, testTime))

		r, err := s.Update(context.Background(), 5, domain.ReviewPatch{Rating: ptr(3)})
		require.NoError(t, err)
		assert.Equal(t, 3, r.Rating)
		assert.Nil(t, r.Author)
	})

	t.Run("delete absent", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresReviewStore(db, nil)

		mock.ExpectExec(`DELETE FROM "reviews"`).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(context.Background(), 5), store.ErrReviewNotFound)
	})
}

func TestPostgresReviewStore_ListByPlace(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresReviewStore(db, nil)

	rows := reviewRows().
		AddRow(2, "Great art", 4, "Art Lover", 1, 3, testTime, testTime).
		AddRow(1, "Amazing view", 5, nil, 1, 2, testTime, testTime)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE ("place_id" = $1) ORDER BY "created_at" DESC`)).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	reviews, err := s.ListByPlace(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Art Lover", *reviews[0].Author)
}

func TestPostgresReviewStore_RatingSummary(t *testing.T) {
	t.Parallel()

	t.Run("no reviews yields no average", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresReviewStore(db, nil)

		mock.ExpectQuery(`AVG\("rating"\)::float8, COUNT\(\*\)`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(nil, 0))

		summary, err := s.RatingSummary(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, domain.ID(7), summary.PlaceID)
		assert.Nil(t, summary.Average)
		assert.Zero(t, summary.Count)
	})

	t.Run("mean of ratings", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresReviewStore(db, nil)

		mock.ExpectQuery(`AVG`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(4.5, 2))

		summary, err := s.RatingSummary(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, summary.Average)
		assert.InDelta(t, 4.5, *summary.Average, 1e-9)
		assert.Equal(t, int64(2), summary.Count)
	})
}
