package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/mocks"
	"github.com/travelinfo/travel-api/internal/store"
)

// mockRatingCache mocks the RatingCache interface
type mockRatingCache struct {
	mock.Mock
}

func (m *mockRatingCache) GetRating(ctx context.Context, placeID domain.ID) (domain.RatingSummary, bool, error) {
	args := m.Called(ctx, placeID)
	return args.Get(0).(domain.RatingSummary), args.Bool(1), args.Error(2)
}

func (m *mockRatingCache) SetRating(ctx context.Context, summary domain.RatingSummary) error {
	return m.Called(ctx, summary).Error(0)
}

func (m *mockRatingCache) InvalidateRating(ctx context.Context, placeID domain.ID) error {
	return m.Called(ctx, placeID).Error(0)
}

func newReviewService(t *testing.T, f *fixture, cache RatingCache) (ReviewService, *mocks.MockReviewStore) {
	t.Helper()
	reviews := f.mem.ReviewStore()
	return NewReviewService(reviews, cache, testLogger(t)), reviews
}

func TestReviewService_CreateUsesCallerAsAuthor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	cache := mocks.NewMockRatingCache()
	svc, _ := newReviewService(t, f, cache)

	created, err := svc.Create(ctx, f.user, &domain.Review{
		Content: "Lovely view",
		Rating:  5,
		PlaceID: f.place.ID,
		UserID:  f.other.ID, // ignored
	})
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, created.UserID)
	assert.Equal(t, []domain.ID{f.place.ID}, cache.Invalidated)
}

func TestReviewService_CreateUnknownPlace(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc, _ := newReviewService(t, f, nil)

	_, err := svc.Create(context.Background(), f.user, &domain.Review{Content: "x", Rating: 3, PlaceID: 999})
	var cerr *store.ConstraintError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, store.ConstraintForeignKey, cerr.Kind)
}

func TestReviewService_CreateRejectsBadRating(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc, _ := newReviewService(t, f, nil)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), f.user, &domain.Review{Content: "x", Rating: rating, PlaceID: f.place.ID})
		assert.ErrorIs(t, err, domain.ErrValidation, "rating %d", rating)
	}
}

func TestReviewService_Ownership(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		caller  func(f *fixture) domain.Identity
		wantErr error
	}{
		{"author may modify", func(f *fixture) domain.Identity { return f.user }, nil},
		{"admin may modify", func(f *fixture) domain.Identity { return f.admin }, nil},
		{"other user is forbidden", func(f *fixture) domain.Identity { return f.other }, domain.ErrForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			f := newFixture(t)
			svc, _ := newReviewService(t, f, nil)

			review, err := svc.Create(ctx, f.user, &domain.Review{Content: "ok", Rating: 3, PlaceID: f.place.ID})
			require.NoError(t, err)

			rating := 4
			_, err = svc.Update(ctx, tt.caller(f), review.ID, domain.ReviewPatch{Rating: &rating})
			deleteErr := svc.Delete(ctx, tt.caller(f), review.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrNotOwned)
				assert.ErrorIs(t, deleteErr, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, deleteErr)
		})
	}
}

func TestReviewService_UpdateMissing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc, _ := newReviewService(t, f, nil)

	_, err := svc.Update(context.Background(), f.admin, 999, domain.ReviewPatch{})
	assert.ErrorIs(t, err, store.ErrReviewNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), f.admin, 999), store.ErrNotFound)
}

func TestReviewService_UpdateMovingPlaceInvalidatesBoth(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	second := &domain.Place{Name: "Louvre"}
	require.NoError(t, f.mem.PlaceStore().Create(ctx, second))
	cache := mocks.NewMockRatingCache()
	svc, _ := newReviewService(t, f, cache)

	review, err := svc.Create(ctx, f.user, &domain.Review{Content: "ok", Rating: 3, PlaceID: f.place.ID})
	require.NoError(t, err)

	_, err = svc.Update(ctx, f.user, review.ID, domain.ReviewPatch{PlaceID: &second.ID})
	require.NoError(t, err)
	assert.Equal(t, []domain.ID{f.place.ID, f.place.ID, second.ID}, cache.Invalidated)
}

func TestReviewService_AverageRating(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	cache := mocks.NewMockRatingCache()
	svc, reviews := newReviewService(t, f, cache)

	empty, err := svc.AverageRating(ctx, f.place.ID)
	require.NoError(t, err)
	assert.Nil(t, empty.Average)
	assert.Zero(t, empty.Count)

	for _, r := range []int{5, 4} {
		_, err := svc.Create(ctx, f.user, &domain.Review{Content: "x", Rating: r, PlaceID: f.place.ID})
		require.NoError(t, err)
	}

	summary, err := svc.AverageRating(ctx, f.place.ID)
	require.NoError(t, err)
	require.NotNil(t, summary.Average)
	assert.InDelta(t, 4.5, *summary.Average, 1e-9)
	assert.Equal(t, int64(2), summary.Count)

	// Served from cache the second time.
	calls := reviews.RatingSummaryCalls
	_, err = svc.AverageRating(ctx, f.place.ID)
	require.NoError(t, err)
	assert.Equal(t, calls, reviews.RatingSummaryCalls)
	assert.Equal(t, 1, cache.Hits)
}

func TestReviewService_AverageRatingCacheFailureFallsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	cache := &mockRatingCache{}
	cacheErr := errors.New("connection refused")
	cache.On("GetRating", mock.Anything, f.place.ID).Return(domain.RatingSummary{}, false, cacheErr)
	cache.On("SetRating", mock.Anything, mock.MatchedBy(func(s domain.RatingSummary) bool {
		return s.PlaceID == f.place.ID && s.Count == 0
	})).Return(cacheErr)

	svc, _ := newReviewService(t, f, cache)
	summary, err := svc.AverageRating(ctx, f.place.ID)
	require.NoError(t, err)
	assert.Equal(t, f.place.ID, summary.PlaceID)
	cache.AssertExpectations(t)
}

func TestReviewService_AverageRatingCacheHitSkipsStore(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	avg := 3.0
	cached := domain.RatingSummary{PlaceID: f.place.ID, Average: &avg, Count: 7}

	cache := &mockRatingCache{}
	cache.On("GetRating", mock.Anything, f.place.ID).Return(cached, true, nil)

	svc, reviews := newReviewService(t, f, cache)
	got, err := svc.AverageRating(context.Background(), f.place.ID)
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	assert.Zero(t, reviews.RatingSummaryCalls)
	cache.AssertNotCalled(t, "SetRating", mock.Anything, mock.Anything)
}
