package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/mocks"
	"github.com/travelinfo/travel-api/internal/store"
)

func newPlaceService(t *testing.T, f *fixture, cache RatingCache) PlaceService {
	t.Helper()
	return NewPlaceService(f.mem.PlaceStore(), f.mem.TaxiStore(), f.mem.ReviewStore(), cache, testLogger(t))
}

func TestPlaceService_GetByIDIncludesRelations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	taxi := &domain.Taxi{Name: "Paris Taxi", Phone: "+33 1 23", IsAvailable: true}
	require.NoError(t, f.mem.TaxiStore().Create(ctx, taxi, []domain.ID{f.place.ID}))
	review := &domain.Review{Content: "Great", Rating: 5, PlaceID: f.place.ID, UserID: f.user.ID}
	require.NoError(t, f.mem.ReviewStore().Create(ctx, review))

	got, err := newPlaceService(t, f, nil).GetByID(ctx, f.place.ID)
	require.NoError(t, err)
	require.Len(t, got.Reviews, 1)
	require.Len(t, got.Taxis, 1)
	assert.Equal(t, review.ID, got.Reviews[0].ID)
	assert.Equal(t, taxi.ID, got.Taxis[0].ID)
}

func TestPlaceService_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newPlaceService(t, newFixture(t), nil)

	_, err := svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, store.ErrPlaceNotFound)

	_, err = svc.Update(ctx, 999, domain.PlacePatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 999), store.ErrNotFound)
}

func TestPlaceService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newPlaceService(t, newFixture(t), nil)

	created, err := svc.Create(ctx, &domain.Place{Name: "Louvre", Latitude: 48.86, Longitude: 2.33})
	require.NoError(t, err)
	assert.Positive(t, int64(created.ID))

	_, err = svc.Create(ctx, &domain.Place{Name: "", Latitude: 100})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlaceService_UpdateEmptyPatchReturnsCurrent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	got, err := newPlaceService(t, f, nil).Update(context.Background(), f.place.ID, domain.PlacePatch{})
	require.NoError(t, err)
	assert.Equal(t, f.place.Name, got.Name)
}

func TestPlaceService_DeleteCascadesAndInvalidates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	cache := mocks.NewMockRatingCache()

	review := &domain.Review{Content: "Nice", Rating: 4, PlaceID: f.place.ID, UserID: f.user.ID}
	require.NoError(t, f.mem.ReviewStore().Create(ctx, review))

	require.NoError(t, newPlaceService(t, f, cache).Delete(ctx, f.place.ID))

	_, err := f.mem.ReviewStore().GetByID(ctx, review.ID)
	assert.ErrorIs(t, err, store.ErrReviewNotFound)
	assert.Equal(t, []domain.ID{f.place.ID}, cache.Invalidated)
}

func TestPlaceService_DeleteSurvivesCacheFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	cache := mocks.NewMockRatingCache()
	cache.Err = errors.New("redis down")

	assert.NoError(t, newPlaceService(t, f, cache).Delete(context.Background(), f.place.ID))
}

func TestPlaceService_Search(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	svc := newPlaceService(t, f, nil)
	_, err := svc.Create(ctx, &domain.Place{Name: "Louvre Museum", Category: strPtr("museum")})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter domain.PlaceFilter
		want   []string
	}{
		{"case insensitive", domain.PlaceFilter{Query: "eiffel"}, []string{"Eiffel Tower"}},
		{"empty query matches all", domain.PlaceFilter{}, []string{"Eiffel Tower", "Louvre Museum"}},
		{"category filter", domain.PlaceFilter{Query: "", Category: strPtr("museum")}, []string{"Louvre Museum"}},
		{"no match", domain.PlaceFilter{Query: "zzz"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.filter)
			require.NoError(t, err)
			var names []string
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
