package mocks

import (
	"context"
	"sort"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/store"
)

// MockReviewStore implements store.ReviewStore for testing
type MockReviewStore struct {
	mem *Memory

	ListFn          func(ctx context.Context) ([]domain.Review, error)
	GetByIDFn       func(ctx context.Context, id domain.ID) (*domain.Review, error)
	CreateFn        func(ctx context.Context, review *domain.Review) error
	UpdateFn        func(ctx context.Context, id domain.ID, patch domain.ReviewPatch) (*domain.Review, error)
	DeleteFn        func(ctx context.Context, id domain.ID) error
	ListByPlaceFn   func(ctx context.Context, placeID domain.ID) ([]domain.Review, error)
	RatingSummaryFn func(ctx context.Context, placeID domain.ID) (domain.RatingSummary, error)

	// RatingSummaryCalls counts RatingSummary invocations.
	RatingSummaryCalls int
}

var _ store.ReviewStore = (*MockReviewStore)(nil)

func (s *MockReviewStore) List(ctx context.Context) ([]domain.Review, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	return sortedByID(s.mem.reviews, nil), nil
}

func (s *MockReviewStore) GetByID(ctx context.Context, id domain.ID) (*domain.Review, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	r, ok := s.mem.reviews[id]
	if !ok {
		return nil, store.ErrReviewNotFound
	}
	return &r, nil
}

func (s *MockReviewStore) Create(ctx context.Context, review *domain.Review) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, review)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	if err := s.checkRefs(review.PlaceID, review.UserID); err != nil {
		return err
	}
	now := s.mem.Now()
	review.ID = s.mem.allocID()
	review.CreatedAt, review.UpdatedAt = now, now
	s.mem.reviews[review.ID] = *review
	return nil
}

func (s *MockReviewStore) Update(ctx context.Context, id domain.ID, patch domain.ReviewPatch) (*domain.Review, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	r, ok := s.mem.reviews[id]
	if !ok {
		return nil, store.ErrReviewNotFound
	}
	if patch.IsEmpty() {
		return &r, nil
	}
	if patch.PlaceID != nil {
		if err := s.checkRefs(*patch.PlaceID, r.UserID); err != nil {
			return nil, err
		}
	}
	set(&r.Content, patch.Content)
	set(&r.Rating, patch.Rating)
	set(&r.PlaceID, patch.PlaceID)
	setPtr(&r.Author, patch.Author)
	r.UpdatedAt = s.mem.Now()
	s.mem.reviews[id] = r
	return &r, nil
}

func (s *MockReviewStore) Delete(ctx context.Context, id domain.ID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	if _, ok := s.mem.reviews[id]; !ok {
		return store.ErrReviewNotFound
	}
	delete(s.mem.reviews, id)
	return nil
}

// ListByPlace returns the newest reviews first.
func (s *MockReviewStore) ListByPlace(ctx context.Context, placeID domain.ID) ([]domain.Review, error) {
	if s.ListByPlaceFn != nil {
		return s.ListByPlaceFn(ctx, placeID)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	out := sortedByID(s.mem.reviews, func(r domain.Review) bool { return r.PlaceID == placeID })
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MockReviewStore) RatingSummary(ctx context.Context, placeID domain.ID) (domain.RatingSummary, error) {
	s.mem.mu.Lock()
	s.RatingSummaryCalls++
	s.mem.mu.Unlock()
	if s.RatingSummaryFn != nil {
		return s.RatingSummaryFn(ctx, placeID)
	}

	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	summary := domain.RatingSummary{PlaceID: placeID}
	var total int
	for _, r := range s.mem.reviews {
		if r.PlaceID == placeID {
			total += r.Rating
			summary.Count++
		}
	}
	if summary.Count > 0 {
		avg := float64(total) / float64(summary.Count)
		summary.Average = &avg
	}
	return summary, nil
}

func (s *MockReviewStore) checkRefs(placeID, userID domain.ID) error {
	if _, ok := s.mem.places[placeID]; !ok {
		return &store.ConstraintError{
			Kind:       store.ConstraintForeignKey,
			Constraint: "reviews_place_id_fkey",
			Table:      "reviews",
			Column:     "place_id",
		}
	}
	if _, ok := s.mem.users[userID]; !ok {
		return &store.ConstraintError{
			Kind:       store.ConstraintForeignKey,
			Constraint: "reviews_user_id_fkey",
			Table:      "reviews",
			Column:     "user_id",
		}
	}
	return nil
}
