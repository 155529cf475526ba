package mocks

import (
	"context"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	mem *Memory

	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id domain.ID) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create enforces case-insensitive email uniqueness.
func (s *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, user)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	email := domain.NormalizeEmail(user.Email)
	for _, u := range s.mem.users {
		if u.Email == email {
			return store.ErrEmailExists
		}
	}
	user.ID = s.mem.allocID()
	user.Email = email
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.mem.Now()
	}
	s.mem.users[user.ID] = *user
	return nil
}

func (s *MockUserStore) GetByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	u, ok := s.mem.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (s *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.GetByEmailFn != nil {
		return s.GetByEmailFn(ctx, email)
	}
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	email = domain.NormalizeEmail(email)
	for _, u := range s.mem.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// DeleteUser removes a user directly, for tests of vanished accounts.
func (s *MockUserStore) DeleteUser(id domain.ID) {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	delete(s.mem.users, id)
}
