package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/service/auth"
	"github.com/travelinfo/travel-api/internal/store"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User *domain.User `json:"user"`
	auth.TokenPair
}

// RegisterInput carries the registration fields.
type RegisterInput struct {
	Email    string
	Password string
	Role     domain.Role
}

// UserService provides account registration and token issuance.
type UserService interface {
	// Register creates an account and signs the new user in. Creating an
	// ADMIN account requires an ADMIN caller.
	Register(ctx context.Context, caller domain.Caller, in RegisterInput) (*AuthResult, error)

	// Login checks credentials. Unknown email and wrong password both return
	// ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Refresh exchanges a refresh token for a new token pair. Every failure
	// matches domain.ErrUnauthenticated.
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)

	// Me returns the account behind the identity.
	Me(ctx context.Context, who domain.Identity) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users    store.UserStore
	jwt      auth.JWTService
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	jwt auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		users:    users,
		jwt:      jwt,
		hasher:   hasher,
		verifier: verifier,
		logger:   logger.With("component", "user_service"),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Register validates the credentials, hashes the password, stores the user
// and issues a token pair.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	caller domain.Caller,
	in RegisterInput,
) (*AuthResult, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, domain.NewValidationError("role", "role must be one of: USER, ADMIN", nil)
	}
	if role == domain.RoleAdmin {
		if who, ok := caller.(domain.Identity); !ok || !who.IsAdmin() {
			return nil, ErrAdminRequired
		}
	}

	if err := domain.ValidateCredentials(in.Email, in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user, err := domain.NewUser(in.Email, hash, role)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register an existing email", "email", user.Email)
		} else {
			s.logger.Error("failed to save user", "error", err, "email", user.Email)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.signIn(ctx, user)
}

// Login checks credentials and issues a token pair.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("failed to look up user by email", "error", err)
			return nil, fmt.Errorf("failed to log in: %w", err)
		}
		// Spend the same bcrypt time as for a known account.
		_ = s.verifier.Compare(s.dummyPasswordHash(), password)
		s.logger.Debug("login for unknown email")
		return nil, ErrInvalidCredentials
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("password comparison failed", "error", err, "user_id", user.ID)
		}
		return nil, ErrInvalidCredentials
	}

	s.logger.Debug("user logged in", "user_id", user.ID)
	return s.signIn(ctx, user)
}

// Refresh validates the refresh token, reloads the user and issues a new pair.
func (s *UserServiceImpl) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("refresh token for a deleted user", "user_id", claims.UserID)
			return nil, fmt.Errorf("%w: user no longer exists", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	pair, err := s.jwt.GenerateTokenPair(ctx, user.Identity())
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	return pair, nil
}

// Me returns the stored account of the identity.
func (s *UserServiceImpl) Me(ctx context.Context, who domain.Identity) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, who.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

func (s *UserServiceImpl) signIn(ctx context.Context, user *domain.User) (*AuthResult, error) {
	pair, err := s.jwt.GenerateTokenPair(ctx, user.Identity())
	if err != nil {
		s.logger.Error("failed to generate tokens", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to generate authentication tokens: %w", err)
	}
	return &AuthResult{User: user, TokenPair: *pair}, nil
}

// dummyPasswordHash returns a hash of a random-looking password, computed once.
func (s *UserServiceImpl) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("timing-equalizer-password")
		if err != nil {
			s.logger.Warn("failed to compute dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
