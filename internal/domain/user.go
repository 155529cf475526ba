package domain

import (
	"errors"
	"strings"
	"time"
)

// Password length bounds. The upper bound is bcrypt's input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// ErrEmptyHashedPassword is returned when a user is stored without a hash.
var ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")

// User is a registered account. The plaintext password never reaches this
// type; only the bcrypt hash is kept.
type User struct {
	ID             ID        `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewUser builds a user from an already hashed password.
func NewUser(email, hashedPassword string, role Role) (*User, error) {
	if role == "" {
		role = RoleUser
	}
	u := &User{
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		Role:           role,
		CreatedAt:      time.Now().UTC(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the persisted fields of the user.
func (u *User) Validate() error {
	if err := ValidateVar("email", u.Email, "required,email"); err != nil {
		return err
	}
	if !u.Role.Valid() {
		return NewValidationError("role", "role must be one of: USER, ADMIN", nil)
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// Identity returns the caller identity of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

// ValidateCredentials checks a registration email/password pair before the
// password is hashed.
func ValidateCredentials(email, password string) error {
	if err := ValidateVar("email", email, "required,email"); err != nil {
		return err
	}
	if len(password) < MinPasswordLength {
		return NewValidationError("password", "password must be at least 8 characters", nil)
	}
	if len(password) > MaxPasswordLength {
		return NewValidationError("password", "password must be at most 72 characters", nil)
	}
	return nil
}

// NormalizeEmail lower-cases and trims an address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
