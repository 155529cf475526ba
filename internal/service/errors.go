package service

import (
	"errors"
	"fmt"

	"github.com/travelinfo/travel-api/internal/domain"
)

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is to check for them; the API layer maps them to RPC codes.
var (
	// ErrNotOwned indicates a review is owned by a different user than the caller.
	// It matches domain.ErrForbidden.
	ErrNotOwned = fmt.Errorf("%w: resource is owned by another user", domain.ErrForbidden)

	// ErrInvalidCredentials is returned by Login for an unknown email and for a
	// wrong password alike, so the response does not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAdminRequired is returned when a non-admin caller tries to register
	// an ADMIN account. It matches domain.ErrForbidden.
	ErrAdminRequired = fmt.Errorf("%w: only an admin can create an admin account", domain.ErrForbidden)
)
