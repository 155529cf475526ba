package mocks

import (
	"strings"
	"sync"

	"github.com/travelinfo/travel-api/internal/service/auth"
)

const plainHashPrefix = "plain:"

// MockPasswordHasher implements auth.PasswordHasher and auth.PasswordVerifier
// with a reversible prefix instead of bcrypt, keeping tests fast.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	mu           sync.Mutex
	HashCalls    int
	CompareCalls int
	// CompareCalledWith holds the hashes passed to Compare, in order.
	CompareCalledWith []string
}

var (
	_ auth.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*MockPasswordHasher)(nil)
)

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.mu.Lock()
	m.HashCalls++
	m.mu.Unlock()
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return plainHashPrefix + password, nil
}

func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.CompareCalls++
	m.CompareCalledWith = append(m.CompareCalledWith, hashedPassword)
	m.mu.Unlock()
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if !strings.HasPrefix(hashedPassword, plainHashPrefix) ||
		strings.TrimPrefix(hashedPassword, plainHashPrefix) != password {
		return auth.ErrPasswordMismatch
	}
	return nil
}
