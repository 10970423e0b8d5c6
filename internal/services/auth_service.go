package services

import (
	"crypto/subtle"
	"errors"
)

var (
	// ErrNotConfigured is returned when no shared secret is set server-side.
	ErrNotConfigured = errors.New("auth password not configured")
	// ErrInvalidPassword is returned for a missing or mismatched password.
	ErrInvalidPassword = errors.New("invalid password")
)

// AuthService checks the shared password of the action endpoint
type AuthService struct {
	password []byte
}

// NewAuthService creates an auth service for the given shared secret.
// An empty secret leaves the service unconfigured.
func NewAuthService(password string) *AuthService {
	return &AuthService{password: []byte(password)}
}

// Configured reports whether a shared secret is set
func (s *AuthService) Configured() bool {
	return len(s.password) > 0
}

// Verify compares the supplied password with the shared secret in constant time
func (s *AuthService) Verify(password string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if password == "" {
		return ErrInvalidPassword
	}
	if subtle.ConstantTimeCompare([]byte(password), s.password) != 1 {
		return ErrInvalidPassword
	}
	return nil
}
