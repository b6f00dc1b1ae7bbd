// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain/service"
)

// bcryptHasher implements KeyHasher with bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
func NewBcryptHasher() service.KeyHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash generates a salted bcrypt hash of secret.
func (h *bcryptHasher) Hash(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)

	return string(bytes), err
}

// Check compares a plaintext secret with a bcrypt hash. An empty hash never matches.
func (h *bcryptHasher) Check(secret, hash string) bool {
	if hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
