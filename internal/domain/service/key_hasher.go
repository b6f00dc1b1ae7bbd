// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// KeyHasher defines the interface for hashing and verifying secrets such as the admin API key.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type KeyHasher interface {
	// Hash generates a salted hash from a plaintext secret.
	Hash(secret string) (string, error)

	// Check compares a plaintext secret with a hash to see if they match.
	Check(secret, hash string) bool
}
