package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims defines the claims stored in the session cookie.
type SessionClaims struct {
	SessionKey string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionTokenService signs and verifies anonymous session cookies.
type SessionTokenService interface {
	// Issue signs a token for the session key.
	Issue(sessionKey string) (string, error)

	// Parse validates a token and returns its claims.
	Parse(token string) (*SessionClaims, error)

	// TTL returns how long an issued token stays valid.
	TTL() time.Duration
}
