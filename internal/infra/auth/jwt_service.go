package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"storefront/config"
	"storefront/internal/domain/service"
)

const sessionIssuer = "storefront"

// jwtSessionService signs session cookies as HS256 JWTs.
type jwtSessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTSessionService is the constructor for jwtSessionService.
func NewJWTSessionService(cfg *config.Config) (service.SessionTokenService, error) {
	if cfg.Session == nil || cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.Session.TTL <= 0 {
		return nil, errors.New("session ttl must be positive")
	}

	return &jwtSessionService{
		secret: []byte(cfg.Session.Secret),
		ttl:    cfg.Session.TTL,
		now:    time.Now,
	}, nil
}

// Issue signs a token carrying sessionKey that expires after TTL.
func (s *jwtSessionService) Issue(sessionKey string) (string, error) {
	now := s.now()
	claims := service.SessionClaims{
		SessionKey: sessionKey,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Parse validates signature, issuer and expiry and returns the claims.
func (s *jwtSessionService) Parse(tokenString string) (*service.SessionClaims, error) {
	claims := &service.SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid session token")
	}
	if claims.SessionKey == "" {
		return nil, errors.New("session token has no session key")
	}

	return claims, nil
}

// TTL returns how long an issued token stays valid.
func (s *jwtSessionService) TTL() time.Duration {
	return s.ttl
}
