package middleware

import (
	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// HeaderAPIKey carries the admin API key.
const HeaderAPIKey = "X-API-Key"

// AdminAuthMiddleware guards catalog management with a bcrypt-hashed API key.
type AdminAuthMiddleware struct {
	hasher  service.KeyHasher
	keyHash string
}

// NewAdminAuthMiddleware is the constructor for AdminAuthMiddleware.
// An empty keyHash locks the admin API.
func NewAdminAuthMiddleware(hasher service.KeyHasher, keyHash string) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{hasher: hasher, keyHash: keyHash}
}

// Authenticate rejects requests without a matching X-API-Key header.
func (m *AdminAuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Header.Get(HeaderAPIKey)
		if key == "" || m.keyHash == "" || !m.hasher.Check(key, m.keyHash) {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), domainerrors.ErrUnauthorized.Message())
		}

		return next(c)
	}
}

