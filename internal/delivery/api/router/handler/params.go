package handler

import (
	"strconv"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
)

// pathID parses a positive numeric path parameter. Anything else is a 404,
// the same as an unmatched route.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, domainerrors.ErrNotFound
	}

	return uint(id), nil
}

// sessionKey returns the key attached by the session middleware.
func sessionKey(c echo.Context) (string, error) {
	key, ok := deliverycontext.GetSessionKey(c)
	if !ok {
		return "", errors.New("session middleware not installed")
	}

	return key, nil
}
