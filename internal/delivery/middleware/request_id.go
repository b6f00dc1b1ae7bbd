package middleware

import (
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxRequestIDLength = 128

// RequestIDMiddleware tags every request, its response and its logger with one id.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{logger: logger}
}

// Process trusts an incoming X-Request-Id only when it is short printable
// ASCII, since the id is copied into every log line.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if !printableASCII(id, maxRequestIDLength) {
			id = uuid.NewString()
		}

		deliverycontext.SetRequestID(c, id)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, id)

		ctx := deliverycontext.WithRequestID(c.Request().Context(), id)
		ctx = deliverycontext.WithLogger(ctx, m.logger.With(slog.String("request_id", id)))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func printableASCII(s string, maxLen int) bool {
	if s == "" || len(s) > maxLen {
		return false
	}
	for _, b := range []byte(s) {
		if b <= ' ' || b > '~' {
			return false
		}
	}

	return true
}
