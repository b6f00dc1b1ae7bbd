// Package context carries request-scoped values between middleware, handlers and usecases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type key string

const (
	keyRequestID  key = "request_id"
	keyLogger     key = "logger"
	keySessionKey key = "session_key"

	HeaderXRequestID = "X-Request-Id"
)

func from[T any](ctx context.Context, k key) T {
	v, _ := ctx.Value(k).(T)

	return v
}

// GetRequestID returns the id set by the request id middleware. Outside
// that middleware it returns a fresh id, never "".
func GetRequestID(c echo.Context) string {
	if id, _ := c.Get(string(keyRequestID)).(string); id != "" {
		return id
	}

	return uuid.NewString()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(keyRequestID), requestID)
}

func GetRequestIDFromContext(ctx context.Context) string {
	return from[string](ctx, keyRequestID)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// GetLoggerOrDefault prefers the logger tagged with the request id.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := from[*slog.Logger](ctx, keyLogger); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetSessionKey reports false on routes without the session middleware.
func GetSessionKey(c echo.Context) (string, bool) {
	sessionKey, _ := c.Get(string(keySessionKey)).(string)

	return sessionKey, sessionKey != ""
}

// SetSessionKey stores the key on the echo context and on the request
// context, where usecases read it.
func SetSessionKey(c echo.Context, sessionKey string) {
	c.Set(string(keySessionKey), sessionKey)
	ctx := context.WithValue(c.Request().Context(), keySessionKey, sessionKey)
	c.SetRequest(c.Request().WithContext(ctx))
}

func GetSessionKeyFromContext(ctx context.Context) string {
	return from[string](ctx, keySessionKey)
}
