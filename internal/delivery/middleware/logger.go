// Package middleware holds the echo middleware shared by the API and the notifier.
package middleware

import (
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware writes an access log line per request. It is a no-op
// unless env.debug is set.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
	quiet  map[string]bool
}

// NewLoggerMiddleware never logs requests for quietPaths, e.g. health probes.
func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config, quietPaths ...string) *LoggerMiddleware {
	quiet := make(map[string]bool, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = true
	}

	return &LoggerMiddleware{logger: logger, debug: cfg.Env.Debug, quiet: quiet}
}

func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug || m.quiet[c.Request().URL.Path] {
			return next(c)
		}

		start := time.Now()
		err := next(c)

		req, res := c.Request(), c.Response()
		attrs := []slog.Attr{
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", res.Status),
			slog.Duration("latency", time.Since(start)),
			slog.Int64("bytes_out", res.Size),
			slog.String("remote_ip", c.RealIP()),
		}
		if req.URL.RawQuery != "" {
			attrs = append(attrs, slog.String("query", req.URL.RawQuery))
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}

		deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).
			LogAttrs(req.Context(), accessLevel(res.Status), "http request", attrs...)

		return err
	}
}

func accessLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
