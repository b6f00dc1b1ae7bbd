package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho(buf *bytes.Buffer, debug bool) *echo.Echo {
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg, "/health").Handle)
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, deliverycontext.GetRequestIDFromContext(c.Request().Context()))
	})

	return e
}

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{name: "reuses well-formed header", header: "abc-123", reuse: true},
		{name: "generates when missing", header: ""},
		{name: "replaces header with whitespace", header: "abc\n{\"forged\":true}"},
		{name: "replaces oversized header", header: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho(&bytes.Buffer{}, false)
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			got := rec.Header().Get(deliverycontext.HeaderXRequestID)
			require.NotEmpty(t, got)
			assert.Equal(t, got, rec.Body.String())
			if tt.reuse {
				assert.Equal(t, tt.header, got)
			} else {
				assert.NotEqual(t, tt.header, got)
			}
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	t.Run("logs with request id when debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		e := newEcho(buf, true)
		req := httptest.NewRequest(http.MethodGet, "/ping?x=1", nil)
		req.Header.Set(deliverycontext.HeaderXRequestID, "req-7")

		e.ServeHTTP(httptest.NewRecorder(), req)

		out := buf.String()
		assert.Contains(t, out, `"request_id":"req-7"`)
		assert.Contains(t, out, `"query":"x=1"`)
		assert.Contains(t, out, `"status":200`)
	})

	t.Run("skips health", func(t *testing.T) {
		buf := &bytes.Buffer{}
		e := newEcho(buf, true)

		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Empty(t, buf.String())
	})

	t.Run("silent without debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		e := newEcho(buf, false)

		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Empty(t, buf.String())
	})
}
