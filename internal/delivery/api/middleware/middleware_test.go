package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/infra/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSessionEcho(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{Session: &config.SessionConfig{Secret: "test-secret", TTL: time.Hour}}
	tokens, err := auth.NewJWTSessionService(cfg)
	require.NoError(t, err)

	e := echo.New()
	e.Use(NewSessionMiddleware(tokens, true, discardLogger()).Attach)
	e.GET("/whoami", func(c echo.Context) error {
		key, ok := deliverycontext.GetSessionKey(c)
		require.True(t, ok)
		assert.Equal(t, key, deliverycontext.GetSessionKeyFromContext(c.Request().Context()))

		return c.String(http.StatusOK, key)
	})

	return e
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			return cookie
		}
	}

	return nil
}

func TestSessionMiddleware(t *testing.T) {
	e := newSessionEcho(t)

	// First visit issues a cookie.
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	issued := sessionCookie(rec)
	require.NotNil(t, issued)
	assert.True(t, issued.HttpOnly)
	assert.True(t, issued.Secure)
	assert.Equal(t, 3600, issued.MaxAge)
	firstKey := rec.Body.String()
	require.NotEmpty(t, firstKey)

	t.Run("valid cookie is reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: issued.Value})
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, firstKey, rec.Body.String())
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("forged cookie is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: issued.Value + "x"})
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.NotEqual(t, firstKey, rec.Body.String())
		assert.NotNil(t, sessionCookie(rec))
	})
}

func TestAdminAuthMiddleware(t *testing.T) {
	hasher := auth.NewBcryptHasher()
	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		keyHash  string
		header   string
		wantCode int
	}{
		{name: "matching key", keyHash: hash, header: "s3cret", wantCode: http.StatusNoContent},
		{name: "wrong key", keyHash: hash, header: "guess", wantCode: http.StatusUnauthorized},
		{name: "missing key", keyHash: hash, wantCode: http.StatusUnauthorized},
		{name: "admin locked", keyHash: "", header: "s3cret", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(NewAdminAuthMiddleware(hasher, tt.keyHash).Authenticate)
			e.POST("/admin/colors", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

			req := httptest.NewRequest(http.MethodPost, "/admin/colors", nil)
			if tt.header != "" {
				req.Header.Set(HeaderAPIKey, tt.header)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestErrorMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails any
	}{
		{
			name:       "app error",
			err:        errors.Wrap(domainerrors.ErrItemNotFound, "load item"),
			wantStatus: http.StatusNotFound,
			wantCode:   "ITEM_NOT_FOUND",
		},
		{
			name:        "app error with details",
			err:         domainerrors.ErrValidationFailed.WithDetails("email is required"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantDetails: "email is required",
		},
		{
			name:       "echo error",
			err:        echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"),
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:       "unknown error",
			err:        errors.New("db exploded"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.HTTPErrorHandler = NewErrorMiddleware(discardLogger()).HandleHTTPError
			e.GET("/boom", func(echo.Context) error { return tt.err })
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantDetails, body.Error.Details)
			assert.NotContains(t, rec.Body.String(), "db exploded")
		})
	}
}
