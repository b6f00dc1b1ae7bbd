package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie holding the signed anonymous session.
const SessionCookieName = "storefront_session"

// SessionMiddleware gives every visitor an anonymous session key. A valid
// cookie is reused; a missing, expired or forged one is replaced.
type SessionMiddleware struct {
	tokens service.SessionTokenService
	secure bool
	logger *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(tokens service.SessionTokenService, secure bool, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, secure: secure, logger: logger}
}

// Attach stores the session key on the request before calling next.
func (m *SessionMiddleware) Attach(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sessionKey, ok := m.fromCookie(c); ok {
			deliverycontext.SetSessionKey(c, sessionKey)

			return next(c)
		}

		sessionKey := uuid.New().String()
		token, err := m.tokens.Issue(sessionKey)
		if err != nil {
			return errors.Wrap(err, "issue session token")
		}

		c.SetCookie(&http.Cookie{
			Name:     SessionCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(m.tokens.TTL().Seconds()),
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})
		deliverycontext.SetSessionKey(c, sessionKey)

		return next(c)
	}
}

func (m *SessionMiddleware) fromCookie(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims, err := m.tokens.Parse(cookie.Value)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
			Debug("Replacing invalid session cookie", slog.Any("error", err))

		return "", false
	}

	return claims.SessionKey, true
}
