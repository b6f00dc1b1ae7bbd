package middleware

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware renders errors that handlers return instead of writing.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler. Only 5xx errors
// are logged, and their cause never reaches the client.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, message, details := http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error, please try again later", any(nil)

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		status, code, message = appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message()
		if d := appErr.Details(); d != "" {
			details = d
		}
	} else if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		status, code, message = httpErr.Code, "HTTP_ERROR", http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if status >= http.StatusInternalServerError {
		req := c.Request()
		deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).Error("request failed",
			slog.Any("error", err),
			slog.String("code", code),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
		)
	}

	_ = response.Error(c, status, code, message, details)
}
