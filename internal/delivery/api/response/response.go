// Package response renders the JSON envelopes every API route answers with.
package response

import (
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Data    any       `json:"data"`
	Message string    `json:"message,omitempty"`
	Meta    *MetaInfo `json:"meta"`
}

type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo.Code is stable and machine readable, e.g. "OUT_OF_STOCK".
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type MetaInfo struct {
	RequestID string `json:"request_id"`
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

func Success(c echo.Context, status int, data any) error {
	return c.JSON(status, SuccessResponse{Data: data, Meta: meta(c)})
}

// Empty answers 200 with null data, for requests that were valid but
// changed nothing, such as adding an item that is out of stock.
func Empty(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, SuccessResponse{Message: message, Meta: meta(c)})
}

// Error writes an error envelope. Details never leave the server on 5xx
// or on auth failures.
func Error(c echo.Context, status int, code, message string, details any) error {
	if status >= http.StatusInternalServerError || status == http.StatusUnauthorized || status == http.StatusForbidden {
		details = nil
	}

	return c.JSON(status, ErrorResponse{
		Error: &ErrorInfo{Code: code, Message: message, Details: details},
		Meta:  meta(c),
	})
}

func BadRequest(c echo.Context, code, message string) error {
	return Error(c, http.StatusBadRequest, code, message, nil)
}

func Unauthorized(c echo.Context, code, message string) error {
	return Error(c, http.StatusUnauthorized, code, message, nil)
}

func InternalServerError(c echo.Context, code, message string) error {
	return Error(c, http.StatusInternalServerError, code, message, nil)
}

// HandleAppError renders a domain error with its own status and code.
// Other errors are returned for the HTTP error handler to log as 500.
func HandleAppError(c echo.Context, err error) error {
	appErr, ok := errors.AsType[domainerrors.AppError](err)
	if !ok {
		return errors.WithStack(err)
	}

	var details any
	if d := appErr.Details(); d != "" {
		details = d
	}

	return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)
}
