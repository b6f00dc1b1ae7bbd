// Package errors defines the storefront's user-facing errors. Each carries
// the HTTP status and stable code the API renders it with.
package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError is an error the API can render as-is.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	// Details is optional context, rendered only on 4xx responses.
	Details() string
}

// BaseError is the AppError behind every predefined error in this package.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

func define(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{httpCode: httpCode, errorCode: errorCode, message: message}
}

func (e *BaseError) Error() string     { return e.message }
func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// Is matches on the error code, so a copy made by WithDetails still
// satisfies errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// WithDetails returns a copy of e carrying details.
func (e *BaseError) WithDetails(details string) *BaseError {
	clone := *e
	clone.details = details

	return &clone
}

// Catalog.
var (
	ErrItemNotFound      = define(http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found")
	ErrCategoryNotFound  = define(http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
	ErrBrandNotFound     = define(http.StatusNotFound, "BRAND_NOT_FOUND", "Brand not found")
	ErrColorNotFound     = define(http.StatusNotFound, "COLOR_NOT_FOUND", "Color not found")
	ErrStockUnitNotFound = define(http.StatusNotFound, "STOCK_UNIT_NOT_FOUND", "Stock unit not found for this item")
	ErrStockUnitExists   = define(http.StatusConflict, "STOCK_UNIT_EXISTS", "This item already has stock for that color")
	ErrInvalidItem       = define(http.StatusBadRequest, "INVALID_ITEM", "Item data is invalid")
	ErrOutOfStock        = define(http.StatusConflict, "OUT_OF_STOCK", "This item is out of stock")
	ErrInsufficientStock = define(http.StatusConflict, "INSUFFICIENT_STOCK", "Not enough stock to complete the order")
)

// Reviews.
var (
	ErrDuplicateReview = define(http.StatusConflict, "DUPLICATE_REVIEW", "You have already reviewed this item")
	ErrInvalidRating   = define(http.StatusBadRequest, "INVALID_RATING", "Rating must be a whole number from 1 to 5")
)

// Cart and wishlist.
var (
	ErrCartLineNotFound = define(http.StatusNotFound, "CART_LINE_NOT_FOUND", "Cart line not found")
	ErrLineOrdered      = define(http.StatusConflict, "LINE_ORDERED", "This cart line has already been ordered")
	ErrInvalidQuantity  = define(http.StatusBadRequest, "INVALID_QUANTITY", "Quantity must be at least 1")
)

var (
	ErrValidationFailed = define(http.StatusBadRequest, "VALIDATION_FAILED", "Input validation failed")
	ErrUnauthorized     = define(http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid API key")
	ErrNotFound         = define(http.StatusNotFound, "NOT_FOUND", "Resource not found")
)

// DatabaseExecuteError is a failed write the caller cannot fix. It renders
// as 500 and unwraps to the driver error.
type DatabaseExecuteError struct {
	err     error
	details string
}

func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{err: err, details: details}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error     { return e.err }
func (e *DatabaseExecuteError) HTTPCode() int     { return http.StatusInternalServerError }
func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }
func (e *DatabaseExecuteError) Message() string   { return "Database execution failed" }
func (e *DatabaseExecuteError) Details() string   { return e.details }
