package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrCartLineNotFound is returned when a cart line does not exist.
var ErrCartLineNotFound = errors.New("cart line not found")

// CartRepository defines cart line persistence. Lines are keyed by session.
type CartRepository interface {
	// UpsertLine adds quantity to the session's active line for the stock unit,
	// creating the line if needed, in a single statement.
	UpsertLine(ctx context.Context, sessionKey string, stockUnitID uint, quantity int) (*entity.CartLine, error)

	// FindLineByID retrieves a line with its stock unit, item and color.
	FindLineByID(ctx context.Context, id uint) (*entity.CartLine, error)

	// ListActiveLines returns the session's non-ordered lines with stock unit, item and color, oldest first.
	ListActiveLines(ctx context.Context, sessionKey string) ([]*entity.CartLine, error)

	// AdjustQuantity adds delta to a non-ordered line. When minResult is set the update
	// only applies if the new quantity stays >= *minResult. It reports whether a row changed.
	AdjustQuantity(ctx context.Context, id uint, delta int, minResult *int) (bool, error)

	// DeleteActiveLine removes a non-ordered line and reports whether a row was deleted.
	DeleteActiveLine(ctx context.Context, id uint) (bool, error)

	// MarkOrdered flags a non-ordered line as ordered and reports whether a row changed.
	MarkOrdered(ctx context.Context, id uint) (bool, error)
}

// WishlistRepository defines wishlist line persistence.
type WishlistRepository interface {
	// Create inserts a new wishlist line; duplicates are allowed.
	Create(ctx context.Context, line *entity.WishlistLine) error

	// ListBySession returns the session's wishlist lines with stock unit, item and color.
	ListBySession(ctx context.Context, sessionKey string) ([]*entity.WishlistLine, error)
}
