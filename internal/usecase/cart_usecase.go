package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// AddLineInput identifies what a session puts in its cart or wishlist.
type AddLineInput struct {
	SessionKey  string
	ItemID      uint
	StockUnitID *uint // nil picks the first unit with stock
	Quantity    int
}

// CartOutput lists a session's active cart lines.
type CartOutput struct {
	Lines []*entity.CartLine `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

// WishlistOutput lists a session's wishlist lines.
type WishlistOutput struct {
	Lines []*entity.WishlistLine `json:"lines"`
	Total decimal.Decimal        `json:"total"`
}

// CartUsecase defines the session cart and wishlist operations.
type CartUsecase interface {
	// AddToCart merges quantity into the session's line for the resolved stock unit.
	AddToCart(ctx context.Context, input *AddLineInput) (*entity.CartLine, error)

	// AddToWishlist appends a wishlist line for the resolved stock unit.
	AddToWishlist(ctx context.Context, input *AddLineInput) (*entity.WishlistLine, error)

	// RemoveFromCart deletes one of the session's active lines.
	RemoveFromCart(ctx context.Context, sessionKey string, lineID uint) error

	// AdjustQuantity changes a line by delta. It returns nil when the line was removed.
	AdjustQuantity(ctx context.Context, sessionKey string, lineID uint, delta int) (*entity.CartLine, error)

	// ListCart returns the session's active lines and their total.
	ListCart(ctx context.Context, sessionKey string) (*CartOutput, error)

	// ListWishlist returns the session's wishlist lines and their total.
	ListWishlist(ctx context.Context, sessionKey string) (*WishlistOutput, error)
}
