package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// OrderRepository defines order persistence. Orders are append-only.
type OrderRepository interface {
	// Create persists an order snapshot.
	Create(ctx context.Context, order *entity.Order) error

	// ListByCartLines returns the orders that snapshot the given lines.
	ListByCartLines(ctx context.Context, cartLineIDs []uint) ([]*entity.Order, error)
}
