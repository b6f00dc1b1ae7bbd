package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// PlaceOrderOutput is the result of a checkout.
type PlaceOrderOutput struct {
	Orders   []*entity.Order `json:"orders"`
	Messages []string        `json:"messages"`
}

// OrderUsecase defines checkout.
type OrderUsecase interface {
	// PlaceOrder converts the session's active lines into orders, decrements stock
	// and queues the operator notification. An empty cart yields no orders.
	PlaceOrder(ctx context.Context, sessionKey string, contact entity.Contact) (*PlaceOrderOutput, error)
}
