package entity

import "errors"

// Validation failures raised by entity invariants.
var (
	ErrItemNameRequired          = errors.New("item name is required")
	ErrItemPriceNotPositive      = errors.New("item price must be greater than zero")
	ErrItemDiscountNotBelowPrice = errors.New("discount price must be lower than price")
	ErrItemPriceScale            = errors.New("prices allow at most 2 decimal places")
)
