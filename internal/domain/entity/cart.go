package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one stock unit in a session's cart. Immutable once Ordered.
type CartLine struct {
	ID          uint       `json:"id"`
	StockUnitID uint       `json:"stock_unit_id"`
	Quantity    int        `json:"quantity"`
	SessionKey  string     `json:"-"`
	Ordered     bool       `json:"ordered"`
	StockUnit   *StockUnit `json:"stock_unit,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// WishlistLine is one stock unit saved for later by a session.
type WishlistLine struct {
	ID          uint       `json:"id"`
	StockUnitID uint       `json:"stock_unit_id"`
	Quantity    int        `json:"quantity"`
	SessionKey  string     `json:"-"`
	StockUnit   *StockUnit `json:"stock_unit,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UnitPrice reads the current price of the referenced item.
// It is zero when the stock unit was not loaded with its item.
func (l *CartLine) UnitPrice() decimal.Decimal {
	return stockUnitPrice(l.StockUnit)
}

// LineTotal is UnitPrice times Quantity.
func (l *CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ItemName is the name of the referenced item, if loaded.
func (l *CartLine) ItemName() string {
	if l.StockUnit == nil || l.StockUnit.Item == nil {
		return ""
	}

	return l.StockUnit.Item.Name
}

// UnitPrice reads the current price of the referenced item.
func (l *WishlistLine) UnitPrice() decimal.Decimal {
	return stockUnitPrice(l.StockUnit)
}

// LineTotal is UnitPrice times Quantity.
func (l *WishlistLine) LineTotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotal sums the line totals.
func CartTotal(lines []*CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}

	return total
}

func stockUnitPrice(unit *StockUnit) decimal.Decimal {
	if unit == nil || unit.Item == nil {
		return decimal.Zero
	}

	return unit.Item.UnitPrice()
}
