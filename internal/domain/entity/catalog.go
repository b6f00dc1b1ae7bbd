// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// newItemWindowDays is how many calendar days an item counts as new.
const newItemWindowDays = 14

// Category groups items on the storefront.
type Category struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	StockCount int64  `json:"stock_count"` // Sum of stock quantity over the category's items.
}

// Brand is the manufacturer of an item.
type Brand struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Image      *string `json:"image,omitempty"`
	StockCount int64   `json:"stock_count"`
}

// Color is a variant dimension referenced by stock units.
type Color struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	Code *string `json:"code,omitempty"`
}

// Item is a product listed in the catalog.
type Item struct {
	ID            uint             `json:"id"`
	CategoryID    uint             `json:"category_id"`
	BrandID       uint             `json:"brand_id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	Description   string           `json:"description,omitempty"`
	Details       string           `json:"details,omitempty"`
	MainImage     string           `json:"main_image"`
	DateAdded     time.Time        `json:"date_added"`
}

// ItemImage is an additional picture of an item.
type ItemImage struct {
	ID     uint   `json:"id"`
	ItemID uint   `json:"item_id"`
	Image  string `json:"image"`
}

// StockUnit is the quantity on hand for one (item, color) pair.
type StockUnit struct {
	ID       uint   `json:"id"`
	ItemID   uint   `json:"item_id"`
	ColorID  uint   `json:"color_id"`
	Quantity int    `json:"quantity"`
	Color    *Color `json:"color,omitempty"`
	Item     *Item  `json:"item,omitempty"`
}

// UnitPrice is the price a customer pays right now: the discount price when set.
func (i *Item) UnitPrice() decimal.Decimal {
	if i.DiscountPrice != nil {
		return *i.DiscountPrice
	}

	return i.Price
}

// DiscountPercentage returns ceil((price-discount)/price*100).
// The boolean is false when the item has no discount or a non-positive price.
func (i *Item) DiscountPercentage() (int, bool) {
	if i.DiscountPrice == nil || !i.Price.IsPositive() {
		return 0, false
	}

	pct := i.Price.Sub(*i.DiscountPrice).Div(i.Price).Mul(decimal.NewFromInt(100)).Ceil()

	return int(pct.IntPart()), true
}

// IsNew reports whether the item was added less than 14 calendar days before now.
func (i *Item) IsNew(now time.Time) bool {
	return calendarDaysBetween(i.DateAdded, now) < newItemWindowDays
}

// Validate checks the price invariants enforced on catalog writes.
func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrItemNameRequired
	}
	// Prices are stored as numeric(10,2); a finer value would be rounded on
	// insert after these checks ran.
	if !fitsPriceScale(i.Price) || (i.DiscountPrice != nil && !fitsPriceScale(*i.DiscountPrice)) {
		return ErrItemPriceScale
	}
	if !i.Price.IsPositive() {
		return ErrItemPriceNotPositive
	}
	if i.DiscountPrice != nil && !i.DiscountPrice.LessThan(i.Price) {
		return ErrItemDiscountNotBelowPrice
	}

	return nil
}

// calendarDaysBetween counts whole days between the dates of from and to,
// evaluated in to's location.
func calendarDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.In(to.Location()).Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	return int(end.Sub(start).Hours() / 24)
}

// PriceScale is the number of decimal places a stored price keeps.
const PriceScale = 2

func fitsPriceScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(PriceScale))
}
