package model

import "time"

// ActiveCartLineWhere is the predicate of the partial unique index on cart lines.
// Upserts must use the same text as their conflict target.
const ActiveCartLineWhere = "ordered = false"

// CartLineModel is the GORM-specific struct for the 'cart_lines' table.
// A session has at most one non-ordered line per stock unit.
type CartLineModel struct {
	ID          uint            `gorm:"primaryKey"`
	StockUnitID uint            `gorm:"not null;uniqueIndex:idx_cart_lines_active_unit,where:ordered = false"`
	StockUnit   *StockUnitModel `gorm:"constraint:OnDelete:CASCADE;"`
	Quantity    int             `gorm:"not null"`
	SessionKey  string          `gorm:"size:64;not null;index;uniqueIndex:idx_cart_lines_active_unit,where:ordered = false"`
	Ordered     bool            `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}

// WishlistLineModel is the GORM-specific struct for the 'wishlist_lines' table.
type WishlistLineModel struct {
	ID          uint            `gorm:"primaryKey"`
	StockUnitID uint            `gorm:"not null;index"`
	StockUnit   *StockUnitModel `gorm:"constraint:OnDelete:CASCADE;"`
	Quantity    int             `gorm:"not null"`
	SessionKey  string          `gorm:"size:64;not null;index"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (WishlistLineModel) TableName() string {
	return "wishlist_lines"
}
