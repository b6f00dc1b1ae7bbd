package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryModel is the GORM-specific struct for the 'categories' table.
type CategoryModel struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:100;not null"`
	Image string `gorm:"size:255"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// BrandModel is the GORM-specific struct for the 'brands' table.
type BrandModel struct {
	ID    uint    `gorm:"primaryKey"`
	Name  string  `gorm:"size:100;not null"`
	Image *string `gorm:"size:255"`
}

// TableName explicitly sets the table name for GORM.
func (BrandModel) TableName() string {
	return "brands"
}

// ColorModel is the GORM-specific struct for the 'colors' table.
type ColorModel struct {
	ID   uint    `gorm:"primaryKey"`
	Name string  `gorm:"size:50;not null"`
	Code *string `gorm:"size:20"`
}

// TableName explicitly sets the table name for GORM.
func (ColorModel) TableName() string {
	return "colors"
}

// ItemModel is the GORM-specific struct for the 'items' table.
// Deleting its category or brand deletes the item.
type ItemModel struct {
	ID            uint             `gorm:"primaryKey"`
	CategoryID    uint             `gorm:"not null;index"`
	Category      *CategoryModel   `gorm:"constraint:OnDelete:CASCADE;"`
	BrandID       uint             `gorm:"not null;index"`
	Brand         *BrandModel      `gorm:"constraint:OnDelete:CASCADE;"`
	Name          string           `gorm:"size:100;not null;index"`
	Price         decimal.Decimal  `gorm:"type:numeric(10,2);not null"`
	DiscountPrice *decimal.Decimal `gorm:"type:numeric(10,2)"`
	Description   string           `gorm:"type:text"`
	Details       string           `gorm:"type:text"`
	MainImage     string           `gorm:"size:255"`
	DateAdded     time.Time        `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}

// ItemImageModel is the GORM-specific struct for the 'item_images' table.
type ItemImageModel struct {
	ID     uint       `gorm:"primaryKey"`
	ItemID uint       `gorm:"not null;index"`
	Item   *ItemModel `gorm:"constraint:OnDelete:CASCADE;"`
	Image  string     `gorm:"size:255;not null"`
}

// TableName explicitly sets the table name for GORM.
func (ItemImageModel) TableName() string {
	return "item_images"
}

// StockUnitModel is the GORM-specific struct for the 'stock_units' table.
// One row per (item, color).
type StockUnitModel struct {
	ID       uint        `gorm:"primaryKey"`
	ItemID   uint        `gorm:"not null;uniqueIndex:idx_stock_units_item_color"`
	Item     *ItemModel  `gorm:"constraint:OnDelete:CASCADE;"`
	ColorID  uint        `gorm:"not null;uniqueIndex:idx_stock_units_item_color"`
	Color    *ColorModel `gorm:"constraint:OnDelete:CASCADE;"`
	Quantity int         `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (StockUnitModel) TableName() string {
	return "stock_units"
}
