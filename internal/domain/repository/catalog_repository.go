// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for catalog persistence.
var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrBrandNotFound      = errors.New("brand not found")
	ErrColorNotFound      = errors.New("color not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrStockUnitNotFound  = errors.New("stock unit not found")
	ErrDuplicateStockUnit = errors.New("stock unit already exists for item and color")
	// ErrNoAvailableStock is returned when an item has no stock unit with a positive quantity.
	ErrNoAvailableStock = errors.New("no stock unit with positive quantity")
	// ErrInsufficientStock is returned when a decrement would make quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidReference is returned when a foreign key points to a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// ItemFilter narrows the store listing. Zero values mean "no filter".
type ItemFilter struct {
	CategoryID  *uint
	Search      string
	PriceMin    *decimal.Decimal // exclusive
	PriceMax    *decimal.Decimal // inclusive
	CategoryIDs []uint
	BrandIDs    []uint
	Offset      int
	Limit       int
}

// CatalogRepository defines read and admin write access to the catalog.
type CatalogRepository interface {
	// ListCategories returns every category with its stock counter.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// ListBrands returns every brand with its stock counter.
	ListBrands(ctx context.Context) ([]*entity.Brand, error)

	// FindCategoryByID retrieves a category without its counter.
	FindCategoryByID(ctx context.Context, id uint) (*entity.Category, error)

	// FindBrandByID retrieves a brand without its counter.
	FindBrandByID(ctx context.Context, id uint) (*entity.Brand, error)

	// FindColorByID retrieves a color.
	FindColorByID(ctx context.Context, id uint) (*entity.Color, error)

	// StockCountByCategory sums stock quantity over all items of the category.
	StockCountByCategory(ctx context.Context, categoryID uint) (int64, error)

	// StockCountByBrand sums stock quantity over all items of the brand.
	StockCountByBrand(ctx context.Context, brandID uint) (int64, error)

	// ListItems returns all items in insertion order.
	ListItems(ctx context.Context) ([]*entity.Item, error)

	// FindItems returns one page of items matching the filter and the total match count.
	FindItems(ctx context.Context, filter ItemFilter) ([]*entity.Item, int64, error)

	// FindItemByID retrieves a single item.
	FindItemByID(ctx context.Context, id uint) (*entity.Item, error)

	// ListItemsByCategory returns the items of a category, excluding excludeID.
	ListItemsByCategory(ctx context.Context, categoryID, excludeID uint) ([]*entity.Item, error)

	// ListItemImages returns the extra images of an item.
	ListItemImages(ctx context.Context, itemID uint) ([]*entity.ItemImage, error)

	// ListStockUnits returns the stock units of an item with their colors.
	ListStockUnits(ctx context.Context, itemID uint) ([]*entity.StockUnit, error)

	// FindStockUnitByID retrieves a stock unit with its item and color.
	FindStockUnitByID(ctx context.Context, id uint) (*entity.StockUnit, error)

	// FindFirstAvailableStockUnit returns the lowest-id stock unit of the item with quantity > 0.
	FindFirstAvailableStockUnit(ctx context.Context, itemID uint) (*entity.StockUnit, error)

	// DecrementStock atomically subtracts amount from a stock unit.
	// Unless allowNegative is set, it fails with ErrInsufficientStock instead of going below zero.
	DecrementStock(ctx context.Context, stockUnitID uint, amount int, allowNegative bool) error

	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, category *entity.Category) error

	// CreateBrand persists a new brand.
	CreateBrand(ctx context.Context, brand *entity.Brand) error

	// CreateColor persists a new color.
	CreateColor(ctx context.Context, color *entity.Color) error

	// CreateItem persists a new item.
	CreateItem(ctx context.Context, item *entity.Item) error

	// CreateItemImage attaches an image to an item.
	CreateItemImage(ctx context.Context, image *entity.ItemImage) error

	// CreateStockUnit persists stock for an (item, color) pair.
	CreateStockUnit(ctx context.Context, unit *entity.StockUnit) error

	// DeleteCategory removes a category; foreign keys cascade to its items and their rows.
	DeleteCategory(ctx context.Context, id uint) error
}
