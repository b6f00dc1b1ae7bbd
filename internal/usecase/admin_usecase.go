package usecase

import (
	"context"
	"io"

	"storefront/internal/domain/entity"
)

// UploadInput is a file sent to the media store.
type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// AdminUsecase defines catalog management.
type AdminUsecase interface {
	CreateCategory(ctx context.Context, category *entity.Category) error
	CreateBrand(ctx context.Context, brand *entity.Brand) error
	CreateColor(ctx context.Context, color *entity.Color) error

	// CreateItem validates price invariants and references before inserting.
	CreateItem(ctx context.Context, item *entity.Item) error

	// AddItemImage stores the upload in the media store and attaches it to the item.
	AddItemImage(ctx context.Context, itemID uint, upload *UploadInput) (*entity.ItemImage, error)

	// AddStock creates the stock unit for (item, color).
	AddStock(ctx context.Context, unit *entity.StockUnit) error

	// DeleteCategory removes a category with everything that depends on it.
	DeleteCategory(ctx context.Context, categoryID uint) error
}
