package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ItemView is an item with the derived fields a storefront page shows.
type ItemView struct {
	*entity.Item
	FinalPrice         decimal.Decimal `json:"final_price"`
	DiscountPercentage int             `json:"discount_percentage,omitempty"`
	HasDiscount        bool            `json:"has_discount"`
	IsNew              bool            `json:"is_new"`
}

// HomeOutput is the data of the home page.
type HomeOutput struct {
	Items      []*ItemView        `json:"items"`
	Categories []*entity.Category `json:"categories"`
}

// ItemDetailOutput is the data of an item page.
type ItemDetailOutput struct {
	Item         *ItemView            `json:"item"`
	Category     *entity.Category     `json:"category"`
	Brand        *entity.Brand        `json:"brand"`
	Images       []*entity.ItemImage  `json:"images"`
	StockUnits   []*entity.StockUnit  `json:"stock_units"`
	RelatedItems []*ItemView          `json:"related_items"`
	Reviews      []*entity.Review     `json:"reviews"`
	Rating       entity.RatingSummary `json:"rating"`
}

// StoreQuery holds the parsed store listing parameters.
type StoreQuery struct {
	CategoryID  *uint
	Search      string
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	CategoryIDs []uint
	BrandIDs    []uint
	Page        int // 1-based
}

// PageInfo describes the returned page of a listing.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// StoreOutput is the data of the store listing page.
type StoreOutput struct {
	Items      []*ItemView        `json:"items"`
	Page       PageInfo           `json:"page"`
	Categories []*entity.Category `json:"categories"`
	Brands     []*entity.Brand    `json:"brands"`
}

// CatalogUsecase defines the read side of the catalog.
type CatalogUsecase interface {
	// Home returns all items and the categories with their stock counters.
	Home(ctx context.Context) (*HomeOutput, error)

	// ItemDetail returns an item with images, stock, related items and reviews.
	ItemDetail(ctx context.Context, itemID uint) (*ItemDetailOutput, error)

	// Store returns one page of the filtered listing.
	Store(ctx context.Context, query *StoreQuery) (*StoreOutput, error)

	// ItemQRCode renders a PNG QR code linking to the item page.
	ItemQRCode(ctx context.Context, itemID uint) ([]byte, error)
}
