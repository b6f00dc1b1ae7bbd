// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"math"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	reviewRepo  repository.ReviewRepository
	qrService   service.QRCodeService
	pageSize    int
	now         func() time.Time
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	ReviewRepo  repository.ReviewRepository
	QRService   service.QRCodeService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	pageSize := 0
	if params.Config != nil && params.Config.Listing != nil {
		pageSize = params.Config.Listing.PageSize
	}
	if pageSize <= 0 {
		pageSize = 2
	}

	return &catalogService{
		catalogRepo: params.CatalogRepo,
		reviewRepo:  params.ReviewRepo,
		qrService:   params.QRService,
		pageSize:    pageSize,
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Home returns every item and the categories with stock counters.
func (srv *catalogService) Home(ctx context.Context) (*usecase.HomeOutput, error) {
	items, err := srv.catalogRepo.ListItems(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	categories, err := srv.catalogRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return &usecase.HomeOutput{
		Items:      srv.views(items),
		Categories: categories,
	}, nil
}

// ItemDetail gathers everything shown on an item page.
func (srv *catalogService) ItemDetail(ctx context.Context, itemID uint) (*usecase.ItemDetailOutput, error) {
	item, err := srv.findItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	category, err := srv.catalogRepo.FindCategoryByID(ctx, item.CategoryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find item category")
	}
	if category.StockCount, err = srv.catalogRepo.StockCountByCategory(ctx, category.ID); err != nil {
		return nil, errors.Wrap(err, "failed to count category stock")
	}

	brand, err := srv.catalogRepo.FindBrandByID(ctx, item.BrandID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find item brand")
	}
	if brand.StockCount, err = srv.catalogRepo.StockCountByBrand(ctx, brand.ID); err != nil {
		return nil, errors.Wrap(err, "failed to count brand stock")
	}

	images, err := srv.catalogRepo.ListItemImages(ctx, item.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list item images")
	}

	units, err := srv.catalogRepo.ListStockUnits(ctx, item.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stock units")
	}

	related, err := srv.catalogRepo.ListItemsByCategory(ctx, item.CategoryID, item.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list related items")
	}

	reviews, err := srv.reviewRepo.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return &usecase.ItemDetailOutput{
		Item:         srv.view(item),
		Category:     category,
		Brand:        brand,
		Images:       images,
		StockUnits:   units,
		RelatedItems: srv.views(related),
		Reviews:      reviews,
		Rating:       entity.SummarizeRatings(reviews),
	}, nil
}

// Store returns one page of the filtered listing together with the filter sidebars.
func (srv *catalogService) Store(ctx context.Context, query *usecase.StoreQuery) (*usecase.StoreOutput, error) {
	page := max(query.Page, 1)

	filter := repository.ItemFilter{
		CategoryID:  query.CategoryID,
		Search:      query.Search,
		CategoryIDs: query.CategoryIDs,
		BrandIDs:    query.BrandIDs,
		Offset:      pageOffset(page, srv.pageSize),
		Limit:       srv.pageSize,
	}
	// A price bound only applies when both ends are given.
	if query.PriceMin != nil && query.PriceMax != nil {
		filter.PriceMin = query.PriceMin
		filter.PriceMax = query.PriceMax
	}

	items, total, err := srv.catalogRepo.FindItems(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find items")
	}

	categories, err := srv.catalogRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	brands, err := srv.catalogRepo.ListBrands(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list brands")
	}

	totalPages := int((total + int64(srv.pageSize) - 1) / int64(srv.pageSize))

	srv.log(ctx).Debug("Store listing served",
		slog.Int("page", page),
		slog.Int64("total_items", total),
	)

	return &usecase.StoreOutput{
		Items: srv.views(items),
		Page: usecase.PageInfo{
			Page:       page,
			PageSize:   srv.pageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
		Categories: categories,
		Brands:     brands,
	}, nil
}

// pageOffset saturates instead of overflowing, so an absurd page lands past the
// end of the listing.
func pageOffset(page, size int) int {
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}

	return (page - 1) * size
}

// ItemQRCode renders the item's QR code after checking the item exists.
func (srv *catalogService) ItemQRCode(ctx context.Context, itemID uint) ([]byte, error) {
	if _, err := srv.findItem(ctx, itemID); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateItemQR(itemID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate item QR code")
	}

	return png, nil
}

func (srv *catalogService) findItem(ctx context.Context, itemID uint) (*entity.Item, error) {
	item, err := srv.catalogRepo.FindItemByID(ctx, itemID)
	if errors.Is(err, repository.ErrItemNotFound) {
		return nil, domainerrors.ErrItemNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find item")
	}

	return item, nil
}

func (srv *catalogService) view(item *entity.Item) *usecase.ItemView {
	pct, ok := item.DiscountPercentage()

	return &usecase.ItemView{
		Item:               item,
		FinalPrice:         item.UnitPrice(),
		DiscountPercentage: pct,
		HasDiscount:        ok,
		IsNew:              item.IsNew(srv.now()),
	}
}

func (srv *catalogService) views(items []*entity.Item) []*usecase.ItemView {
	views := make([]*usecase.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, srv.view(item))
	}

	return views
}
