package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	catalogRepo repository.CatalogRepository
	mediaStore  service.MediaStore
	now         func() time.Time
	logger      *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	MediaStore  service.MediaStore
	Logger      *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		catalogRepo: params.CatalogRepo,
		mediaStore:  params.MediaStore,
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *adminService) CreateCategory(ctx context.Context, category *entity.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("category name is required")
	}

	return errors.Wrap(srv.catalogRepo.CreateCategory(ctx, category), "failed to create category")
}

func (srv *adminService) CreateBrand(ctx context.Context, brand *entity.Brand) error {
	if strings.TrimSpace(brand.Name) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("brand name is required")
	}

	return errors.Wrap(srv.catalogRepo.CreateBrand(ctx, brand), "failed to create brand")
}

func (srv *adminService) CreateColor(ctx context.Context, color *entity.Color) error {
	if strings.TrimSpace(color.Name) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("color name is required")
	}

	return errors.Wrap(srv.catalogRepo.CreateColor(ctx, color), "failed to create color")
}

// CreateItem checks the price invariants and that category and brand exist.
func (srv *adminService) CreateItem(ctx context.Context, item *entity.Item) error {
	if err := item.Validate(); err != nil {
		return domainerrors.ErrInvalidItem.WithDetails(err.Error())
	}

	if _, err := srv.catalogRepo.FindCategoryByID(ctx, item.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to find category")
	}

	if _, err := srv.catalogRepo.FindBrandByID(ctx, item.BrandID); err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return domainerrors.ErrBrandNotFound
		}

		return errors.Wrap(err, "failed to find brand")
	}

	if item.DateAdded.IsZero() {
		item.DateAdded = srv.now()
	}

	if err := srv.catalogRepo.CreateItem(ctx, item); err != nil {
		return errors.Wrap(err, "failed to create item")
	}

	srv.log(ctx).Info("Item created", slog.Uint64("item_id", uint64(item.ID)), slog.String("name", item.Name))

	return nil
}

// AddItemImage uploads the file under items/<id>/ and records its key.
func (srv *adminService) AddItemImage(ctx context.Context, itemID uint, upload *usecase.UploadInput) (*entity.ItemImage, error) {
	if _, err := srv.catalogRepo.FindItemByID(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	key := fmt.Sprintf("items/%d/%s%s", itemID, uuid.New().String(), strings.ToLower(path.Ext(upload.Filename)))
	key, err := srv.mediaStore.Put(ctx, key, upload.Body, upload.ContentType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store item image")
	}

	image := &entity.ItemImage{ItemID: itemID, Image: key}
	if err := srv.catalogRepo.CreateItemImage(ctx, image); err != nil {
		return nil, errors.Wrap(err, "failed to create item image")
	}

	return image, nil
}

// AddStock creates the stock unit for an (item, color) pair.
func (srv *adminService) AddStock(ctx context.Context, unit *entity.StockUnit) error {
	if unit.Quantity < 0 {
		return domainerrors.ErrInvalidQuantity
	}

	if _, err := srv.catalogRepo.FindItemByID(ctx, unit.ItemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return domainerrors.ErrItemNotFound
		}

		return errors.Wrap(err, "failed to find item")
	}

	color, err := srv.catalogRepo.FindColorByID(ctx, unit.ColorID)
	if err != nil {
		if errors.Is(err, repository.ErrColorNotFound) {
			return domainerrors.ErrColorNotFound
		}

		return errors.Wrap(err, "failed to find color")
	}

	if err := srv.catalogRepo.CreateStockUnit(ctx, unit); err != nil {
		if errors.Is(err, repository.ErrDuplicateStockUnit) {
			return domainerrors.ErrStockUnitExists
		}

		return errors.Wrap(err, "failed to create stock unit")
	}
	unit.Color = color

	return nil
}

// DeleteCategory removes the category; the database cascades to its items.
func (srv *adminService) DeleteCategory(ctx context.Context, categoryID uint) error {
	stock, err := srv.catalogRepo.StockCountByCategory(ctx, categoryID)
	if err != nil {
		return errors.Wrap(err, "failed to count category stock")
	}

	if err := srv.catalogRepo.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to delete category")
	}

	srv.log(ctx).Warn("Category deleted",
		slog.Uint64("category_id", uint64(categoryID)),
		slog.Int64("stock_removed", stock),
	)

	return nil
}
