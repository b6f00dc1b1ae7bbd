package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// minLineQuantity is the smallest quantity a cart line keeps outside legacy mode.
const minLineQuantity = 1

// cartService implements the CartUsecase interface.
type cartService struct {
	catalogRepo              repository.CatalogRepository
	cartRepo                 repository.CartRepository
	wishlistRepo             repository.WishlistRepository
	allowNonPositiveQuantity bool
	logger                   *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CatalogRepo  repository.CatalogRepository
	CartRepo     repository.CartRepository
	WishlistRepo repository.WishlistRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	allowNonPositive := false
	if params.Config != nil && params.Config.Cart != nil {
		allowNonPositive = params.Config.Cart.AllowNonPositiveQuantity
	}

	return &cartService{
		catalogRepo:              params.CatalogRepo,
		cartRepo:                 params.CartRepo,
		wishlistRepo:             params.WishlistRepo,
		allowNonPositiveQuantity: allowNonPositive,
		logger:                   params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddToCart resolves the stock unit and merges the quantity into the session's active line.
func (srv *cartService) AddToCart(ctx context.Context, input *usecase.AddLineInput) (*entity.CartLine, error) {
	if input.Quantity < 1 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	unit, err := srv.resolveStockUnit(ctx, input.ItemID, input.StockUnitID)
	if err != nil {
		return nil, err
	}

	line, err := srv.cartRepo.UpsertLine(ctx, input.SessionKey, unit.ID, input.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrStockUnitNotFound) {
			return nil, domainerrors.ErrStockUnitNotFound
		}

		return nil, errors.Wrap(err, "failed to upsert cart line")
	}

	srv.log(ctx).Debug("Cart line updated",
		slog.Uint64("line_id", uint64(line.ID)),
		slog.Uint64("stock_unit_id", uint64(unit.ID)),
		slog.Int("quantity", line.Quantity),
	)

	return line, nil
}

// AddToWishlist resolves the stock unit and always appends a new line.
func (srv *cartService) AddToWishlist(ctx context.Context, input *usecase.AddLineInput) (*entity.WishlistLine, error) {
	if input.Quantity < 1 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	unit, err := srv.resolveStockUnit(ctx, input.ItemID, input.StockUnitID)
	if err != nil {
		return nil, err
	}

	line := &entity.WishlistLine{
		StockUnitID: unit.ID,
		Quantity:    input.Quantity,
		SessionKey:  input.SessionKey,
	}
	if err := srv.wishlistRepo.Create(ctx, line); err != nil {
		if errors.Is(err, repository.ErrStockUnitNotFound) {
			return nil, domainerrors.ErrStockUnitNotFound
		}

		return nil, errors.Wrap(err, "failed to create wishlist line")
	}
	line.StockUnit = unit

	return line, nil
}

// RemoveFromCart deletes one of the session's active lines.
func (srv *cartService) RemoveFromCart(ctx context.Context, sessionKey string, lineID uint) error {
	if _, err := srv.ownedActiveLine(ctx, sessionKey, lineID); err != nil {
		return err
	}

	deleted, err := srv.cartRepo.DeleteActiveLine(ctx, lineID)
	if err != nil {
		return errors.Wrap(err, "failed to delete cart line")
	}
	if !deleted {
		// Checked out between the read and the delete.
		return domainerrors.ErrLineOrdered
	}

	return nil
}

// AdjustQuantity changes a line by delta. Outside legacy mode a line never drops
// below one: decrementing a single unit removes the line and returns nil.
func (srv *cartService) AdjustQuantity(ctx context.Context, sessionKey string, lineID uint, delta int) (*entity.CartLine, error) {
	if delta == 0 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	if _, err := srv.ownedActiveLine(ctx, sessionKey, lineID); err != nil {
		return nil, err
	}

	var floor *int
	if !srv.allowNonPositiveQuantity {
		minQuantity := minLineQuantity
		floor = &minQuantity
	}

	changed, err := srv.cartRepo.AdjustQuantity(ctx, lineID, delta, floor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to adjust cart line")
	}

	if !changed {
		removed, err := srv.resolveBlockedAdjust(ctx, sessionKey, lineID, delta)
		if err != nil || removed {
			return nil, err
		}
	}

	line, err := srv.cartRepo.FindLineByID(ctx, lineID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload cart line")
	}

	return line, nil
}

// resolveBlockedAdjust handles an adjust that matched no row: either the line was
// ordered concurrently, or the floor blocked it.
func (srv *cartService) resolveBlockedAdjust(ctx context.Context, sessionKey string, lineID uint, delta int) (removed bool, err error) {
	if _, err := srv.ownedActiveLine(ctx, sessionKey, lineID); err != nil {
		return false, err
	}

	if delta < 0 {
		deleted, err := srv.cartRepo.DeleteActiveLine(ctx, lineID)
		if err != nil {
			return false, errors.Wrap(err, "failed to delete cart line")
		}
		if !deleted {
			return false, domainerrors.ErrLineOrdered
		}
		srv.log(ctx).Debug("Cart line removed at quantity floor", slog.Uint64("line_id", uint64(lineID)))

		return true, nil
	}

	// A line left below the floor by legacy mode still accepts increments.
	changed, err := srv.cartRepo.AdjustQuantity(ctx, lineID, delta, nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to adjust cart line")
	}
	if !changed {
		return false, domainerrors.ErrLineOrdered
	}

	return false, nil
}

// ListCart returns the session's active lines and their total.
func (srv *cartService) ListCart(ctx context.Context, sessionKey string) (*usecase.CartOutput, error) {
	lines, err := srv.cartRepo.ListActiveLines(ctx, sessionKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines")
	}

	return &usecase.CartOutput{
		Lines: lines,
		Total: entity.CartTotal(lines),
	}, nil
}

// ListWishlist returns the session's wishlist lines and their total.
func (srv *cartService) ListWishlist(ctx context.Context, sessionKey string) (*usecase.WishlistOutput, error) {
	lines, err := srv.wishlistRepo.ListBySession(ctx, sessionKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list wishlist lines")
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}

	return &usecase.WishlistOutput{
		Lines: lines,
		Total: total,
	}, nil
}

// resolveStockUnit picks the explicit unit, which must belong to the item, or
// the first unit of the item that still has stock.
func (srv *cartService) resolveStockUnit(ctx context.Context, itemID uint, stockUnitID *uint) (*entity.StockUnit, error) {
	if _, err := srv.catalogRepo.FindItemByID(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	if stockUnitID != nil {
		unit, err := srv.catalogRepo.FindStockUnitByID(ctx, *stockUnitID)
		if errors.Is(err, repository.ErrStockUnitNotFound) {
			return nil, domainerrors.ErrStockUnitNotFound
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find stock unit")
		}
		if unit.ItemID != itemID {
			return nil, domainerrors.ErrStockUnitNotFound
		}

		return unit, nil
	}

	unit, err := srv.catalogRepo.FindFirstAvailableStockUnit(ctx, itemID)
	if errors.Is(err, repository.ErrNoAvailableStock) {
		return nil, domainerrors.ErrOutOfStock
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find available stock unit")
	}

	return unit, nil
}

// ownedActiveLine loads a line and checks it belongs to the session and is still editable.
func (srv *cartService) ownedActiveLine(ctx context.Context, sessionKey string, lineID uint) (*entity.CartLine, error) {
	line, err := srv.cartRepo.FindLineByID(ctx, lineID)
	if errors.Is(err, repository.ErrCartLineNotFound) {
		return nil, domainerrors.ErrCartLineNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cart line")
	}

	if line.SessionKey != sessionKey {
		return nil, domainerrors.ErrCartLineNotFound
	}
	if line.Ordered {
		return nil, domainerrors.ErrLineOrdered
	}

	return line, nil
}
