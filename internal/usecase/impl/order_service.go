package impl

import (
	"context"
	"log/slog"

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

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager     repository.TransactionManager
	publisher     service.EventPublisher
	allowOversell bool
	logger        *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	allowOversell := false
	if params.Config != nil && params.Config.Checkout != nil {
		allowOversell = params.Config.Checkout.AllowOversell
	}

	return &orderService{
		txManager:     params.TxManager,
		publisher:     params.Publisher,
		allowOversell: allowOversell,
		logger:        params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder runs checkout in one transaction and queues the notification after commit.
func (srv *orderService) PlaceOrder(ctx context.Context, sessionKey string, contact entity.Contact) (*usecase.PlaceOrderOutput, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		placed, err := srv.placeOrders(ctx, repoFactory, sessionKey, contact)
		if err != nil {
			return err
		}
		orders = placed

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Checkout failed", slog.Any("error", err))

		return nil, err
	}

	messages := entity.NotificationBatch(contact, orders)
	if len(orders) == 0 {
		srv.log(ctx).Info("Checkout with empty cart")

		return &usecase.PlaceOrderOutput{Orders: []*entity.Order{}, Messages: []string{}}, nil
	}

	srv.notify(ctx, sessionKey, orders, messages)

	return &usecase.PlaceOrderOutput{
		Orders:   orders,
		Messages: messages,
	}, nil
}

func (srv *orderService) placeOrders(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	sessionKey string,
	contact entity.Contact,
) ([]*entity.Order, error) {
	cartRepo := repoFactory.CartRepo()
	orderRepo := repoFactory.OrderRepo()
	catalogRepo := repoFactory.CatalogRepo()

	lines, err := cartRepo.ListActiveLines(ctx, sessionKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines")
	}

	orders := make([]*entity.Order, 0, len(lines))
	for _, line := range lines {
		if line.Quantity == 0 {
			continue
		}

		// Claim the line first; a concurrent checkout that already holds it leaves 0 rows.
		claimed, err := cartRepo.MarkOrdered(ctx, line.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to mark cart line ordered")
		}
		if !claimed {
			srv.log(ctx).Info("Cart line already ordered, skipping", slog.Uint64("line_id", uint64(line.ID)))

			continue
		}

		order := &entity.Order{
			CartLineID: line.ID,
			Contact:    contact,
			CartLine:   line,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return nil, errors.Wrap(err, "failed to create order")
		}

		if err := catalogRepo.DecrementStock(ctx, line.StockUnitID, line.Quantity, srv.allowOversell); err != nil {
			switch {
			case errors.Is(err, repository.ErrInsufficientStock):
				return nil, domainerrors.ErrInsufficientStock.WithDetails(line.ItemName())
			case errors.Is(err, repository.ErrStockUnitNotFound):
				return nil, domainerrors.ErrStockUnitNotFound
			}

			return nil, errors.Wrap(err, "failed to decrement stock")
		}

		line.Ordered = true
		orders = append(orders, order)
	}

	return orders, nil
}

// notify hands the batch to the publisher. Failures never reach the customer.
func (srv *orderService) notify(ctx context.Context, sessionKey string, orders []*entity.Order, messages []string) {
	orderIDs := make([]uint, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	event := &service.OrderNotificationEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		SessionKey: sessionKey,
		OrderIDs:   orderIDs,
		Messages:   messages,
	}

	if err := srv.publisher.PublishOrderNotification(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order notification",
			slog.Any("order_ids", orderIDs),
			slog.Any("error", err),
		)

		return
	}

	srv.log(ctx).Info("Order placed",
		slog.Any("order_ids", orderIDs),
		slog.Int("lines", len(orders)),
	)
}
