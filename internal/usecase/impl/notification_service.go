package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	messenger service.Messenger
	logger    *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	Messenger service.Messenger
	Logger    *slog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		messenger: params.Messenger,
		logger:    params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// DeliverOrderNotification sends the messages in order. The push is held open
// only for the send itself; the initial delay is applied before publishing.
func (srv *notificationService) DeliverOrderNotification(ctx context.Context, event *service.OrderNotificationEvent) error {
	if len(event.Messages) == 0 {
		srv.log(ctx).Info("Order notification has no messages, skipping", slog.Any("order_ids", event.OrderIDs))

		return nil
	}

	if err := srv.messenger.SendBatch(ctx, event.Messages); err != nil {
		return errors.Join(usecase.ErrDeliveryFailed, err)
	}

	srv.log(ctx).Info("Order notification delivered",
		slog.Any("order_ids", event.OrderIDs),
		slog.Int("messages", len(event.Messages)),
	)

	return nil
}
