package usecase

import (
	"context"

	"storefront/internal/domain/service"
)

// NotificationUsecase delivers queued order notifications to the operator.
type NotificationUsecase interface {
	// DeliverOrderNotification waits the configured delay, then sends the batch.
	// Transport failures are returned wrapped in ErrDeliveryFailed so callers can retry.
	DeliverOrderNotification(ctx context.Context, event *service.OrderNotificationEvent) error
}
