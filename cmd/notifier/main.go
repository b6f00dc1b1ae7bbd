// Command notifier receives order notification pushes and relays them to
// the shop operator.
package main

import (
	"context"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/worker"
	"storefront/internal/delivery/worker/handler"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/messenger"
	"storefront/internal/usecase/impl"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		messenger.Module,
		fx.Provide(
			impl.NewNotificationService,
			handler.NewPushHandler,
		),
		delivery.Provide(worker.NewServer),
		delivery.Run,
	).Run()
}
