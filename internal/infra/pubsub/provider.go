// Package pubsub hands order notifications from checkout to the notifier.
package pubsub

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"go.uber.org/fx"
)

//nolint:gochecknoglobals
var Module = fx.Provide(NewEventPublisher)

type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher returns the configured transport behind the async
// dispatcher, which holds each event for notifier.initialDelay. Shutdown
// flushes held events and waits for them until the stop deadline.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	transport, err := newTransport(params.Ctx, params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	var delay time.Duration
	if params.Config.Notifier != nil {
		delay = params.Config.Notifier.InitialDelay
	}

	publisher := NewAsyncPublisher(transport, delay, params.Config.Checkout.PublishTimeout, params.Logger)
	params.Lc.Append(fx.StopHook(func(ctx context.Context) error {
		drained := make(chan error, 1)
		go func() { drained <- publisher.Close() }()

		select {
		case err := <-drained:
			return err
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "drain order notifications")
		}
	}))

	return publisher, nil
}

func newTransport(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.EventPublisher, error) {
	ps := cfg.PubSub
	if ps == nil || ps.Provider == "" {
		logger.Warn("pubsub.provider is empty; order notifications are dropped")

		return &noopPublisher{logger: logger}, nil
	}

	switch ps.Provider {
	case constants.PubSubProviderLocal:
		if ps.LocalEndpoint == "" {
			return nil, errors.New("pubsub.localEndpoint is required for the local provider")
		}

		return NewLocalHTTPPublisher(ps.LocalEndpoint, cfg.Checkout.PublishTimeout, logger), nil
	case constants.PubSubProviderGoogle:
		if ps.ProjectID == "" || ps.TopicID == "" {
			return nil, errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}

		return NewGooglePubSubPublisher(ctx, ps.ProjectID, ps.TopicID, logger)
	default:
		return nil, errors.Errorf("unknown pubsub provider %q", ps.Provider)
	}
}

type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishOrderNotification(_ context.Context, event *service.OrderNotificationEvent) error {
	p.logger.Debug("order notification dropped", slog.Any("order_ids", event.OrderIDs))

	return nil
}

func (p *noopPublisher) Close() error { return nil }
