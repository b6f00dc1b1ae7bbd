package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

const localSubscription = "projects/local/subscriptions/order-notification-sub"

// pushEmulator posts push envelopes straight to the notifier, standing in
// for a Pub/Sub push subscription during development.
type pushEmulator struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewLocalHTTPPublisher delivers to endpoint and waits for its ack.
func NewLocalHTTPPublisher(endpoint string, timeout time.Duration, logger *slog.Logger) service.EventPublisher {
	return &pushEmulator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (p *pushEmulator) PublishOrderNotification(ctx context.Context, event *service.OrderNotificationEvent) error {
	envelope, err := NewPushEnvelope(event, localSubscription)
	if err != nil {
		return err
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(err, "encode push envelope")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build push request")
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, event.RequestID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "push to %s", p.endpoint)
	}
	defer resp.Body.Close()

	// The notifier answers 503 when a redelivery could succeed.
	if resp.StatusCode/100 != 2 {
		return errors.Errorf("push to %s: status %d", p.endpoint, resp.StatusCode)
	}

	p.logger.Debug("order notification pushed",
		slog.String("message_id", envelope.Message.MessageID),
		slog.Any("order_ids", event.OrderIDs),
	)

	return nil
}

func (p *pushEmulator) Close() error {
	p.client.CloseIdleConnections()

	return nil
}
