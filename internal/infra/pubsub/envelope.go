package pubsub

import (
	"encoding/json"
	"strconv"
	"time"

	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

const (
	attrRequestID  = "request_id"
	attrSessionKey = "session_key"
	attrOrderCount = "order_count"
)

// PushEnvelope is the body a Pub/Sub push subscription POSTs to its endpoint.
// The local publisher produces the same shape so the notifier serves both.
type PushEnvelope struct {
	Message      PushedMessage `json:"message"`
	Subscription string        `json:"subscription"`
}

// PushedMessage carries the event JSON in Data, base64 on the wire.
type PushedMessage struct {
	Data        []byte            `json:"data"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	MessageID   string            `json:"messageId"`
	PublishTime time.Time         `json:"publishTime"`
}

// NewPushEnvelope wraps event for delivery to subscription.
func NewPushEnvelope(event *service.OrderNotificationEvent, subscription string) (*PushEnvelope, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrap(err, "encode order notification")
	}

	return &PushEnvelope{
		Message: PushedMessage{
			Data:        data,
			Attributes:  eventAttributes(event),
			MessageID:   uuid.NewString(),
			PublishTime: time.Now().UTC(),
		},
		Subscription: subscription,
	}, nil
}

// Event decodes the order notification carried by the envelope.
func (e *PushEnvelope) Event() (*service.OrderNotificationEvent, error) {
	var event service.OrderNotificationEvent
	if err := json.Unmarshal(e.Message.Data, &event); err != nil {
		return nil, errors.Wrapf(err, "decode message %s", e.Message.MessageID)
	}

	return &event, nil
}

// RequestID returns the publisher's request id attribute, if any.
func (e *PushEnvelope) RequestID() string {
	return e.Message.Attributes[attrRequestID]
}

func eventAttributes(event *service.OrderNotificationEvent) map[string]string {
	attrs := map[string]string{
		attrSessionKey: event.SessionKey,
		attrOrderCount: strconv.Itoa(len(event.OrderIDs)),
	}
	if event.RequestID != "" {
		attrs[attrRequestID] = event.RequestID
	}

	return attrs
}
