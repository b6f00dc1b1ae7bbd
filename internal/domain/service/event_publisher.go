package service

import (
	"context"
)

// OrderNotificationEvent carries a checkout's operator messages to the notifier worker.
type OrderNotificationEvent struct {
	RequestID  string   `json:"request_id,omitempty"` // For distributed tracing
	SessionKey string   `json:"session_key"`
	OrderIDs   []uint   `json:"order_ids"`
	Messages   []string `json:"messages"` // Header first, then one line per order
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderNotification enqueues an order notification for async delivery
	PublishOrderNotification(ctx context.Context, event *OrderNotificationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
