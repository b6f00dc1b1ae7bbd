package service

import (
	"context"
)

// Messenger delivers text messages to the shop operator.
type Messenger interface {
	// SendBatch sends the messages in order. It stops at the first failure.
	SendBatch(ctx context.Context, messages []string) error
}
