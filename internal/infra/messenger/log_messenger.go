package messenger

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"
)

// logMessenger writes the batch to the log. Used in development.
type logMessenger struct {
	logger *slog.Logger
}

// NewLogMessenger returns a Messenger that only logs.
func NewLogMessenger(logger *slog.Logger) service.Messenger {
	return &logMessenger{logger: logger}
}

func (m *logMessenger) SendBatch(ctx context.Context, messages []string) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger)
	for idx, text := range messages {
		logger.Info("[LogMessenger] Operator message",
			slog.Int("index", idx),
			slog.String("text", text),
		)
	}

	return nil
}
