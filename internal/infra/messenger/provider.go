// Package messenger delivers order notification batches to the shop operator.
package messenger

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const sendTimeout = 10 * time.Second

// Params holds dependencies for the Messenger, injected by Fx
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New selects the messenger named by notifier.provider. Empty means log.
func New(params Params) (service.Messenger, error) {
	cfg := params.Config.Notifier
	provider := constants.MessengerProviderLog
	if cfg != nil && cfg.Provider != "" {
		provider = cfg.Provider
	}

	switch provider {
	case constants.MessengerProviderLog:
		params.Logger.Info("Using log messenger")

		return NewLogMessenger(params.Logger), nil

	case constants.MessengerProviderTelegram:
		if cfg.Telegram == nil {
			return nil, errors.New("telegram configuration is required for telegram provider")
		}
		params.Logger.Info("Using Telegram messenger", slog.String("chat_id", cfg.Telegram.ChatID))

		return NewTelegramMessenger(cfg.Telegram.APIURL, cfg.Telegram.BotToken, cfg.Telegram.ChatID, sendTimeout)

	case constants.MessengerProviderFirebase:
		if cfg.Firebase == nil {
			return nil, errors.New("firebase configuration is required for firebase provider")
		}
		params.Logger.Info("Using Firebase messenger", slog.String("topic", cfg.Firebase.Topic))

		return NewFirebaseMessenger(params.Ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath, cfg.Firebase.Topic)

	default:
		return nil, errors.Errorf("unknown notifier provider: %s", provider)
	}
}

// Module provides the messenger FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
