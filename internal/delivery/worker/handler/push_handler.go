// Package handler contains the notifier worker's HTTP handlers.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/errors"
	"storefront/internal/infra/pubsub"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// PushHandler turns Pub/Sub push deliveries into operator notifications.
type PushHandler struct {
	authenticate   bool
	verifyToken    func(*http.Request) error
	logger         *slog.Logger
	notificationUC usecase.NotificationUsecase
}

type PushHandlerParams struct {
	fx.In

	Config         *config.Config
	Logger         *slog.Logger
	NotificationUC usecase.NotificationUsecase
}

func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only pushes from Google carry an OIDC token; the local emulator does not.
	authenticate := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		authenticate:   authenticate,
		verifyToken:    verifyPushToken,
		logger:         params.Logger,
		notificationUC: params.NotificationUC,
	}
}

// HandlePush answers 503 only when redelivery may succeed. Everything else,
// including payloads that can never be delivered, is acked so Pub/Sub stops
// retrying it.
func (h *PushHandler) HandlePush(c echo.Context) error {
	if h.authenticate {
		if err := h.verifyToken(c.Request()); err != nil {
			h.logger.Warn("push rejected", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var envelope pubsub.PushEnvelope
	if err := c.Bind(&envelope); err != nil {
		h.logger.Warn("malformed push envelope", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	event, err := envelope.Event()
	if err != nil {
		h.logger.Warn("malformed order notification", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := firstNonEmpty(
		envelope.RequestID(),
		event.RequestID,
		deliverycontext.GetRequestIDFromContext(c.Request().Context()),
	)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := h.logger.With(
		slog.String("request_id", requestID),
		slog.String("message_id", envelope.Message.MessageID),
	)
	ctx := deliverycontext.WithLogger(deliverycontext.WithRequestID(c.Request().Context(), requestID), logger)

	err = h.notificationUC.DeliverOrderNotification(ctx, event)
	switch {
	case err == nil:
		logger.Info("order notification delivered", slog.Any("order_ids", event.OrderIDs))
	case errors.Is(err, usecase.ErrDeliveryFailed):
		logger.Error("order notification will be retried", slog.Any("error", err))

		return c.NoContent(http.StatusServiceUnavailable)
	default:
		logger.Error("order notification dropped", slog.Any("error", err))
	}

	return c.NoContent(http.StatusOK)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

// verifyPushToken checks the OIDC bearer token Google signs push requests
// with. The audience is this endpoint's own URL.
func verifyPushToken(req *http.Request) error {
	token, ok := strings.CutPrefix(req.Header.Get(echo.HeaderAuthorization), "Bearer ")
	if !ok || token == "" {
		return errors.New("missing bearer token")
	}

	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}

	payload, err := idtoken.Validate(req.Context(), token, scheme+"://"+req.Host+req.URL.Path)
	if err != nil {
		return errors.Wrap(err, "validate push token")
	}
	if !googleIssuers[payload.Issuer] {
		return errors.Errorf("unexpected issuer %q", payload.Issuer)
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return errors.New("push token email is not verified")
	}

	return nil
}
