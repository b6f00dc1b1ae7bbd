// Package worker serves the notifier's push endpoint.
package worker

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/middleware"
	"storefront/internal/delivery/worker/handler"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

const (
	healthPath = "/health"
	pushPath   = "/push"
)

type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	PushHandler *handler.PushHandler
}

type pushServer struct {
	addr   string
	echo   *echo.Echo
	logger *slog.Logger
}

// NewServer listens on notifier.port, or http.port when that is unset, so
// both binaries can share one config file.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	port := params.Cfg.HTTP.Port
	if n := params.Cfg.Notifier; n != nil && n.Port > 0 {
		port = n.Port
	}

	srv := &pushServer{
		addr:   net.JoinHostPort("0.0.0.0", strconv.Itoa(port)),
		echo:   NewEcho(params.Cfg, params.Logger, params.PushHandler),
		logger: params.Logger,
	}
	params.Lc.Append(fx.StopHook(srv.shutdown))

	return srv, nil
}

func NewEcho(cfg *config.Config, logger *slog.Logger, push *handler.PushHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(
		echomiddleware.Recover(),
		middleware.NewRequestIDMiddleware(logger).Process,
		middleware.NewLoggerMiddleware(logger, cfg, healthPath).Handle,
	)

	e.GET(healthPath, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.POST(pushPath, push.HandlePush)

	return e
}

func (s *pushServer) Serve(context.Context) error {
	s.logger.Info("notifier listening", slog.String("addr", s.addr))

	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "notifier server")
	}

	return nil
}

func (s *pushServer) shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	return errors.Wrap(s.echo.Shutdown(ctx), "shutdown notifier server")
}
