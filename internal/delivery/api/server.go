// Package api is the storefront's public and admin HTTP API.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"storefront/config"
	"storefront/internal/delivery"
	apimiddleware "storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router"
	"storefront/internal/delivery/api/validator"
	"storefront/internal/delivery/middleware"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	RouterParams router.RouterParams
}

type apiServer struct {
	addr   string
	h2     *http2.Server
	echo   *echo.Echo
	logger *slog.Logger
}

// NewServer serves HTTP/1.1 and cleartext HTTP/2 on http.port.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &apiServer{
		addr:   net.JoinHostPort("0.0.0.0", strconv.Itoa(params.Cfg.HTTP.Port)),
		h2:     &http2.Server{IdleTimeout: params.Cfg.HTTP.Timeouts.IdleTimeout},
		echo:   NewEcho(params.Cfg, params.Logger, params.RouterParams),
		logger: params.Logger,
	}
	params.Lc.Append(fx.StopHook(srv.shutdown))

	return srv, nil
}

// NewEcho builds the storefront echo instance with its middleware chain and routes.
func NewEcho(cfg *config.Config, logger *slog.Logger, routerParams router.RouterParams) *echo.Echo {
	e := echo.New()
	e.HideBanner, e.HidePort = true, true

	timeouts := cfg.HTTP.Timeouts
	e.Server.ReadTimeout = timeouts.ReadTimeout
	e.Server.ReadHeaderTimeout = timeouts.ReadHeaderTimeout
	e.Server.WriteTimeout = timeouts.WriteTimeout
	e.Server.IdleTimeout = timeouts.IdleTimeout

	// The request id must be set before the access log runs.
	e.Use(
		echomiddleware.Recover(),
		middleware.NewRequestIDMiddleware(logger).Process,
		middleware.NewLoggerMiddleware(logger, cfg, "/health").Handle,
		echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize),
	)
	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Validator = validator.New()

	router.NewRouter(routerParams).RegisterRoutes(e)

	return e
}

// NewSessionMiddleware provides the session cookie middleware from config.
func NewSessionMiddleware(cfg *config.Config, tokens service.SessionTokenService, logger *slog.Logger) *apimiddleware.SessionMiddleware {
	return apimiddleware.NewSessionMiddleware(tokens, cfg.Session.Secure, logger)
}

// NewAdminAuthMiddleware provides the admin API key middleware from config.
func NewAdminAuthMiddleware(cfg *config.Config, hasher service.KeyHasher, logger *slog.Logger) *apimiddleware.AdminAuthMiddleware {
	if cfg.Admin.APIKeyHash == "" {
		logger.Warn("admin.apiKeyHash is empty; admin API is locked")
	}

	return apimiddleware.NewAdminAuthMiddleware(hasher, cfg.Admin.APIKeyHash)
}

func (s *apiServer) Serve(context.Context) error {
	s.logger.Info("storefront listening", slog.String("addr", s.addr))

	if err := s.echo.StartH2CServer(s.addr, s.h2); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "storefront server")
	}

	return nil
}

func (s *apiServer) shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	return errors.Wrap(s.echo.Shutdown(ctx), "shutdown storefront server")
}
