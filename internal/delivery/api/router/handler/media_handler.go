package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MediaHandlerParams holds dependencies for MediaHandler, injected by Fx.
type MediaHandlerParams struct {
	fx.In

	MediaStore service.MediaStore
	Logger     *slog.Logger
}

// MediaHandler streams uploaded images.
type MediaHandler struct {
	store  service.MediaStore
	logger *slog.Logger
}

// NewMediaHandler is the constructor for MediaHandler
func NewMediaHandler(params MediaHandlerParams) *MediaHandler {
	return &MediaHandler{
		store:  params.MediaStore,
		logger: params.Logger,
	}
}

// Serve handles GET /media/*.
func (h *MediaHandler) Serve(c echo.Context) error {
	obj, err := h.store.Open(c.Request().Context(), c.Param("*"))
	if errors.IsAny(err, service.ErrMediaNotFound, service.ErrInvalidMediaKey) {
		return response.HandleAppError(c, domainerrors.ErrNotFound)
	}
	if err != nil {
		return errors.Wrap(err, "open media object")
	}
	defer obj.Body.Close()

	header := c.Response().Header()
	header.Set("Cache-Control", "public, max-age=86400")
	if obj.Size >= 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(obj.Size, 10))
	}

	return c.Stream(http.StatusOK, obj.ContentType, obj.Body)
}
