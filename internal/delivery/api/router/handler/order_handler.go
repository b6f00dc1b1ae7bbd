package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler handles checkout.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// MakeOrderRequest is the checkout form.
type MakeOrderRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email,max=254"`
	Address string `json:"address" form:"address" validate:"required,max=200"`
	Tel     string `json:"tel" form:"tel" validate:"required,max=20"`
	Notes   string `json:"notes" form:"notes" validate:"max=500"`
}

// MakeOrder turns the session's cart into orders.
func (h *OrderHandler) MakeOrder(c echo.Context) error {
	key, err := sessionKey(c)
	if err != nil {
		return err
	}

	var req MakeOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order form")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	contact := entity.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Tel,
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		contact.Notes = &notes
	}

	out, err := h.orderUC.PlaceOrder(c.Request().Context(), key, contact)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	status := http.StatusCreated
	if len(out.Orders) == 0 {
		status = http.StatusOK
	}

	return response.Success(c, status, out)
}
