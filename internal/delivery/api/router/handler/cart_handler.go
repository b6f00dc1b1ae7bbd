package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler serves the session cart and wishlist.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// Cart lists the session's active lines. It also backs the checkout summary page.
func (h *CartHandler) Cart(c echo.Context) error {
	key, err := sessionKey(c)
	if err != nil {
		return err
	}

	out, err := h.cartUC.ListCart(c.Request().Context(), key)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}

// Wishlist lists the session's wishlist lines.
func (h *CartHandler) Wishlist(c echo.Context) error {
	key, err := sessionKey(c)
	if err != nil {
		return err
	}

	out, err := h.cartUC.ListWishlist(c.Request().Context(), key)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}

// AddToCart handles /add_to_cart/:item_id/?color=&quantity=.
func (h *CartHandler) AddToCart(c echo.Context) error {
	input, err := h.addLineInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	line, err := h.cartUC.AddToCart(c.Request().Context(), input)
	if errors.Is(err, domainerrors.ErrOutOfStock) {
		return response.Empty(c, domainerrors.ErrOutOfStock.Message())
	}
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, line)
}

// AddToWishlist handles /add_to_wishlist/:item_id/?color=&quantity=.
func (h *CartHandler) AddToWishlist(c echo.Context) error {
	input, err := h.addLineInput(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	line, err := h.cartUC.AddToWishlist(c.Request().Context(), input)
	if errors.Is(err, domainerrors.ErrOutOfStock) {
		return response.Empty(c, domainerrors.ErrOutOfStock.Message())
	}
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, line)
}

// RemoveFromCart deletes a line and returns the remaining cart.
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	key, err := sessionKey(c)
	if err != nil {
		return err
	}
	lineID, err := pathID(c, "line_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.cartUC.RemoveFromCart(c.Request().Context(), key, lineID); err != nil {
		return response.HandleAppError(c, err)
	}

	return h.Cart(c)
}

// PlusQuantity adds one to a line and returns the cart.
func (h *CartHandler) PlusQuantity(c echo.Context) error {
	return h.adjust(c, 1)
}

// MinusQuantity removes one from a line and returns the cart.
func (h *CartHandler) MinusQuantity(c echo.Context) error {
	return h.adjust(c, -1)
}

func (h *CartHandler) adjust(c echo.Context, delta int) error {
	key, err := sessionKey(c)
	if err != nil {
		return err
	}
	lineID, err := pathID(c, "line_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if _, err := h.cartUC.AdjustQuantity(c.Request().Context(), key, lineID, delta); err != nil {
		return response.HandleAppError(c, err)
	}

	return h.Cart(c)
}

// addLineInput reads the item, optional stock unit ("color") and quantity (default 1).
func (h *CartHandler) addLineInput(c echo.Context) (*usecase.AddLineInput, error) {
	key, err := sessionKey(c)
	if err != nil {
		return nil, err
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return nil, err
	}

	input := &usecase.AddLineInput{
		SessionKey: key,
		ItemID:     itemID,
		Quantity:   1,
	}

	if raw := c.QueryParam("color"); raw != "" {
		unitID, err := parseUintParam(raw)
		if err != nil {
			return nil, domainerrors.ErrStockUnitNotFound
		}
		input.StockUnitID = &unitID
	}

	if raw := c.QueryParam("quantity"); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			return nil, domainerrors.ErrInvalidQuantity
		}
		input.Quantity = quantity
	}

	return input, nil
}
