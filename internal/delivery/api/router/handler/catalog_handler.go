package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	ReviewUC  usecase.ReviewUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves the read side of the shop.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	reviewUC  usecase.ReviewUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		reviewUC:  params.ReviewUC,
		logger:    params.Logger,
	}
}

// Home lists every item and the categories with their stock counters.
func (h *CatalogHandler) Home(c echo.Context) error {
	out, err := h.catalogUC.Home(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}

// ItemDetail returns one item with everything its page shows.
func (h *CatalogHandler) ItemDetail(c echo.Context) error {
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.catalogUC.ItemDetail(c.Request().Context(), itemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}

// ItemReviews returns an item's reviews and rating summary.
func (h *CatalogHandler) ItemReviews(c echo.Context) error {
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.reviewUC.ItemReviews(c.Request().Context(), itemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}

// ItemQRCode renders a PNG linking to the item page.
func (h *CatalogHandler) ItemQRCode(c echo.Context) error {
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.catalogUC.ItemQRCode(c.Request().Context(), itemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// Store returns one page of the filtered listing.
func (h *CatalogHandler) Store(c echo.Context) error {
	query, err := parseStoreQuery(c.QueryParams())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.catalogUC.Store(c.Request().Context(), query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}

// parseStoreQuery reads the listing filters. Ids are taken from the repeated
// category[]/brand[] keys and from legacy category-<id>/brand-<id> keys.
func parseStoreQuery(values url.Values) (*usecase.StoreQuery, error) {
	query := &usecase.StoreQuery{
		Search: strings.TrimSpace(values.Get("search")),
		Page:   1,
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("page must be a positive integer")
		}
		query.Page = page
	}

	if raw := values.Get("category"); raw != "" && raw != "0" {
		id, err := parseUintParam(raw)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("category must be an id")
		}
		query.CategoryID = &id
	}

	var err error
	if query.PriceMin, err = parsePriceParam(values, "price-min"); err != nil {
		return nil, err
	}
	if query.PriceMax, err = parsePriceParam(values, "price-max"); err != nil {
		return nil, err
	}

	if query.CategoryIDs, err = parseIDList(values, "category"); err != nil {
		return nil, err
	}
	if query.BrandIDs, err = parseIDList(values, "brand"); err != nil {
		return nil, err
	}

	return query, nil
}

func parsePriceParam(values url.Values, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(key + " must be a number")
	}

	return &price, nil
}

func parseIDList(values url.Values, name string) ([]uint, error) {
	var ids []uint
	for _, raw := range values[name+"[]"] {
		id, err := parseUintParam(raw)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails(name + "[] must contain ids")
		}
		ids = append(ids, id)
	}

	prefix := name + "-"
	for key := range values {
		suffix, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}
		if id, err := parseUintParam(suffix); err == nil {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)

	return slices.Compact(ids), nil
}

func parseUintParam(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}
