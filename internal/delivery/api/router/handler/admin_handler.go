package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler serves catalog management behind the admin API key.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// NamedRequest creates a category, brand or color.
type NamedRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Image *string `json:"image"`
	Code  *string `json:"code" validate:"omitempty,max=20"`
}

// CreateItemRequest creates an item.
type CreateItemRequest struct {
	CategoryID    uint             `json:"category_id" validate:"required"`
	BrandID       uint             `json:"brand_id" validate:"required"`
	Name          string           `json:"name" validate:"required,max=100"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	Description   string           `json:"description"`
	Details       string           `json:"details"`
	MainImage     string           `json:"main_image"`
}

// AddStockRequest creates the stock unit of an item in one color.
type AddStockRequest struct {
	ColorID  uint `json:"color_id" validate:"required"`
	Quantity int  `json:"quantity"`
}

func (h *AdminHandler) bindNamed(c echo.Context) (*NamedRequest, error) {
	var req NamedRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	return &req, nil
}

// CreateCategory handles POST /admin/categories.
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	req, err := h.bindNamed(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	category := &entity.Category{Name: req.Name}
	if req.Image != nil {
		category.Image = *req.Image
	}
	if err := h.adminUC.CreateCategory(c.Request().Context(), category); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, category)
}

// CreateBrand handles POST /admin/brands.
func (h *AdminHandler) CreateBrand(c echo.Context) error {
	req, err := h.bindNamed(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	brand := &entity.Brand{Name: req.Name, Image: req.Image}
	if err := h.adminUC.CreateBrand(c.Request().Context(), brand); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, brand)
}

// CreateColor handles POST /admin/colors.
func (h *AdminHandler) CreateColor(c echo.Context) error {
	req, err := h.bindNamed(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	color := &entity.Color{Name: req.Name, Code: req.Code}
	if err := h.adminUC.CreateColor(c.Request().Context(), color); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, color)
}

// CreateItem handles POST /admin/items.
func (h *AdminHandler) CreateItem(c echo.Context) error {
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	item := &entity.Item{
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		Name:          req.Name,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Description:   req.Description,
		Details:       req.Details,
		MainImage:     req.MainImage,
	}
	if err := h.adminUC.CreateItem(c.Request().Context(), item); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, item)
}

// AddItemImage handles the multipart upload POST /admin/items/:id/images (field "image").
func (h *AdminHandler) AddItemImage(c echo.Context) error {
	itemID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Multipart field \"image\" is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "open uploaded image")
	}
	defer file.Close()

	image, err := h.adminUC.AddItemImage(c.Request().Context(), itemID, &usecase.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Body:        file,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, image)
}

// AddStock handles POST /admin/items/:id/stock.
func (h *AdminHandler) AddStock(c echo.Context) error {
	itemID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req AddStockRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid stock input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	unit := &entity.StockUnit{ItemID: itemID, ColorID: req.ColorID, Quantity: req.Quantity}
	if err := h.adminUC.AddStock(c.Request().Context(), unit); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, unit)
}

// DeleteCategory handles DELETE /admin/categories/:id and cascades to its items.
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	categoryID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.adminUC.DeleteCategory(c.Request().Context(), categoryID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
