package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

// ReviewHandler handles review submission.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		logger:   params.Logger,
	}
}

// CreateReviewRequest is the review form. Rating bounds are enforced by the usecase.
type CreateReviewRequest struct {
	Name   string      `json:"name" form:"name" validate:"required,max=50"`
	Email  string      `json:"email" form:"email" validate:"required,email,max=254"`
	Text   string      `json:"text" form:"text" validate:"required"`
	Rating RatingValue `json:"rating" form:"rating"`
}

// RatingValue keeps the submitted rating verbatim so a malformed value is
// reported as an invalid rating rather than an unreadable form. JSON bodies
// may carry it as a number or a string.
type RatingValue string

// UnmarshalJSON implements json.Unmarshaler.
func (r *RatingValue) UnmarshalJSON(b []byte) error {
	*r = RatingValue(strings.Trim(string(b), `"`))

	return nil
}

// Int parses the rating as a whole number.
func (r RatingValue) Int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(r)))
	if err != nil {
		return 0, domainerrors.ErrInvalidRating
	}

	return n, nil
}

// CreateReview records a review for the item in the path.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid review form")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}
	rating, err := req.Rating.Int()
	if err != nil {
		return response.HandleAppError(c, err)
	}

	review, err := h.reviewUC.SubmitReview(c.Request().Context(), &usecase.SubmitReviewInput{
		ItemID: itemID,
		Name:   req.Name,
		Email:  req.Email,
		Text:   req.Text,
		Rating: rating,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, review)
}
