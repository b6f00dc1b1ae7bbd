package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	catalogRepo repository.CatalogRepository
	reviewRepo  repository.ReviewRepository
	now         func() time.Time
	logger      *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	ReviewRepo  repository.ReviewRepository
	Logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		catalogRepo: params.CatalogRepo,
		reviewRepo:  params.ReviewRepo,
		now:         time.Now,
		logger:      params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitReview validates and records a review.
func (srv *reviewService) SubmitReview(ctx context.Context, input *usecase.SubmitReviewInput) (*entity.Review, error) {
	if !entity.ValidRating(input.Rating) {
		return nil, domainerrors.ErrInvalidRating
	}

	if _, err := srv.catalogRepo.FindItemByID(ctx, input.ItemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	email := strings.TrimSpace(input.Email)
	exists, err := srv.reviewRepo.ExistsForEmail(ctx, input.ItemID, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existing review")
	}
	if exists {
		return nil, domainerrors.ErrDuplicateReview
	}

	review := &entity.Review{
		ItemID:    input.ItemID,
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Text:      input.Text,
		Rating:    input.Rating,
		DateAdded: srv.now(),
	}

	// The unique index still catches a concurrent submit that passed the check above.
	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateReview):
			return nil, domainerrors.ErrDuplicateReview
		case errors.Is(err, repository.ErrItemNotFound):
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to create review")
	}

	srv.log(ctx).Info("Review submitted",
		slog.Uint64("item_id", uint64(review.ItemID)),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

// ItemReviews lists an item's reviews with their summary.
func (srv *reviewService) ItemReviews(ctx context.Context, itemID uint) (*usecase.ItemReviews, error) {
	if _, err := srv.catalogRepo.FindItemByID(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	reviews, err := srv.reviewRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return &usecase.ItemReviews{
		Reviews: reviews,
		Rating:  entity.SummarizeRatings(reviews),
	}, nil
}
