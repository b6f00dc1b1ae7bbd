package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrDuplicateReview is returned when (item, email) already has a review.
var ErrDuplicateReview = errors.New("review already exists for item and email")

// ReviewRepository defines review persistence.
type ReviewRepository interface {
	// ListByItem returns the reviews of an item, newest first.
	ListByItem(ctx context.Context, itemID uint) ([]*entity.Review, error)

	// ExistsForEmail reports whether the email already reviewed the item.
	ExistsForEmail(ctx context.Context, itemID uint, email string) (bool, error)

	// Create persists a review. It returns ErrDuplicateReview on the (item, email) constraint.
	Create(ctx context.Context, review *entity.Review) error
}
