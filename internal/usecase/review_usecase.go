package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// SubmitReviewInput holds a review submitted for an item.
type SubmitReviewInput struct {
	ItemID uint
	Name   string
	Email  string
	Text   string
	Rating int
}

// ItemReviews is the list of an item's reviews with their summary.
type ItemReviews struct {
	Reviews []*entity.Review     `json:"reviews"`
	Rating  entity.RatingSummary `json:"rating"`
}

// ReviewUsecase defines review submission and aggregation.
type ReviewUsecase interface {
	// SubmitReview records a review. One review per (item, email).
	SubmitReview(ctx context.Context, input *SubmitReviewInput) (*entity.Review, error)

	// ItemReviews returns the item's reviews, newest first, and their rating summary.
	ItemReviews(ctx context.Context, itemID uint) (*ItemReviews, error)
}
