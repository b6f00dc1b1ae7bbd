package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements the repository.ReviewRepository interface.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{
		db: db,
	}
}

// ListByItem returns the item's reviews, newest first.
func (repo *reviewRepository) ListByItem(ctx context.Context, itemID uint) ([]*entity.Review, error) {
	var reviewModels []*model.ReviewModel
	if err := repo.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("date_added DESC, id DESC").
		Find(&reviewModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews by item")
	}

	reviews := make([]*entity.Review, 0, len(reviewModels))
	for _, reviewM := range reviewModels {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return reviews, nil
}

// ExistsForEmail reports whether the email already reviewed the item.
func (repo *reviewRepository) ExistsForEmail(ctx context.Context, itemID uint, email string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("item_id = ? AND email = ?", itemID, email).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check existing review")
	}

	return count > 0, nil
}

// Create persists a review.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReview
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrItemNotFound
		}

		return translateWriteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.DateAdded = reviewM.DateAdded

	return nil
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:        data.ID,
		ItemID:    data.ItemID,
		Name:      data.Name,
		Email:     data.Email,
		Text:      data.Text,
		Rating:    data.Rating,
		DateAdded: data.DateAdded,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	return &model.ReviewModel{
		ID:        data.ID,
		ItemID:    data.ItemID,
		Name:      data.Name,
		Email:     data.Email,
		Text:      data.Text,
		Rating:    data.Rating,
		DateAdded: data.DateAdded,
	}
}
