package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// wishlistRepository implements the repository.WishlistRepository interface.
type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository is the constructor for wishlistRepository.
func NewWishlistRepository(db *gorm.DB) repository.WishlistRepository {
	return &wishlistRepository{
		db: db,
	}
}

// Create inserts a wishlist line. Repeated adds produce separate lines.
func (repo *wishlistRepository) Create(ctx context.Context, line *entity.WishlistLine) error {
	lineM := &model.WishlistLineModel{
		StockUnitID: line.StockUnitID,
		Quantity:    line.Quantity,
		SessionKey:  line.SessionKey,
	}

	if err := repo.db.WithContext(ctx).Create(lineM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrStockUnitNotFound
		}

		return translateWriteError(err, "failed to create wishlist line")
	}

	line.ID = lineM.ID
	line.CreatedAt = lineM.CreatedAt

	return nil
}

// ListBySession returns every wishlist line of the session, oldest first.
func (repo *wishlistRepository) ListBySession(ctx context.Context, sessionKey string) ([]*entity.WishlistLine, error) {
	var lineModels []*model.WishlistLineModel
	if err := repo.db.WithContext(ctx).
		Preload("StockUnit").
		Preload("StockUnit.Item").
		Preload("StockUnit.Color").
		Where("session_key = ?", sessionKey).
		Order("id ASC").
		Find(&lineModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list wishlist lines")
	}

	lines := make([]*entity.WishlistLine, 0, len(lineModels))
	for _, lineM := range lineModels {
		lines = append(lines, &entity.WishlistLine{
			ID:          lineM.ID,
			StockUnitID: lineM.StockUnitID,
			Quantity:    lineM.Quantity,
			SessionKey:  lineM.SessionKey,
			StockUnit:   toStockUnitDomain(lineM.StockUnit),
			CreatedAt:   lineM.CreatedAt,
		})
	}

	return lines, nil
}
