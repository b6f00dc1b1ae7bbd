package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// UpsertLine inserts the line or adds to the quantity of the session's active line
// for the same stock unit. The conflict target is the partial unique index.
func (repo *cartRepository) UpsertLine(ctx context.Context, sessionKey string, stockUnitID uint, quantity int) (*entity.CartLine, error) {
	lineM := &model.CartLineModel{
		StockUnitID: stockUnitID,
		Quantity:    quantity,
		SessionKey:  sessionKey,
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "session_key"}, {Name: "stock_unit_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: model.ActiveCartLineWhere}}},
			DoUpdates: clause.Set{
				{Column: clause.Column{Name: "quantity"}, Value: gorm.Expr("cart_lines.quantity + excluded.quantity")},
				{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("excluded.updated_at")},
			},
		}).
		Create(lineM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return nil, repository.ErrStockUnitNotFound
		}

		return nil, translateWriteError(err, "failed to upsert cart line")
	}

	var stored model.CartLineModel
	if err := repo.withLineAssociations(ctx).
		Where("session_key = ? AND stock_unit_id = ? AND "+model.ActiveCartLineWhere, sessionKey, stockUnitID).
		First(&stored).Error; err != nil {
		return nil, errors.Wrap(err, "failed to reload cart line")
	}

	return toCartLineDomain(&stored), nil
}

// FindLineByID retrieves a line with its stock unit, item and color.
func (repo *cartRepository) FindLineByID(ctx context.Context, id uint) (*entity.CartLine, error) {
	var lineM model.CartLineModel
	if err := repo.withLineAssociations(ctx).Where("id = ?", id).First(&lineM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartLineNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart line by ID")
	}

	return toCartLineDomain(&lineM), nil
}

// ListActiveLines returns the session's non-ordered lines, oldest first.
func (repo *cartRepository) ListActiveLines(ctx context.Context, sessionKey string) ([]*entity.CartLine, error) {
	var lineModels []*model.CartLineModel
	if err := repo.withLineAssociations(ctx).
		Where("session_key = ? AND "+model.ActiveCartLineWhere, sessionKey).
		Order("id ASC").
		Find(&lineModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list active cart lines")
	}

	lines := make([]*entity.CartLine, 0, len(lineModels))
	for _, lineM := range lineModels {
		lines = append(lines, toCartLineDomain(lineM))
	}

	return lines, nil
}

// AdjustQuantity adds delta to an active line, optionally keeping the result >= *minResult.
func (repo *cartRepository) AdjustQuantity(ctx context.Context, id uint, delta int, minResult *int) (bool, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.CartLineModel{}).
		Where("id = ? AND "+model.ActiveCartLineWhere, id)
	if minResult != nil {
		query = query.Where("quantity + ? >= ?", delta, *minResult)
	}

	result := query.Updates(map[string]any{
		"quantity": gorm.Expr("quantity + ?", delta),
	})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to adjust cart line quantity")
	}

	return result.RowsAffected > 0, nil
}

// DeleteActiveLine removes an active line.
func (repo *cartRepository) DeleteActiveLine(ctx context.Context, id uint) (bool, error) {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND "+model.ActiveCartLineWhere, id).
		Delete(&model.CartLineModel{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to delete cart line")
	}

	return result.RowsAffected > 0, nil
}

// MarkOrdered flips an active line to ordered. A concurrent checkout that got there first leaves 0 rows.
func (repo *cartRepository) MarkOrdered(ctx context.Context, id uint) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.CartLineModel{}).
		Where("id = ? AND "+model.ActiveCartLineWhere, id).
		Update("ordered", true)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to mark cart line ordered")
	}

	return result.RowsAffected > 0, nil
}

func (repo *cartRepository) withLineAssociations(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("StockUnit").
		Preload("StockUnit.Item").
		Preload("StockUnit.Color")
}

func toCartLineDomain(data *model.CartLineModel) *entity.CartLine {
	return &entity.CartLine{
		ID:          data.ID,
		StockUnitID: data.StockUnitID,
		Quantity:    data.Quantity,
		SessionKey:  data.SessionKey,
		Ordered:     data.Ordered,
		StockUnit:   toStockUnitDomain(data.StockUnit),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
