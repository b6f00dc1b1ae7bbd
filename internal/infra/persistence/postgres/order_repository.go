package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists an order snapshot.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCartLineNotFound
		}

		return translateWriteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt

	return nil
}

// ListByCartLines returns the orders referencing the lines, by ascending ID.
func (repo *orderRepository) ListByCartLines(ctx context.Context, cartLineIDs []uint) ([]*entity.Order, error) {
	if len(cartLineIDs) == 0 {
		return []*entity.Order{}, nil
	}

	var orderModels []*model.OrderModel
	if err := repo.db.WithContext(ctx).
		Preload("CartLine").
		Preload("CartLine.StockUnit").
		Preload("CartLine.StockUnit.Item").
		Preload("CartLine.StockUnit.Color").
		Where("cart_line_id IN ?", cartLineIDs).
		Order("id ASC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by cart lines")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

func toOrderDomain(data *model.OrderModel) *entity.Order {
	order := &entity.Order{
		ID:         data.ID,
		CartLineID: data.CartLineID,
		Contact: entity.Contact{
			Name:    data.Name,
			Email:   data.Email,
			Address: data.Address,
			Phone:   data.PhoneNumber,
			Notes:   data.Notes,
		},
		CreatedAt: data.CreatedAt,
	}
	if data.CartLine != nil {
		order.CartLine = toCartLineDomain(data.CartLine)
	}

	return order
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		ID:          data.ID,
		CartLineID:  data.CartLineID,
		Name:        data.Contact.Name,
		Email:       data.Contact.Email,
		Address:     data.Contact.Address,
		PhoneNumber: data.Contact.Phone,
		Notes:       data.Contact.Notes,
		CreatedAt:   data.CreatedAt,
	}
}
