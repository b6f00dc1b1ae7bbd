package postgres

import (
	"context"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"gorm.io/gorm"
)

type txManager struct {
	db *gorm.DB
}

// NewTransactionManager runs units of work on db.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &txManager{db: db}
}

// Execute commits when fn returns nil and rolls back otherwise, including
// when fn panics. fn's error is returned unchanged so callers can match
// domain errors.
func (m *txManager) Execute(ctx context.Context, fn func(repos repository.RepositoryFactory) error) error {
	var fnErr error

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(txRepos{tx: tx})

		return fnErr
	})

	switch {
	case err == nil:
		return nil
	case fnErr != nil && errors.Is(err, fnErr):
		return fnErr
	case fnErr != nil:
		return errors.Join(fnErr, errors.Wrap(err, "rollback"))
	default:
		return errors.Wrap(err, "transaction")
	}
}

// txRepos hands out repositories sharing one transaction.
type txRepos struct {
	tx *gorm.DB
}

func (r txRepos) CatalogRepo() repository.CatalogRepository   { return NewCatalogRepository(r.tx) }
func (r txRepos) ReviewRepo() repository.ReviewRepository     { return NewReviewRepository(r.tx) }
func (r txRepos) CartRepo() repository.CartRepository         { return NewCartRepository(r.tx) }
func (r txRepos) WishlistRepo() repository.WishlistRepository { return NewWishlistRepository(r.tx) }
func (r txRepos) OrderRepo() repository.OrderRepository       { return NewOrderRepository(r.tx) }
