package impl

import (
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/dbtest"
	"storefront/internal/infra/persistence/model"
	"storefront/internal/infra/persistence/postgres"

	"gorm.io/gorm"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// storeFixture is a migrated database with one item in two colors.
type storeFixture struct {
	db   *gorm.DB
	seed *dbtest.Seeder

	catalogRepo  repository.CatalogRepository
	reviewRepo   repository.ReviewRepository
	cartRepo     repository.CartRepository
	wishlistRepo repository.WishlistRepository
	txManager    repository.TransactionManager

	category *model.CategoryModel
	brand    *model.BrandModel
	item     *model.ItemModel
	red      *model.StockUnitModel
	blue     *model.StockUnitModel
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	db := dbtest.New(t)
	seed := dbtest.NewSeeder(t, db)

	category := seed.Category("shoes")
	brand := seed.Brand("acme")
	item := seed.Item(category, brand, "runner", "10")
	seed.Discount(item, "8")

	return &storeFixture{
		db:           db,
		seed:         seed,
		catalogRepo:  postgres.NewCatalogRepository(db),
		reviewRepo:   postgres.NewReviewRepository(db),
		cartRepo:     postgres.NewCartRepository(db),
		wishlistRepo: postgres.NewWishlistRepository(db),
		txManager:    postgres.NewTransactionManager(db),
		category:     category,
		brand:        brand,
		item:         item,
		red:          seed.Stock(item, seed.Color("red"), 5),
		blue:         seed.Stock(item, seed.Color("blue"), 0),
	}
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Listing:  &config.ListingConfig{PageSize: 2},
		Cart:     &config.CartConfig{},
		Checkout: &config.CheckoutConfig{},
		Notifier: &config.NotifierConfig{},
	}

	return cfg
}
