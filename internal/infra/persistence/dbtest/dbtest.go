// Package dbtest opens migrated in-memory SQLite databases for tests and seeds catalog rows.
package dbtest

import (
	"testing"
	"time"

	"storefront/internal/infra/persistence/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dsn keeps foreign keys on so ON DELETE CASCADE behaves like PostgreSQL.
const dsn = "file::memory:?_foreign_keys=on"

// New returns a fresh, migrated database. Each call is isolated.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection, one in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))

	return db
}

// Seeder inserts catalog rows with sensible defaults.
type Seeder struct {
	t  testing.TB
	db *gorm.DB
}

// NewSeeder binds a seeder to db.
func NewSeeder(t testing.TB, db *gorm.DB) *Seeder {
	return &Seeder{t: t, db: db}
}

// Category inserts a category.
func (s *Seeder) Category(name string) *model.CategoryModel {
	s.t.Helper()
	row := &model.CategoryModel{Name: name, Image: name + ".png"}
	require.NoError(s.t, s.db.Create(row).Error)

	return row
}

// Brand inserts a brand.
func (s *Seeder) Brand(name string) *model.BrandModel {
	s.t.Helper()
	row := &model.BrandModel{Name: name}
	require.NoError(s.t, s.db.Create(row).Error)

	return row
}

// Color inserts a color.
func (s *Seeder) Color(name string) *model.ColorModel {
	s.t.Helper()
	row := &model.ColorModel{Name: name}
	require.NoError(s.t, s.db.Create(row).Error)

	return row
}

// Item inserts an item priced at price (a decimal string) and added now.
func (s *Seeder) Item(category *model.CategoryModel, brand *model.BrandModel, name, price string) *model.ItemModel {
	s.t.Helper()
	row := &model.ItemModel{
		CategoryID: category.ID,
		BrandID:    brand.ID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		MainImage:  name + ".png",
		DateAdded:  time.Now(),
	}
	require.NoError(s.t, s.db.Create(row).Error)

	return row
}

// Discount sets an item's discount price.
func (s *Seeder) Discount(item *model.ItemModel, price string) {
	s.t.Helper()
	discount := decimal.RequireFromString(price)
	require.NoError(s.t, s.db.Model(item).Update("discount_price", discount).Error)
	item.DiscountPrice = &discount
}

// Stock inserts a stock unit.
func (s *Seeder) Stock(item *model.ItemModel, color *model.ColorModel, quantity int) *model.StockUnitModel {
	s.t.Helper()
	row := &model.StockUnitModel{ItemID: item.ID, ColorID: color.ID, Quantity: quantity}
	require.NoError(s.t, s.db.Create(row).Error)

	return row
}

// Quantity reads a stock unit's current quantity.
func (s *Seeder) Quantity(unit *model.StockUnitModel) int {
	s.t.Helper()
	var row model.StockUnitModel
	require.NoError(s.t, s.db.First(&row, unit.ID).Error)

	return row.Quantity
}
