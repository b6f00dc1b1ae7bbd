//go:build integration

package postgres

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storefront"),
		tcpostgres.WithUsername("storefront"),
		tcpostgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	db = Configure(db, slog.New(slog.NewTextHandler(io.Discard, nil)), false)

	require.NoError(t, Migrate(ctx, db))

	return db
}

func TestPostgres_ConcurrentDecrementNeverOversells(t *testing.T) {
	db := setupPostgres(t)
	seed := dbtest.NewSeeder(t, db)
	repo := NewCatalogRepository(db)
	unit := seed.Stock(seed.Item(seed.Category("c"), seed.Brand("b"), "item", "9.99"), seed.Color("red"), 5)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.DecrementStock(context.Background(), unit.ID, 1, false)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()

				return
			}
			assert.ErrorIs(t, err, repository.ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Zero(t, seed.Quantity(unit))
}

func TestPostgres_ConcurrentAddToCartMerges(t *testing.T) {
	db := setupPostgres(t)
	seed := dbtest.NewSeeder(t, db)
	repo := NewCartRepository(db)
	unit := seed.Stock(seed.Item(seed.Category("c"), seed.Brand("b"), "item", "9.99"), seed.Color("red"), 5)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpsertLine(context.Background(), "session", unit.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines, err := repo.ListActiveLines(context.Background(), "session")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 10, lines[0].Quantity)
	assert.Equal(t, "99.9", entity.CartTotal(lines).String())
}

func TestPostgres_TransactionRollsBackCheckoutSteps(t *testing.T) {
	ctx := context.Background()
	db := setupPostgres(t)
	seed := dbtest.NewSeeder(t, db)
	unit := seed.Stock(seed.Item(seed.Category("c"), seed.Brand("b"), "item", "5"), seed.Color("red"), 1)
	line, err := NewCartRepository(db).UpsertLine(ctx, "session", unit.ID, 1)
	require.NoError(t, err)

	err = NewTransactionManager(db).Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.OrderRepo().Create(ctx, &entity.Order{CartLineID: line.ID, Contact: entity.Contact{Name: "a", Email: "a@b.c", Address: "x", Phone: "1"}}); err != nil {
			return err
		}
		if err := factory.CatalogRepo().DecrementStock(ctx, unit.ID, 1, false); err != nil {
			return err
		}

		return factory.CatalogRepo().DecrementStock(ctx, unit.ID, 1, false)
	})
	require.ErrorIs(t, err, repository.ErrInsufficientStock)

	assert.Equal(t, 1, seed.Quantity(unit))
	orders, err := NewOrderRepository(db).ListByCartLines(ctx, []uint{line.ID})
	require.NoError(t, err)
	assert.Empty(t, orders)
}
