package postgres

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/dbtest"
	"storefront/internal/infra/persistence/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type cartFixture struct {
	db   *gorm.DB
	repo repository.CartRepository
	seed *dbtest.Seeder
	unit *model.StockUnitModel
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	db := dbtest.New(t)
	seed := dbtest.NewSeeder(t, db)
	item := seed.Item(seed.Category("shoes"), seed.Brand("acme"), "runner", "10")
	seed.Discount(item, "8")

	return &cartFixture{
		db:   db,
		repo: NewCartRepository(db),
		seed: seed,
		unit: seed.Stock(item, seed.Color("red"), 5),
	}
}

func TestCartRepository_UpsertLineMergesActiveLine(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture(t)

	first, err := f.repo.UpsertLine(ctx, "s1", f.unit.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Quantity)
	assert.Equal(t, "runner", first.ItemName())
	assert.Equal(t, "8", first.UnitPrice().String())

	second, err := f.repo.UpsertLine(ctx, "s1", f.unit.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	other, err := f.repo.UpsertLine(ctx, "s2", f.unit.ID, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	lines, err := f.repo.ListActiveLines(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "24", entity.CartTotal(lines).String())
}

func TestCartRepository_OrderedLineStartsNewLine(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture(t)

	line, err := f.repo.UpsertLine(ctx, "s1", f.unit.ID, 2)
	require.NoError(t, err)

	marked, err := f.repo.MarkOrdered(ctx, line.ID)
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = f.repo.MarkOrdered(ctx, line.ID)
	require.NoError(t, err)
	assert.False(t, marked, "second mark must not affect rows")

	fresh, err := f.repo.UpsertLine(ctx, "s1", f.unit.ID, 1)
	require.NoError(t, err)
	assert.NotEqual(t, line.ID, fresh.ID)
	assert.Equal(t, 1, fresh.Quantity)

	stored, err := f.repo.FindLineByID(ctx, line.ID)
	require.NoError(t, err)
	assert.True(t, stored.Ordered)
	assert.Equal(t, 2, stored.Quantity)

	lines, err := f.repo.ListActiveLines(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, fresh.ID, lines[0].ID)
}

func TestCartRepository_AdjustAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture(t)
	floor := 1

	line, err := f.repo.UpsertLine(ctx, "s1", f.unit.ID, 1)
	require.NoError(t, err)

	changed, err := f.repo.AdjustQuantity(ctx, line.ID, 1, &floor)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.repo.AdjustQuantity(ctx, line.ID, -1, &floor)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.repo.AdjustQuantity(ctx, line.ID, -1, &floor)
	require.NoError(t, err)
	assert.False(t, changed, "floor blocks going below one")

	changed, err = f.repo.AdjustQuantity(ctx, line.ID, -2, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	stored, err := f.repo.FindLineByID(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, stored.Quantity)

	deleted, err := f.repo.DeleteActiveLine(ctx, line.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = f.repo.FindLineByID(ctx, line.ID)
	assert.ErrorIs(t, err, repository.ErrCartLineNotFound)
}

func TestCartRepository_UpsertUnknownStockUnit(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.repo.UpsertLine(context.Background(), "s1", 999, 1)

	assert.ErrorIs(t, err, repository.ErrStockUnitNotFound)
}

func TestWishlistRepository_AlwaysInserts(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	seed := dbtest.NewSeeder(t, db)
	unit := seed.Stock(seed.Item(seed.Category("c"), seed.Brand("b"), "hat", "12"), seed.Color("red"), 1)
	repo := NewWishlistRepository(db)

	for range 2 {
		require.NoError(t, repo.Create(ctx, &entity.WishlistLine{StockUnitID: unit.ID, Quantity: 1, SessionKey: "s1"}))
	}
	require.NoError(t, repo.Create(ctx, &entity.WishlistLine{StockUnitID: unit.ID, Quantity: 1, SessionKey: "s2"}))

	lines, err := repo.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "hat", lines[0].StockUnit.Item.Name)
	assert.Equal(t, "12", lines[1].LineTotal().String())
}

func TestReviewRepository_UniquePerItemAndEmail(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	seed := dbtest.NewSeeder(t, db)
	item := seed.Item(seed.Category("c"), seed.Brand("b"), "hat", "12")
	repo := NewReviewRepository(db)

	review := &entity.Review{ItemID: item.ID, Name: "Ann", Email: "ann@example.com", Text: "nice", Rating: 4}
	require.NoError(t, repo.Create(ctx, review))
	assert.NotZero(t, review.ID)

	exists, err := repo.ExistsForEmail(ctx, item.ID, "ann@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	dup := &entity.Review{ItemID: item.ID, Name: "Ann", Email: "ann@example.com", Text: "again", Rating: 5}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicateReview)

	reviews, err := repo.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
}

func TestOrderRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture(t)

	line, err := f.repo.UpsertLine(ctx, "s1", f.unit.ID, 2)
	require.NoError(t, err)

	repo := NewOrderRepository(f.db)
	order := &entity.Order{
		CartLineID: line.ID,
		Contact:    entity.Contact{Name: "Ann", Email: "ann@example.com", Address: "Main St 1", Phone: "555"},
	}
	require.NoError(t, repo.Create(ctx, order))
	assert.NotZero(t, order.ID)

	orders, err := repo.ListByCartLines(ctx, []uint{line.ID})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Product: runner, quantity: 2, price: 8.00, with total price: 16.00", orders[0].Summary())

	empty, err := repo.ListByCartLines(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
