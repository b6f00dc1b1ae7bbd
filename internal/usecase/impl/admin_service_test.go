package impl

import (
	"context"
	"io"
	"strings"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/infra/persistence/model"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestAdminService(t *testing.T) (*storeFixture, usecase.AdminUsecase, *mockSvc.MockMediaStore) {
	t.Helper()
	f := newStoreFixture(t)
	mediaStore := mockSvc.NewMockMediaStore(t)

	return f, NewAdminService(AdminServiceParams{
		CatalogRepo: f.catalogRepo,
		MediaStore:  mediaStore,
		Logger:      newDiscardLogger(),
	}), mediaStore
}

func TestAdminService_CreateItem(t *testing.T) {
	ctx := context.Background()
	f, srv, _ := createTestAdminService(t)

	discount := decimal.NewFromInt(15)
	item := &entity.Item{
		CategoryID:    f.category.ID,
		BrandID:       f.brand.ID,
		Name:          "boot",
		Price:         decimal.NewFromInt(20),
		DiscountPrice: &discount,
		MainImage:     "boot.png",
	}
	require.NoError(t, srv.CreateItem(ctx, item))
	assert.NotZero(t, item.ID)
	assert.False(t, item.DateAdded.IsZero())

	stored, err := f.catalogRepo.FindItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "15", stored.UnitPrice().String())
}

func TestAdminService_CreateItemRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	f, srv, _ := createTestAdminService(t)

	tooHigh := decimal.NewFromInt(30)
	roundsToPrice := decimal.RequireFromString("9.999")
	tests := []struct {
		name    string
		item    entity.Item
		wantErr error
	}{
		{
			name:    "non-positive price",
			item:    entity.Item{CategoryID: f.category.ID, BrandID: f.brand.ID, Name: "x", Price: decimal.Zero},
			wantErr: domainerrors.ErrInvalidItem,
		},
		{
			name:    "discount not below price",
			item:    entity.Item{CategoryID: f.category.ID, BrandID: f.brand.ID, Name: "x", Price: decimal.NewFromInt(20), DiscountPrice: &tooHigh},
			wantErr: domainerrors.ErrInvalidItem,
		},
		{
			name:    "discount finer than a cent",
			item:    entity.Item{CategoryID: f.category.ID, BrandID: f.brand.ID, Name: "x", Price: decimal.NewFromInt(10), DiscountPrice: &roundsToPrice},
			wantErr: domainerrors.ErrInvalidItem,
		},
		{
			name:    "price rounds to zero",
			item:    entity.Item{CategoryID: f.category.ID, BrandID: f.brand.ID, Name: "x", Price: decimal.RequireFromString("0.004")},
			wantErr: domainerrors.ErrInvalidItem,
		},
		{
			name:    "unknown category",
			item:    entity.Item{CategoryID: 999, BrandID: f.brand.ID, Name: "x", Price: decimal.NewFromInt(20)},
			wantErr: domainerrors.ErrCategoryNotFound,
		},
		{
			name:    "unknown brand",
			item:    entity.Item{CategoryID: f.category.ID, BrandID: 999, Name: "x", Price: decimal.NewFromInt(20)},
			wantErr: domainerrors.ErrBrandNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := srv.CreateItem(ctx, &tt.item)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestAdminService_CreateNamedRecords(t *testing.T) {
	ctx := context.Background()
	_, srv, _ := createTestAdminService(t)

	require.NoError(t, srv.CreateCategory(ctx, &entity.Category{Name: "bags", Image: "bags.png"}))
	require.NoError(t, srv.CreateBrand(ctx, &entity.Brand{Name: "zenith"}))
	require.NoError(t, srv.CreateColor(ctx, &entity.Color{Name: "teal"}))

	assert.True(t, errors.Is(srv.CreateCategory(ctx, &entity.Category{Name: " "}), domainerrors.ErrValidationFailed))
	assert.True(t, errors.Is(srv.CreateBrand(ctx, &entity.Brand{}), domainerrors.ErrValidationFailed))
	assert.True(t, errors.Is(srv.CreateColor(ctx, &entity.Color{}), domainerrors.ErrValidationFailed))
}

func TestAdminService_AddStock(t *testing.T) {
	ctx := context.Background()
	f, srv, _ := createTestAdminService(t)

	green := f.seed.Color("green")
	unit := &entity.StockUnit{ItemID: f.item.ID, ColorID: green.ID, Quantity: 4}
	require.NoError(t, srv.AddStock(ctx, unit))
	assert.NotZero(t, unit.ID)
	require.NotNil(t, unit.Color)
	assert.Equal(t, "green", unit.Color.Name)

	dup := &entity.StockUnit{ItemID: f.item.ID, ColorID: green.ID, Quantity: 1}
	assert.True(t, errors.Is(srv.AddStock(ctx, dup), domainerrors.ErrStockUnitExists))

	assert.True(t, errors.Is(srv.AddStock(ctx, &entity.StockUnit{ItemID: f.item.ID, ColorID: green.ID, Quantity: -1}), domainerrors.ErrInvalidQuantity))
	assert.True(t, errors.Is(srv.AddStock(ctx, &entity.StockUnit{ItemID: 999, ColorID: green.ID}), domainerrors.ErrItemNotFound))
	assert.True(t, errors.Is(srv.AddStock(ctx, &entity.StockUnit{ItemID: f.item.ID, ColorID: 999}), domainerrors.ErrColorNotFound))
}

func TestAdminService_AddItemImage(t *testing.T) {
	ctx := context.Background()
	f, srv, mediaStore := createTestAdminService(t)

	mediaStore.EXPECT().
		Put(mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "items/") && strings.HasSuffix(key, ".jpg")
		}), mock.Anything, "image/jpeg").
		RunAndReturn(func(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
			return key, nil
		}).
		Once()

	image, err := srv.AddItemImage(ctx, f.item.ID, &usecase.UploadInput{
		Filename:    "Side.JPG",
		ContentType: "image/jpeg",
		Body:        strings.NewReader("jpeg"),
	})
	require.NoError(t, err)
	assert.NotZero(t, image.ID)
	assert.Equal(t, f.item.ID, image.ItemID)

	images, err := f.catalogRepo.ListItemImages(ctx, f.item.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, image.Image, images[0].Image)

	_, err = srv.AddItemImage(ctx, 999, &usecase.UploadInput{Filename: "a.png", Body: strings.NewReader("")})
	assert.True(t, errors.Is(err, domainerrors.ErrItemNotFound))
}

func TestAdminService_DeleteCategoryCascades(t *testing.T) {
	ctx := context.Background()
	f, srv, _ := createTestAdminService(t)

	require.NoError(t, srv.DeleteCategory(ctx, f.category.ID))

	var items int64
	require.NoError(t, f.db.Model(&model.ItemModel{}).Count(&items).Error)
	assert.Zero(t, items)

	var units int64
	require.NoError(t, f.db.Model(&model.StockUnitModel{}).Count(&units).Error)
	assert.Zero(t, units)

	assert.True(t, errors.Is(srv.DeleteCategory(ctx, f.category.ID), domainerrors.ErrCategoryNotFound))
}
