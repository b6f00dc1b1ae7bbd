package impl

import (
	"context"
	"testing"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/persistence/model"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testContact = entity.Contact{
	Name:    "Ada",
	Email:   "ada@example.com",
	Address: "1 Main St",
	Phone:   "555-0100",
}

type orderFixture struct {
	*storeFixture
	srv       usecase.OrderUsecase
	cart      usecase.CartUsecase
	publisher *mockSvc.MockEventPublisher
}

func createTestOrderService(t *testing.T, allowOversell bool) *orderFixture {
	t.Helper()
	f := newStoreFixture(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	cfg := newTestConfig()
	cfg.Checkout.AllowOversell = allowOversell

	return &orderFixture{
		storeFixture: f,
		srv: NewOrderService(OrderServiceParams{
			TxManager: f.txManager,
			Publisher: publisher,
			Config:    cfg,
			Logger:    newDiscardLogger(),
		}),
		cart:      createTestCartService(t, f, false),
		publisher: publisher,
	}
}

func (f *orderFixture) countOrders(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&model.OrderModel{}).Count(&count).Error)

	return count
}

func TestOrderService_PlaceOrder(t *testing.T) {
	f := createTestOrderService(t, false)
	ctx := deliverycontext.WithRequestID(context.Background(), "req-1")

	walker := f.seed.Item(f.category, f.brand, "walker", "20")
	walkerUnit := f.seed.Stock(walker, f.seed.Color("green"), 3)

	_, err := f.cart.AddToCart(ctx, &usecase.AddLineInput{SessionKey: "s1", ItemID: f.item.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = f.cart.AddToCart(ctx, &usecase.AddLineInput{SessionKey: "s1", ItemID: walker.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.cart.AddToCart(ctx, &usecase.AddLineInput{SessionKey: "s2", ItemID: walker.ID, Quantity: 1})
	require.NoError(t, err)

	var published *service.OrderNotificationEvent
	f.publisher.EXPECT().
		PublishOrderNotification(mock.Anything, mock.AnythingOfType("*service.OrderNotificationEvent")).
		Run(func(_ context.Context, event *service.OrderNotificationEvent) { published = event }).
		Return(nil).
		Once()

	out, err := f.srv.PlaceOrder(ctx, "s1", testContact)
	require.NoError(t, err)
	require.Len(t, out.Orders, 2)

	wantMessages := []string{
		"Order from Ada, email: ada@example.com, to address: 1 Main St, telephone number: 555-0100",
		"Product: runner, quantity: 2, price: 8.00, with total price: 16.00",
		"Product: walker, quantity: 1, price: 20.00, with total price: 20.00",
	}
	assert.Equal(t, wantMessages, out.Messages)

	require.NotNil(t, published)
	assert.Equal(t, "req-1", published.RequestID)
	assert.Equal(t, "s1", published.SessionKey)
	assert.Equal(t, []uint{out.Orders[0].ID, out.Orders[1].ID}, published.OrderIDs)
	assert.Equal(t, wantMessages, published.Messages)

	assert.Equal(t, 3, f.seed.Quantity(f.red))
	assert.Equal(t, 2, f.seed.Quantity(walkerUnit))

	cart, err := f.cart.ListCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	other, err := f.cart.ListCart(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, other.Lines, 1)
}

func TestOrderService_PlaceOrderEmptyCart(t *testing.T) {
	f := createTestOrderService(t, false)

	out, err := f.srv.PlaceOrder(context.Background(), "s1", testContact)
	require.NoError(t, err)
	assert.Empty(t, out.Orders)
	assert.Empty(t, out.Messages)
	f.publisher.AssertNotCalled(t, "PublishOrderNotification", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrderInsufficientStockRollsBack(t *testing.T) {
	f := createTestOrderService(t, false)
	ctx := context.Background()

	walker := f.seed.Item(f.category, f.brand, "walker", "20")
	walkerUnit := f.seed.Stock(walker, f.seed.Color("green"), 3)

	_, err := f.cart.AddToCart(ctx, &usecase.AddLineInput{SessionKey: "s1", ItemID: walker.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.cart.AddToCart(ctx, &usecase.AddLineInput{SessionKey: "s1", ItemID: f.item.ID, Quantity: 6})
	require.NoError(t, err)

	_, err = f.srv.PlaceOrder(ctx, "s1", testContact)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))

	assert.Equal(t, int64(0), f.countOrders(t))
	assert.Equal(t, 3, f.seed.Quantity(walkerUnit))
	assert.Equal(t, 5, f.seed.Quantity(f.red))

	cart, err := f.cart.ListCart(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 2)
}

func TestOrderService_PlaceOrderOversellAllowed(t *testing.T) {
	f := createTestOrderService(t, true)
	ctx := context.Background()

	_, err := f.cart.AddToCart(ctx, &usecase.AddLineInput{SessionKey: "s1", ItemID: f.item.ID, Quantity: 6})
	require.NoError(t, err)

	f.publisher.EXPECT().PublishOrderNotification(mock.Anything, mock.Anything).Return(nil).Once()

	out, err := f.srv.PlaceOrder(ctx, "s1", testContact)
	require.NoError(t, err)
	assert.Len(t, out.Orders, 1)
	assert.Equal(t, -1, f.seed.Quantity(f.red))
}

func TestOrderService_PlaceOrderPublishFailureIsSwallowed(t *testing.T) {
	f := createTestOrderService(t, false)
	ctx := context.Background()

	_, err := f.cart.AddToCart(ctx, &usecase.AddLineInput{SessionKey: "s1", ItemID: f.item.ID, Quantity: 1})
	require.NoError(t, err)

	f.publisher.EXPECT().
		PublishOrderNotification(mock.Anything, mock.Anything).
		Return(errors.New("broker down")).
		Once()

	out, err := f.srv.PlaceOrder(ctx, "s1", testContact)
	require.NoError(t, err)
	assert.Len(t, out.Orders, 1)
	assert.Equal(t, int64(1), f.countOrders(t))
}

func TestOrderService_PlaceOrderTwiceOrdersOnce(t *testing.T) {
	f := createTestOrderService(t, false)
	ctx := context.Background()

	_, err := f.cart.AddToCart(ctx, &usecase.AddLineInput{SessionKey: "s1", ItemID: f.item.ID, Quantity: 2})
	require.NoError(t, err)

	f.publisher.EXPECT().PublishOrderNotification(mock.Anything, mock.Anything).Return(nil).Once()

	first, err := f.srv.PlaceOrder(ctx, "s1", testContact)
	require.NoError(t, err)
	assert.Len(t, first.Orders, 1)

	second, err := f.srv.PlaceOrder(ctx, "s1", testContact)
	require.NoError(t, err)
	assert.Empty(t, second.Orders)

	assert.Equal(t, int64(1), f.countOrders(t))
	assert.Equal(t, 3, f.seed.Quantity(f.red))
}
