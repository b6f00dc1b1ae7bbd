package pubsub

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/service"
	mockSvc "storefront/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAsyncPublisher_ReturnsBeforeDelivery(t *testing.T) {
	next := mockSvc.NewMockEventPublisher(t)
	publisher := NewAsyncPublisher(next, 0, time.Second, newDiscardLogger())

	release := make(chan struct{})
	delivered := make(chan struct{})
	event := &service.OrderNotificationEvent{OrderIDs: []uint{1}, Messages: []string{"header"}}

	next.EXPECT().PublishOrderNotification(mock.Anything, event).
		Run(func(context.Context, *service.OrderNotificationEvent) {
			<-release
			close(delivered)
		}).
		Return(nil).
		Once()
	next.EXPECT().Close().Return(nil).Once()

	require.NoError(t, publisher.PublishOrderNotification(context.Background(), event))

	select {
	case <-delivered:
		t.Fatal("publish blocked on delivery")
	default:
	}

	close(release)
	require.NoError(t, publisher.Close())

	select {
	case <-delivered:
	default:
		t.Fatal("close returned before in-flight delivery finished")
	}
}

func TestAsyncPublisher_DetachesCallerCancellation(t *testing.T) {
	next := mockSvc.NewMockEventPublisher(t)
	publisher := NewAsyncPublisher(next, 0, time.Second, newDiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	next.EXPECT().PublishOrderNotification(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ *service.OrderNotificationEvent) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)

			return ctx.Err()
		}).
		Once()
	next.EXPECT().Close().Return(nil).Once()

	require.NoError(t, publisher.PublishOrderNotification(ctx, &service.OrderNotificationEvent{}))
	require.NoError(t, publisher.Close())
}

func TestAsyncPublisher_SendFailureIsLogged(t *testing.T) {
	next := mockSvc.NewMockEventPublisher(t)
	publisher := NewAsyncPublisher(next, 0, time.Second, newDiscardLogger())

	next.EXPECT().PublishOrderNotification(mock.Anything, mock.Anything).Return(errors.New("boom")).Once()
	next.EXPECT().Close().Return(nil).Once()

	require.NoError(t, publisher.PublishOrderNotification(context.Background(), &service.OrderNotificationEvent{}))
	require.NoError(t, publisher.Close())
}

func TestAsyncPublisher_RejectsAfterClose(t *testing.T) {
	next := mockSvc.NewMockEventPublisher(t)
	publisher := NewAsyncPublisher(next, 0, time.Second, newDiscardLogger())

	next.EXPECT().Close().Return(nil).Once()
	require.NoError(t, publisher.Close())

	err := publisher.PublishOrderNotification(context.Background(), &service.OrderNotificationEvent{})
	assert.True(t, errors.Is(err, ErrPublisherClosed))
}

func TestAsyncPublisher_HoldsEventForDelay(t *testing.T) {
	next := mockSvc.NewMockEventPublisher(t)
	delay := 30 * time.Millisecond
	publisher := NewAsyncPublisher(next, delay, time.Second, newDiscardLogger())

	published := make(chan time.Time, 1)
	next.EXPECT().PublishOrderNotification(mock.Anything, mock.Anything).
		Run(func(context.Context, *service.OrderNotificationEvent) { published <- time.Now() }).
		Return(nil).
		Once()
	next.EXPECT().Close().Return(nil).Once()

	start := time.Now()
	require.NoError(t, publisher.PublishOrderNotification(context.Background(), &service.OrderNotificationEvent{}))
	assert.Less(t, time.Since(start), delay)

	select {
	case at := <-published:
		assert.GreaterOrEqual(t, at.Sub(start), delay)
	case <-time.After(5 * time.Second):
		t.Fatal("event was never published")
	}
	require.NoError(t, publisher.Close())
}

func TestAsyncPublisher_CloseFlushesHeldEvents(t *testing.T) {
	next := mockSvc.NewMockEventPublisher(t)
	publisher := NewAsyncPublisher(next, time.Hour, time.Second, newDiscardLogger())

	event := &service.OrderNotificationEvent{OrderIDs: []uint{7}}
	next.EXPECT().PublishOrderNotification(mock.Anything, event).Return(nil).Once()
	next.EXPECT().Close().Return(nil).Once()

	require.NoError(t, publisher.PublishOrderNotification(context.Background(), event))

	closed := make(chan error, 1)
	go func() { closed <- publisher.Close() }()

	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("close waited out the delay")
	}
}
