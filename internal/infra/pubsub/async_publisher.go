package pubsub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

// ErrPublisherClosed is returned for events published after Close.
var ErrPublisherClosed = errors.New("event publisher is closed")

// asyncPublisher hands each event to next on its own goroutine so checkout never
// waits on the queue. Close stops intake, releases events still waiting out the
// delay and waits for in-flight sends.
type asyncPublisher struct {
	next    service.EventPublisher
	delay   time.Duration
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewAsyncPublisher wraps next. Each event is held for delay before it is
// queued, so the notifier can deliver it as soon as it arrives. Each send gets
// a context detached from the caller's cancellation and bounded by timeout.
func NewAsyncPublisher(next service.EventPublisher, delay, timeout time.Duration, logger *slog.Logger) service.EventPublisher {
	return &asyncPublisher{
		next:    next,
		delay:   delay,
		timeout: timeout,
		logger:  logger,
		stop:    make(chan struct{}),
	}
}

func (p *asyncPublisher) PublishOrderNotification(ctx context.Context, event *service.OrderNotificationEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		p.wait()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()

		if err := p.next.PublishOrderNotification(sendCtx, event); err != nil {
			p.logger.Error("Failed to deliver order notification to queue",
				slog.String("request_id", event.RequestID),
				slog.Any("order_ids", event.OrderIDs),
				slog.Any("error", err),
			)
		}
	}()

	return nil
}

// wait holds an event for the configured delay. Shutdown cuts it short so the
// event is still queued.
func (p *asyncPublisher) wait() {
	if p.delay <= 0 {
		return
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-p.stop:
	}
}

func (p *asyncPublisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.stop)
	}
	p.mu.Unlock()

	p.wg.Wait()

	return p.next.Close()
}
