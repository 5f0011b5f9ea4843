package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// RelayFacade exposes the subset of application functionality required by the relay.
type RelayFacade interface {
	DueNotifications(ctx context.Context, limit int) ([]model.NotificationEvent, error)
	PublishNotification(ctx context.Context, event model.NotificationEvent) error
	RetryNotification(ctx context.Context, event model.NotificationEvent, delay time.Duration) error
}

// NotificationRelay drains the outbox and publishes events concurrently.
type NotificationRelay struct {
	facade       RelayFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	maxAttempts  int
	retryDelay   time.Duration
	logger       *slog.Logger

	jobs   chan model.NotificationEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewNotificationRelay constructs notification relay worker pool.
func NewNotificationRelay(facade RelayFacade, pollInterval time.Duration, batchSize, workers, maxAttempts int, retryDelay time.Duration, logger *slog.Logger) *NotificationRelay {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &NotificationRelay{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		maxAttempts:  maxAttempts,
		retryDelay:   retryDelay,
		logger:       logger,
		jobs:         make(chan model.NotificationEvent, batchSize*workers),
	}
}

// Start launches background processing.
func (r *NotificationRelay) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *NotificationRelay) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *NotificationRelay) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *NotificationRelay) fetchAndDispatch(ctx context.Context) {
	events, err := r.facade.DueNotifications(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch due notifications failed",
			slog.String("error", err.Error()),
			slog.Int("claimed", len(events)),
		)
	}
	for _, event := range events {
		select {
		case <-ctx.Done():
			// Claimed but not handed out; put it back so it is not lost.
			r.reschedule(context.WithoutCancel(ctx), event, 0)
		case r.jobs <- event:
		}
	}
}

func (r *NotificationRelay) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			r.drain(ctx)
			return
		case event, ok := <-r.jobs:
			if !ok {
				return
			}
			if ctx.Err() != nil {
				r.reschedule(context.WithoutCancel(ctx), event, 0)
				continue
			}
			r.handle(ctx, event)
		}
	}
}

// drain returns buffered events to the outbox until dispatch closes the queue.
func (r *NotificationRelay) drain(ctx context.Context) {
	for event := range r.jobs {
		r.reschedule(context.WithoutCancel(ctx), event, 0)
	}
}

func (r *NotificationRelay) handle(ctx context.Context, event model.NotificationEvent) {
	err := r.facade.PublishNotification(ctx, event)
	if err == nil {
		r.logger.Debug("notification published", slog.String("id", event.ID), slog.String("kind", string(event.Kind)))
		return
	}
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		// Interrupted by shutdown, not a delivery failure.
		r.reschedule(context.WithoutCancel(ctx), event, 0)
		return
	}

	event.Attempts++
	if event.Attempts >= r.maxAttempts {
		r.logger.Error("notification dead letter",
			slog.String("id", event.ID),
			slog.String("kind", string(event.Kind)),
			slog.Int64("order_id", event.OrderID),
			slog.Int("attempts", event.Attempts),
			slog.String("error", err.Error()),
		)
		return
	}

	r.logger.Warn("publish notification failed",
		slog.String("id", event.ID),
		slog.Int("attempts", event.Attempts),
		slog.String("error", err.Error()),
	)
	r.reschedule(context.WithoutCancel(ctx), event, time.Duration(event.Attempts)*r.retryDelay)
}

func (r *NotificationRelay) reschedule(ctx context.Context, event model.NotificationEvent, delay time.Duration) {
	if err := r.facade.RetryNotification(ctx, event, delay); err != nil {
		r.logger.Error("reschedule notification failed", slog.String("id", event.ID), slog.String("error", err.Error()))
	}
}
