package test

import (
	"context"
	"sync"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// NotifierStub records emitted notification events.
type NotifierStub struct {
	Err    error
	Events []model.NotificationEvent
	mu     sync.Mutex
}

// Notify stores the event and returns the configured error.
func (s *NotifierStub) Notify(ctx context.Context, event model.NotificationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
	return s.Err
}

// Sent returns a snapshot of recorded events.
func (s *NotifierStub) Sent() []model.NotificationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.NotificationEvent(nil), s.Events...)
}

// ProductCacheStub passes loads through and records invalidations.
type ProductCacheStub struct {
	GetOrLoadFn   func(context.Context, int64, func(context.Context) (*model.Product, error)) (*model.Product, error)
	InvalidateErr error
	Loads         []int64
	Invalidated   []int64
	mu            sync.Mutex
}

// GetOrLoad calls the loader unless overridden.
func (s *ProductCacheStub) GetOrLoad(ctx context.Context, id int64, load func(context.Context) (*model.Product, error)) (*model.Product, error) {
	s.mu.Lock()
	s.Loads = append(s.Loads, id)
	s.mu.Unlock()
	if s.GetOrLoadFn != nil {
		return s.GetOrLoadFn(ctx, id, load)
	}
	return load(ctx)
}

// Invalidate records the product identifier.
func (s *ProductCacheStub) Invalidate(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Invalidated = append(s.Invalidated, id)
	return s.InvalidateErr
}

// PaymentGatewayStub returns configured verification results.
type PaymentGatewayStub struct {
	VerifyFn func(context.Context, string, int64) (*model.PaymentVerification, error)
	Calls    int
}

// Verify delegates to override or reports a completed payment.
func (s *PaymentGatewayStub) Verify(ctx context.Context, token string, amount int64) (*model.PaymentVerification, error) {
	s.Calls++
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, token, amount)
	}
	return &model.PaymentVerification{Idx: "idx-" + token, Amount: amount, State: "Completed"}, nil
}
