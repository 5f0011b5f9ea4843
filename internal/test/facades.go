package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for customer order endpoints.
type OrderFacadeStub struct {
	PlaceFn  func(context.Context, int64, model.OrderDraft) (*model.Order, error)
	MineFn   func(context.Context, int64) ([]model.Order, error)
	OrderFn  func(context.Context, int64, int64) (*model.Order, error)
	CancelFn func(context.Context, int64, int64) error
}

// PlaceOrder delegates to provided function or echoes the input as a new order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, userID int64, in model.OrderDraft) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID, in)
	}
	return &model.Order{
		ID:         1,
		UserID:     userID,
		Items:      in.Items,
		Shipping:   in.Shipping,
		Payment:    in.Payment,
		TotalPrice: in.TotalPrice,
		Status:     model.OrderStatusProcessing,
		PaidAt:     time.Unix(0, 0).UTC(),
		CreatedAt:  time.Unix(0, 0).UTC(),
	}, nil
}

// MyOrders returns predefined orders for given user.
func (s OrderFacadeStub) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.MineFn != nil {
		return s.MineFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID, Status: model.OrderStatusProcessing}}, nil
}

// Order returns a single order owned by the requester.
func (s OrderFacadeStub) Order(ctx context.Context, requesterID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, requesterID, orderID)
	}
	return &model.Order{ID: orderID, UserID: requesterID, Status: model.OrderStatusProcessing}, nil
}

// CancelOrder executes configured cancel handler.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, userID, orderID int64) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, userID, orderID)
	}
	return nil
}

// AdminOrderFacadeStub simulates admin order operations.
type AdminOrderFacadeStub struct {
	AllFn    func(context.Context) ([]model.Order, float64, error)
	StatusFn func(context.Context, int64, string) error
	DeleteFn func(context.Context, int64) error
}

// AllOrders returns preconfigured orders and their total.
func (s AdminOrderFacadeStub) AllOrders(ctx context.Context) ([]model.Order, float64, error) {
	if s.AllFn != nil {
		return s.AllFn(ctx)
	}
	return []model.Order{{ID: 1, TotalPrice: 10}}, 10, nil
}

// UpdateOrderStatus executes configured status handler.
func (s AdminOrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, orderID, status)
	}
	return nil
}

// DeleteOrder executes configured delete handler.
func (s AdminOrderFacadeStub) DeleteOrder(ctx context.Context, orderID int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, orderID)
	}
	return nil
}

// CatalogFacadeStub simulates catalog operations.
type CatalogFacadeStub struct {
	ListFn   func(context.Context) ([]model.Product, error)
	GetFn    func(context.Context, int64) (*model.Product, error)
	CreateFn func(context.Context, *model.Product) (*model.Product, error)
	UpdateFn func(context.Context, *model.Product) (*model.Product, error)
	DeleteFn func(context.Context, int64) error
}

// Products returns configured catalog.
func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.Product{{ID: 1, Name: "Tee", Stock: []int{1, 0, 0, 0, 0}, Sizes: []string{"S"}}}, nil
}

// Product returns configured product.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Tee"}, nil
}

// CreateProduct echoes product with an identifier.
func (s CatalogFacadeStub) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, p)
	}
	out := *p
	out.ID = 1
	return &out, nil
}

// UpdateProduct echoes product.
func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, p)
	}
	out := *p
	return &out, nil
}

// DeleteProduct executes configured delete handler.
func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// PaymentFacadeStub simulates payment verification.
type PaymentFacadeStub struct {
	VerifyFn func(context.Context, string, int64) (*model.PaymentVerification, error)
}

// VerifyPayment returns configured verification.
func (s PaymentFacadeStub) VerifyPayment(ctx context.Context, token string, amount int64) (*model.PaymentVerification, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, token, amount)
	}
	return &model.PaymentVerification{Idx: "idx", Amount: amount, State: "Completed"}, nil
}

// HealthFacadeStub reports configured dependency health.
type HealthFacadeStub struct {
	Err error
}

// Health returns the configured error.
func (s HealthFacadeStub) Health(ctx context.Context) error {
	return s.Err
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	AdminOrderFacadeStub
	CatalogFacadeStub
	PaymentFacadeStub
	HealthFacadeStub
}

// RetryCall stores information about RetryNotification invocations.
type RetryCall struct {
	Event model.NotificationEvent
	Delay time.Duration
}

// RelayFacadeStub mimics relay worker interactions with the outbox and broker.
type RelayFacadeStub struct {
	Batches   [][]model.NotificationEvent
	DueFn     func(context.Context, int) ([]model.NotificationEvent, error)
	PublishFn func(context.Context, model.NotificationEvent) error
	RetryFn   func(context.Context, model.NotificationEvent, time.Duration) error
	Published []model.NotificationEvent
	Retries   []RetryCall
	mu        sync.Mutex
	dueCalls  int32
}

// Lock exposes internal mutex for external synchronization.
func (s *RelayFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *RelayFacadeStub) Unlock() { s.mu.Unlock() }

// DueNotifications returns batches from configured queue.
func (s *RelayFacadeStub) DueNotifications(ctx context.Context, limit int) ([]model.NotificationEvent, error) {
	if s.DueFn != nil {
		return s.DueFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.dueCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	return nil, nil
}

// PublishNotification records published events.
func (s *RelayFacadeStub) PublishNotification(ctx context.Context, event model.NotificationEvent) error {
	if s.PublishFn != nil {
		if err := s.PublishFn(ctx, event); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = append(s.Published, event)
	return nil
}

// RetryNotification records rescheduled events.
func (s *RelayFacadeStub) RetryNotification(ctx context.Context, event model.NotificationEvent, delay time.Duration) error {
	s.mu.Lock()
	s.Retries = append(s.Retries, RetryCall{Event: event, Delay: delay})
	s.mu.Unlock()
	if s.RetryFn != nil {
		return s.RetryFn(ctx, event, delay)
	}
	return nil
}
