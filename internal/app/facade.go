package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// NotificationOutbox is the relay-side view of the pending notification queue.
type NotificationOutbox interface {
	Due(ctx context.Context, limit int) ([]model.NotificationEvent, error)
	Retry(ctx context.Context, event model.NotificationEvent, delay time.Duration) error
	Size(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// EventPublisher delivers notification events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event model.NotificationEvent) error
}

// HealthChecker probes a backing store.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type StorefrontFacade struct {
	auth      *usecase.AuthUseCase
	orders    *usecase.OrderUseCase
	catalog   *usecase.CatalogUseCase
	payments  *usecase.PaymentUseCase
	outbox    NotificationOutbox
	publisher EventPublisher
	db        HealthChecker
	logger    *slog.Logger
}

func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	catalog *usecase.CatalogUseCase,
	payments *usecase.PaymentUseCase,
	outbox NotificationOutbox,
	publisher EventPublisher,
	db HealthChecker,
	logger *slog.Logger,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:      auth,
		orders:    orders,
		catalog:   catalog,
		payments:  payments,
		outbox:    outbox,
		publisher: publisher,
		db:        db,
		logger:    logger,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, password)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := f.auth.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, userID int64, draft model.OrderDraft) (*model.Order, error) {
	return f.orders.Place(ctx, userID, draft)
}

func (f *StorefrontFacade) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListMine(ctx, userID)
}

func (f *StorefrontFacade) Order(ctx context.Context, requesterID, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, requesterID, orderID)
}

func (f *StorefrontFacade) CancelOrder(ctx context.Context, userID, orderID int64) error {
	return f.orders.Cancel(ctx, userID, orderID)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context) ([]model.Order, float64, error) {
	return f.orders.ListAll(ctx)
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StorefrontFacade) DeleteOrder(ctx context.Context, orderID int64) error {
	return f.orders.Delete(ctx, orderID)
}

func (f *StorefrontFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.List(ctx)
}

func (f *StorefrontFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	return f.catalog.Create(ctx, p)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	return f.catalog.Update(ctx, p)
}

func (f *StorefrontFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.Delete(ctx, id)
}

func (f *StorefrontFacade) VerifyPayment(ctx context.Context, token string, amount int64) (*model.PaymentVerification, error) {
	return f.payments.Verify(ctx, token, amount)
}

// Health checks the database and the outbox store.
func (f *StorefrontFacade) Health(ctx context.Context) error {
	if err := f.db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := f.outbox.Ping(ctx); err != nil {
		return fmt.Errorf("outbox: %w", err)
	}
	if pending, err := f.outbox.Size(ctx); err == nil {
		f.logger.Debug("outbox backlog", slog.Int64("pending", pending))
	}
	return nil
}

func (f *StorefrontFacade) DueNotifications(ctx context.Context, limit int) ([]model.NotificationEvent, error) {
	return f.outbox.Due(ctx, limit)
}

func (f *StorefrontFacade) PublishNotification(ctx context.Context, event model.NotificationEvent) error {
	return f.publisher.Publish(ctx, event)
}

func (f *StorefrontFacade) RetryNotification(ctx context.Context, event model.NotificationEvent, delay time.Duration) error {
	return f.outbox.Retry(ctx, event, delay)
}
