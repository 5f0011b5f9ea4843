package repository

import (
	"context"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	// UpdateStatus moves an order from one status to another. It fails with
	// ErrInvalidState when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus, deliveredAt *time.Time) error
	Delete(ctx context.Context, id int64) error
}
