package usecase

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// Notifier hands notification events to the delivery pipeline.
type Notifier interface {
	Notify(ctx context.Context, event model.NotificationEvent) error
}

// ProductCache keeps read-through copies of catalog entries.
type ProductCache interface {
	GetOrLoad(ctx context.Context, id int64, load func(context.Context) (*model.Product, error)) (*model.Product, error)
	Invalidate(ctx context.Context, id int64) error
}

// PaymentGateway verifies wallet payments with the provider.
type PaymentGateway interface {
	Verify(ctx context.Context, token string, amount int64) (*model.PaymentVerification, error)
}
