package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64, draft model.OrderDraft) (*model.Order, error)
	MyOrders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, requesterID, orderID int64) (*model.Order, error)
	CancelOrder(ctx context.Context, userID, orderID int64) error
}

// AdminOrderFacade provides fulfillment operations for admins.
type AdminOrderFacade interface {
	AllOrders(ctx context.Context) ([]model.Order, float64, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
	DeleteOrder(ctx context.Context, orderID int64) error
}

// CatalogFacade provides product reads and admin writes.
type CatalogFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// PaymentFacade verifies wallet payments.
type PaymentFacade interface {
	VerifyPayment(ctx context.Context, token string, amount int64) (*model.PaymentVerification, error)
}

// HealthFacade reports dependency health.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	OrderFacade
	AdminOrderFacade
	CatalogFacade
	PaymentFacade
	HealthFacade
}
