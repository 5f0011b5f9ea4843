package dto

import (
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	OrderItems    []model.OrderItem  `json:"orderItems"`
	ShippingInfo  model.ShippingInfo `json:"shippingInfo"`
	PaymentInfo   model.PaymentInfo  `json:"paymentInfo"`
	ItemsPrice    float64            `json:"itemsPrice"`
	TaxPrice      float64            `json:"taxPrice"`
	ShippingPrice float64            `json:"shippingPrice"`
	TotalPrice    float64            `json:"totalPrice"`
}

// UpdateStatusRequest carries the target order status.
type UpdateStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

// OrderResponse describes order entry in API responses.
type OrderResponse struct {
	ID            int64              `json:"id"`
	User          int64              `json:"user"`
	OrderItems    []model.OrderItem  `json:"orderItems"`
	ShippingInfo  model.ShippingInfo `json:"shippingInfo"`
	PaymentInfo   model.PaymentInfo  `json:"paymentInfo"`
	ItemsPrice    float64            `json:"itemsPrice"`
	TaxPrice      float64            `json:"taxPrice"`
	ShippingPrice float64            `json:"shippingPrice"`
	TotalPrice    float64            `json:"totalPrice"`
	OrderStatus   string             `json:"orderStatus"`
	PaidAt        time.Time          `json:"paidAt"`
	DeliveredAt   *time.Time         `json:"deliveredAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}
