package model

import (
	"strings"
	"time"
)

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus matches status names case-insensitively.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range []OrderStatus{OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// OrderItem is a line item with product data captured at purchase time.
type OrderItem struct {
	ProductID int64   `json:"product"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
}

// ShippingInfo holds delivery destination.
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

// PaymentInfo is a free-form payment descriptor supplied by the client.
type PaymentInfo struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Order describes a placed storefront order.
type Order struct {
	ID            int64
	UserID        int64
	Items         []OrderItem
	Shipping      ShippingInfo
	Payment       PaymentInfo
	ItemsPrice    float64
	TaxPrice      float64
	ShippingPrice float64
	TotalPrice    float64
	Status        OrderStatus
	PaidAt        time.Time
	DeliveredAt   *time.Time
	CreatedAt     time.Time
}

// OrderDraft carries checkout data as submitted by the client. Prices are
// taken as-is and never recomputed.
type OrderDraft struct {
	Items         []OrderItem
	Shipping      ShippingInfo
	Payment       PaymentInfo
	ItemsPrice    float64
	TaxPrice      float64
	ShippingPrice float64
	TotalPrice    float64
}
