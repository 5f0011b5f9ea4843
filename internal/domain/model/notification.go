package model

import "time"

// NotificationKind selects the message template used by the mail service.
type NotificationKind string

const (
	NotificationOrderConfirmation NotificationKind = "order.confirmation"
	NotificationOrderStatus       NotificationKind = "order.status"
	NotificationOrderCancelled    NotificationKind = "order.cancelled"
)

// NotificationEvent is emitted by order operations and relayed to the mail service.
type NotificationEvent struct {
	ID         string           `json:"id"`
	Kind       NotificationKind `json:"kind"`
	OrderID    int64            `json:"orderId"`
	UserID     int64            `json:"userId"`
	Email      string           `json:"email"`
	Name       string           `json:"name"`
	Status     OrderStatus      `json:"status"`
	TotalPrice float64          `json:"totalPrice"`
	Attempts   int              `json:"attempts"`
	CreatedAt  time.Time        `json:"createdAt"`
}
