package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// OrderOptions tunes intake and status handling.
type OrderOptions struct {
	// StrictInventory rejects orders referencing unknown products before they are stored.
	StrictInventory bool
	Transitions     TransitionPolicy
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	products  repository.ProductRepository
	inventory *InventoryAdjustor
	notifier  Notifier
	logger    *slog.Logger
	opts      OrderOptions
	now       func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	inventory *InventoryAdjustor,
	notifier Notifier,
	logger *slog.Logger,
	opts OrderOptions,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		users:     users,
		products:  products,
		inventory: inventory,
		notifier:  notifier,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

// WithClock overrides the time source used for paidAt, deliveredAt and event stamps.
func (u *OrderUseCase) WithClock(now func() time.Time) *OrderUseCase {
	u.now = now
	return u
}

// Place validates and persists a new order, adjusts stock for its items and
// emits a confirmation event.
func (u *OrderUseCase) Place(ctx context.Context, userID int64, in model.OrderDraft) (*model.Order, error) {
	if err := ValidatePlaceOrder(in); err != nil {
		return nil, err
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if u.opts.StrictInventory {
		for _, item := range in.Items {
			if _, err := u.products.GetByID(ctx, item.ProductID); err != nil {
				if errors.Is(err, domainErrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: product %d", domainErrors.ErrNotFound, item.ProductID)
				}
				return nil, err
			}
		}
	}

	now := u.now()
	order, err := u.orders.Create(ctx, &model.Order{
		UserID:        user.ID,
		Items:         in.Items,
		Shipping:      in.Shipping,
		Payment:       in.Payment,
		ItemsPrice:    in.ItemsPrice,
		TaxPrice:      in.TaxPrice,
		ShippingPrice: in.ShippingPrice,
		TotalPrice:    in.TotalPrice,
		Status:        model.OrderStatusProcessing,
		PaidAt:        now,
		CreatedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	report := u.inventory.Apply(ctx, order)
	u.logger.Info("order placed",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", order.UserID),
		slog.Int("items_adjusted", report.Adjusted),
		slog.Int("items_skipped", report.Skipped),
		slog.Int("items_failed", report.Failed),
	)

	u.notify(ctx, model.NotificationOrderConfirmation, order, user)
	return order, nil
}

// ListMine returns the user's orders, newest first.
func (u *OrderUseCase) ListMine(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAll returns every order, newest first, with the sum of their totals.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, float64, error) {
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, o := range orders {
		total += o.TotalPrice
	}
	return orders, total, nil
}

// Get returns an order visible to the requester: its owner or an admin.
func (u *OrderUseCase) Get(ctx context.Context, requesterID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID == requesterID {
		return order, nil
	}
	requester, err := u.users.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrForbidden
		}
		return nil, err
	}
	if !requester.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// UpdateStatus moves an order to the target status under the configured
// transition policy. Delivered stamps deliveredAt, also when re-applied.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, target string) error {
	status, ok := model.ParseOrderStatus(target)
	if !ok {
		return fmt.Errorf("%w: unknown order status %q", domainErrors.ErrValidation, target)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !u.opts.Transitions.Allowed(order.Status, status) {
		return fmt.Errorf("%w: cannot move order from %s to %s", domainErrors.ErrInvalidState, order.Status, status)
	}
	if order.Status == status && status != model.OrderStatusDelivered {
		return nil
	}

	var deliveredAt *time.Time
	if status == model.OrderStatusDelivered {
		now := u.now()
		deliveredAt = &now
	}

	if err := u.orders.UpdateStatus(ctx, order.ID, order.Status, status, deliveredAt); err != nil {
		return err
	}

	u.logger.Info("order status updated",
		slog.Int64("order_id", order.ID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(status)),
	)

	order.Status = status
	if deliveredAt != nil {
		order.DeliveredAt = deliveredAt
	}
	if notifiesOnStatus(status) {
		u.notify(ctx, model.NotificationOrderStatus, order, nil)
	}
	return nil
}

// Cancel lets an owner cancel an order that is still processing.
// Stock decremented at intake is not restored.
func (u *OrderUseCase) Cancel(ctx context.Context, userID, orderID int64) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return fmt.Errorf("%w: order %d belongs to another user", domainErrors.ErrForbidden, orderID)
	}
	if order.Status != model.OrderStatusProcessing {
		return fmt.Errorf("%w: order is %s, only Processing orders can be cancelled", domainErrors.ErrInvalidState, order.Status)
	}

	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusProcessing, model.OrderStatusCancelled, nil); err != nil {
		return err
	}

	u.logger.Info("order cancelled", slog.Int64("order_id", order.ID), slog.Int64("user_id", userID))

	order.Status = model.OrderStatusCancelled
	u.notify(ctx, model.NotificationOrderCancelled, order, nil)
	return nil
}

// Delete removes an order permanently.
func (u *OrderUseCase) Delete(ctx context.Context, orderID int64) error {
	return u.orders.Delete(ctx, orderID)
}

// notify emits an event for the order owner. Failures are logged and dropped.
func (u *OrderUseCase) notify(ctx context.Context, kind model.NotificationKind, order *model.Order, owner *model.User) {
	log := u.logger.With(slog.Int64("order_id", order.ID), slog.String("kind", string(kind)))

	if owner == nil {
		user, err := u.users.GetByID(ctx, order.UserID)
		if err != nil {
			log.Warn("notification skipped: owner lookup failed", slog.Any("error", err))
			return
		}
		owner = user
	}

	event := model.NotificationEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		OrderID:    order.ID,
		UserID:     owner.ID,
		Email:      owner.Email,
		Name:       owner.Name,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		CreatedAt:  u.now(),
	}
	if err := u.notifier.Notify(ctx, event); err != nil {
		log.Error("notification dispatch failed", slog.Any("error", err))
	}
}
