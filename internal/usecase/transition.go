package usecase

import "github.com/polkiloo/storefront/internal/domain/model"

var transitionTable = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusProcessing: {model.OrderStatusShipped, model.OrderStatusDelivered, model.OrderStatusCancelled},
	model.OrderStatusShipped:    {model.OrderStatusDelivered, model.OrderStatusCancelled},
	model.OrderStatusDelivered:  nil,
	model.OrderStatusCancelled:  nil,
}

// TransitionPolicy decides which admin status updates are legal.
type TransitionPolicy struct {
	strict bool
}

// NewTransitionPolicy returns the table-enforcing policy when strict is set,
// otherwise the admin override that only refuses leaving Cancelled.
func NewTransitionPolicy(strict bool) TransitionPolicy {
	return TransitionPolicy{strict: strict}
}

// Allowed reports whether an order may move from one status to another.
// Re-applying the current status is a no-op and allowed unless the order is cancelled.
func (p TransitionPolicy) Allowed(from, to model.OrderStatus) bool {
	if from == model.OrderStatusCancelled {
		return false
	}
	if from == to {
		return true
	}
	if !p.strict {
		return true
	}
	for _, next := range transitionTable[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Strict reports whether the transition table is enforced.
func (p TransitionPolicy) Strict() bool {
	return p.strict
}

func notifiesOnStatus(status model.OrderStatus) bool {
	return status == model.OrderStatusShipped || status == model.OrderStatusDelivered
}
