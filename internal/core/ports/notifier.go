package ports

import (
	"context"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
)

type OrderEvent string

const (
	OrderCreated         OrderEvent = "created"
	OrderAssigned        OrderEvent = "assigned"
	OrderStatusChanged   OrderEvent = "status_changed"
	OrderRatingRequested OrderEvent = "rating_requested"
	OrderRated           OrderEvent = "rated"
)

// OrderNotification describes something that happened to an order.
// Order is the state after the change; Actions are the operations valid
// from that state; Actor is the user who caused the change.
type OrderNotification struct {
	Event   OrderEvent
	Order   *order.Order
	Actions []order.Action
	Actor   kernel.UserID
}

// OrderNotifier delivers order notifications to chats. Delivery is best
// effort: callers log a returned error and carry on.
type OrderNotifier interface {
	Notify(ctx context.Context, notification OrderNotification) error
}
