package commands

import (
	"context"
	"log/slog"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/ports"
)

// notify delivers a notification after the change was committed. A failed
// delivery never fails the command.
func notify(
	ctx context.Context,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
	event ports.OrderEvent,
	o *order.Order,
	actor kernel.UserID,
) {
	if notifier == nil {
		return
	}

	err := notifier.Notify(ctx, ports.OrderNotification{
		Event:   event,
		Order:   o,
		Actions: o.AvailableActions(),
		Actor:   actor,
	})
	if err != nil {
		logger.WarnContext(ctx, "order notification failed",
			"event", string(event),
			"order_id", o.ID().String(),
			"error", err)
	}
}

func loggerOrDefault(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}
