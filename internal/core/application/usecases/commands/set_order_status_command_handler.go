package commands

import (
	"context"
	"log/slog"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/ports"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"
)

// SetOrderStatusCommandHandler applies a status change requested by the
// assignee. Moving to done also asks the requester for a rating, unless the
// order was rated before.
type SetOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

func NewSetOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     loggerOrDefault(logger, "set_order_status"),
	}
}

func (h SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.SetStatus(cmd.Agent(), cmd.Status()); err != nil {
		return nil, err
	}

	updated, err := repo.UpdateStatus(ctx, cmd.OrderID(), cmd.Status())
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notify(ctx, h.notifier, h.logger, ports.OrderStatusChanged, o, cmd.Agent())
	if o.Status() == order.Done && !o.IsRated() {
		notify(ctx, h.notifier, h.logger, ports.OrderRatingRequested, o, cmd.Agent())
	}
	return o, nil
}
