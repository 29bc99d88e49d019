package commands

import (
	"context"
	"log/slog"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/ports"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"
)

// RateOrderCommandHandler stores the requester's rating once. A requester
// double-tapping the rating keyboard produces two concurrent calls; the
// conditional TryRate lets exactly one of them through and the other gets
// order.ErrAlreadyRated. An order reopened after it was loaded is reported
// as order.ErrNotDoneYet.
type RateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

func NewRateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     loggerOrDefault(logger, "rate_order"),
	}
}

func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) (*order.Order, error) {
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

	if err = o.Rate(cmd.Requester(), cmd.Score()); err != nil {
		return nil, err
	}

	won, err := repo.TryRate(ctx, cmd.OrderID(), *o.Rating(), *o.RatedAgent())
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, h.lostRace(ctx, repo, cmd)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notify(ctx, h.notifier, h.logger, ports.OrderRated, o, cmd.Requester())
	return o, nil
}

func (h RateOrderCommandHandler) lostRace(ctx context.Context, repo ports.OrderRepository, cmd RateOrderCommand) error {
	current, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if current.IsRated() {
		return order.ErrAlreadyRated
	}
	if current.Status() != order.Done {
		return order.ErrNotDoneYet
	}
	return errs.NewObjectNotFoundError("order", cmd.OrderID().String())
}
