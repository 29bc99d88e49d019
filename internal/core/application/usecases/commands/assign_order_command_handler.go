package commands

import (
	"context"
	"log/slog"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/ports"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"
)

// AssignOrderCommandHandler claims an order for an agent.
//
// Many agents receive the same card and may press "take" at the same moment.
// The aggregate check rejects orders that are visibly taken already; the
// final word belongs to the repository's conditional TryAssign. The loser of
// a race re-reads the order and gets *order.AlreadyAssignedError naming the
// winner.
//
// Example:
//
//	cmd, _ := NewAssignOrderCommand(orderID, agent)
//	claimed, err := handler.Handle(ctx, cmd)
//	var taken *order.AlreadyAssignedError
//	if errors.As(err, &taken) {
//	    // tell the agent that taken.Assignee was faster
//	}
type AssignOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

func NewAssignOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     loggerOrDefault(logger, "assign_order"),
	}
}

func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) (*order.Order, error) {
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

	if err = o.Assign(cmd.Agent()); err != nil {
		return nil, err
	}

	won, err := repo.TryAssign(ctx, cmd.OrderID(), cmd.Agent())
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, h.lostRace(ctx, repo, cmd)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notify(ctx, h.notifier, h.logger, ports.OrderAssigned, o, cmd.Agent())
	return o, nil
}

func (h AssignOrderCommandHandler) lostRace(ctx context.Context, repo ports.OrderRepository, cmd AssignOrderCommand) error {
	current, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if winner := current.AssignedTo(); winner != nil {
		return order.NewAlreadyAssignedError(*winner)
	}
	return errs.NewObjectNotFoundError("order", cmd.OrderID().String())
}
