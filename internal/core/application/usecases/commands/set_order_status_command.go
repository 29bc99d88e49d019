package commands

import (
	"errors"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/pkg/guard"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusCommand is the assignee moving an order to another status.
// The status is not validated here: an invalid status is reported by the
// aggregate only after the assignment guards, so the caller learns "not
// yours" before "not a status".
type SetOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agent   kernel.UserID
	status  order.Status

	guard guard.ConstructorGuard
}

func NewSetOrderStatusCommand(orderID kernel.UUID, agent kernel.UserID, status order.Status) (SetOrderStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		agent.Validate(),
	); err != nil {
		return SetOrderStatusCommand{}, err
	}

	return SetOrderStatusCommand{
		orderID: orderID,
		agent:   agent,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

func (c SetOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetOrderStatusCommand) Agent() kernel.UserID {
	return c.agent
}

func (c SetOrderStatusCommand) Status() order.Status {
	return c.status
}
