package commands

import (
	"errors"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand is an agent pressing "take" on an order card.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agent   kernel.UserID

	guard guard.ConstructorGuard
}

func NewAssignOrderCommand(orderID kernel.UUID, agent kernel.UserID) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		orderID.Validate(),
		agent.Validate(),
	); err != nil {
		return AssignOrderCommand{}, err
	}
	cmd.orderID = orderID
	cmd.agent = agent

	return cmd, nil
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignOrderCommand) Agent() kernel.UserID {
	return c.agent
}
