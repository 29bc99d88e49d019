package commands

import (
	"errors"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand is the requester scoring finished work. The score range
// is checked by the aggregate.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	requester kernel.UserID
	score     int

	guard guard.ConstructorGuard
}

func NewRateOrderCommand(orderID kernel.UUID, requester kernel.UserID, score int) (RateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		requester.Validate(),
	); err != nil {
		return RateOrderCommand{}, err
	}

	return RateOrderCommand{
		orderID:   orderID,
		requester: requester,
		score:     score,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RateOrderCommand) Requester() kernel.UserID {
	return c.requester
}

func (c RateOrderCommand) Score() int {
	return c.score
}
