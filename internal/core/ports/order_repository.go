// Package ports defines the contracts between the use cases and the outside
// world: storage, chat notifications and spreadsheet export.
package ports

import (
	"context"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
//
// Claiming and rating are contended: many agents may press "take" on the
// same broadcast at once. TryAssign and TryRate are therefore single
// conditional writes that report whether this caller won; they never read
// and then write.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// TryAssign sets the assignee only if none is set yet.
	// It returns false when another agent got there first or the order is unknown.
	TryAssign(ctx context.Context, id kernel.UUID, agent kernel.UserID) (bool, error)

	// UpdateStatus stores status and returns false when the order is unknown.
	UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) (bool, error)

	// TryRate stores the rating only if none is stored yet and the order is done.
	TryRate(ctx context.Context, id kernel.UUID, rating order.Rating, ratedAgent kernel.UserID) (bool, error)

	// List returns up to limit orders, newest first.
	List(ctx context.Context, limit int) ([]*order.Order, error)
}
