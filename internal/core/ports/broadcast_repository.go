package ports

import (
	"context"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
)

// Broadcast is one chat message that shows an order card. Later changes to
// the order edit these messages in place.
type Broadcast struct {
	OrderID   kernel.UUID
	ChatID    int64
	MessageID int
}

type BroadcastRepository interface {
	Add(ctx context.Context, broadcast Broadcast) error
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]Broadcast, error)
}
