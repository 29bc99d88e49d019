// Package broadcastrepo remembers which chat messages show which order, so
// that every copy of an order card can be edited when the order changes.
package broadcastrepo

import (
	"context"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/ports"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BroadcastDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ChatID    int64     `gorm:"not null"`
	MessageID int       `gorm:"not null"`
}

func (BroadcastDTO) TableName() string {
	return "broadcasts"
}

type GormBroadcastRepository struct {
	db *gorm.DB
}

func NewGormBroadcastRepository(db *gorm.DB) *GormBroadcastRepository {
	return &GormBroadcastRepository{db: db}
}

func (r *GormBroadcastRepository) Add(ctx context.Context, broadcast ports.Broadcast) error {
	if err := broadcast.OrderID.Validate(); err != nil {
		return err
	}
	if broadcast.ChatID == 0 {
		return errs.NewValueIsRequiredError("chat id")
	}
	if broadcast.MessageID <= 0 {
		return errs.NewValueIsRequiredError("message id")
	}

	dto := BroadcastDTO{
		OrderID:   broadcast.OrderID.Bytes(),
		ChatID:    broadcast.ChatID,
		MessageID: broadcast.MessageID,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns the broadcasts of an order in the order they were sent.
func (r *GormBroadcastRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]ports.Broadcast, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BroadcastDTO
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	broadcasts := make([]ports.Broadcast, 0, len(dtos))
	for _, dto := range dtos {
		broadcasts = append(broadcasts, ports.Broadcast{
			OrderID:   orderID,
			ChatID:    dto.ChatID,
			MessageID: dto.MessageID,
		})
	}
	return broadcasts, nil
}
