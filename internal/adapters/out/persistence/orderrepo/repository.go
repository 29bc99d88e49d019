package orderrepo

import (
	"context"
	"errors"
	"math"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// The Try* methods are single conditional UPDATE statements: the WHERE clause
// carries the "not set yet" condition, so concurrent callers can never both
// see an affected row.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// TryAssign sets assigned_to only while it is still NULL.
func (r *GormOrderRepository) TryAssign(ctx context.Context, id kernel.UUID, agent kernel.UserID) (bool, error) {
	if err := errors.Join(id.Validate(), agent.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND assigned_to IS NULL", id.Bytes()).
		Update("assigned_to", agent.Int64())
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) (bool, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Update("status", status.String())
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// TryRate stores rating and rated_agent only while rating is still NULL and
// the stored status is done.
func (r *GormOrderRepository) TryRate(
	ctx context.Context,
	id kernel.UUID,
	rating order.Rating,
	ratedAgent kernel.UserID,
) (bool, error) {
	if err := errors.Join(id.Validate(), rating.Validate(), ratedAgent.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND rating IS NULL AND status = ?", id.Bytes(), order.Done.String()).
		Updates(map[string]any{
			"rating":      rating.Int(),
			"rated_agent": ratedAgent.Int64(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *GormOrderRepository) List(ctx context.Context, limit int) ([]*order.Order, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, math.MaxInt32)
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC, id").Limit(limit).Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
