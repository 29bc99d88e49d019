// Package persistence is the gorm-backed storage of both bots: connection
// setup, schema migration and the Unit of Work that hands out transactional
// repositories.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// after Begin run inside that transaction; before Begin (or after Commit or
// Rollback) they run directly against the connection pool.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	won, err := uow.OrderRepository().TryAssign(ctx, orderID, agent)
//	if err != nil {
//	    return err
//	}
//	if !won {
//	    return order.ErrAlreadyAssigned
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance holds its own transaction state; goroutines must
// not share one.
package persistence

import (
	"context"

	"github.com/casper4088/quiz-bot/internal/adapters/out/persistence/broadcastrepo"
	"github.com/casper4088/quiz-bot/internal/adapters/out/persistence/orderrepo"
	"github.com/casper4088/quiz-bot/internal/adapters/out/persistence/submissionrepo"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
	"github.com/casper4088/quiz-bot/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate written during the unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// AggregateKind names the aggregate type of a tracked write.
func AggregateKind(aggregate any) string {
	switch aggregate.(type) {
	case *order.Order:
		return "order"
	case *quiz.Submission:
		return "submission"
	default:
		return "unknown"
	}
}

// CommitHook receives the aggregates of a unit of work once their writes are
// durable. It runs synchronously on the committing goroutine.
type CommitHook func(committed []TrackedAggregate)

// GormUnitOfWorkFactory creates a fresh UnitOfWork per business operation.
type GormUnitOfWorkFactory struct {
	db    *gorm.DB
	hooks []CommitHook
}

func NewGormUnitOfWorkFactory(db *gorm.DB, hooks ...CommitHook) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, hooks: hooks}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create without the interface conversion, for callers that
// need TrackedAggregates.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		hooks:             f.hooks,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one gorm transaction and records the aggregates
// its repositories wrote.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	hooks             []CommitHook
	trackedAggregates []TrackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}
	uow.flushTracked()
	return nil
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open,
// which makes it safe to defer after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SubmissionRepository() ports.SubmissionRepository {
	return submissionrepo.NewGormSubmissionRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BroadcastRepository() ports.BroadcastRepository {
	return broadcastrepo.NewGormBroadcastRepository(uow.conn())
}

// TrackAggregate is called by repositories after a successful write. Writes
// made outside a transaction are already durable and reach the hooks at once.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
	if uow.tx == nil {
		uow.flushTracked()
	}
}

// TrackedAggregates lists the writes of the open transaction.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	return uow.trackedAggregates
}

func (uow *GormUnitOfWork) flushTracked() {
	if len(uow.trackedAggregates) == 0 {
		return
	}
	committed := uow.trackedAggregates
	uow.trackedAggregates = make([]TrackedAggregate, 0)
	for _, hook := range uow.hooks {
		hook(committed)
	}
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
