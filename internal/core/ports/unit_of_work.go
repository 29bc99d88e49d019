package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for every use case call.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary. Repositories obtained after Begin
// run inside the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	SubmissionRepository() SubmissionRepository
	BroadcastRepository() BroadcastRepository
}
