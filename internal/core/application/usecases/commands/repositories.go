// Package commands contains the use cases that change state: the order
// lifecycle, quiz submissions and spreadsheet exports.
// Every command is built by a validating constructor; every handler runs its
// writes inside a unit of work.
package commands

import (
	"context"

	"github.com/casper4088/quiz-bot/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	SubmissionRepoFactory interface {
		SubmissionRepository() ports.SubmissionRepository
	}

	// OrderUoW is the transaction scope of the order lifecycle commands.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   won, err := uow.OrderRepository().TryAssign(ctx, id, agent)
	//   // ...
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SubmissionUoW is the transaction scope of quiz submissions and exports.
	SubmissionUoW interface {
		TxManager
		SubmissionRepoFactory
	}

	SubmissionUoWFactory interface {
		Create() SubmissionUoW
	}
)
