package commands_test

import (
	"testing"

	"github.com/casper4088/quiz-bot/internal/core/application/usecases/commands"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/ports"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAssignOrderCommand(t *testing.T) {
	_, err := commands.NewAssignOrderCommand(kernel.UUID{}, 0)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, kernel.ErrUserIDIsNotConstructed)

	id := kernel.NewUUID()
	cmd, err := commands.NewAssignOrderCommand(id, agentA)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, agentA, cmd.Agent())
}

func TestAssignOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored := newTestOrder(t)
	cmd, _ := commands.NewAssignOrderCommand(stored.ID(), agentA)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		repo.On("TryAssign", ctx, stored.ID(), agentA).Return(true, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, event(ports.OrderAssigned)).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignOrderCommandHandler(factory, notifier, discardLogger())
	assigned, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, assigned.IsAssignedTo(agentA))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	stored := newTestOrder(t)
	require.NoError(t, stored.Assign(agentA))
	cmd, _ := commands.NewAssignOrderCommand(stored.ID(), agentB)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, stored.ID()).Return(stored, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignOrderCommandHandler(factory, notifier, discardLogger())
	_, err := h.Handle(ctx, cmd)

	var taken *order.AlreadyAssignedError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, agentA, taken.Assignee)
	repo.AssertNotCalled(t, "TryAssign", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestAssignOrderCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	unassigned := newTestOrder(t)
	winnerView := restoreCopy(t, unassigned)
	require.NoError(t, winnerView.Assign(agentA))
	cmd, _ := commands.NewAssignOrderCommand(unassigned.ID(), agentB)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, unassigned.ID()).Return(unassigned, nil).Once(),
		repo.On("TryAssign", ctx, unassigned.ID(), agentB).Return(false, nil).Once(),
		repo.On("Get", ctx, unassigned.ID()).Return(winnerView, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignOrderCommandHandler(factory, notifier, discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrAlreadyAssigned)
	var taken *order.AlreadyAssignedError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, agentA, taken.Assignee)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestAssignOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewAssignOrderCommand(id, agentA)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String()))
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewAssignOrderCommandHandler(factory, nil, discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
