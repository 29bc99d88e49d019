package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/casper4088/quiz-bot/internal/core/application/usecases/commands"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
	"github.com/casper4088/quiz-bot/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) TryAssign(ctx context.Context, id kernel.UUID, agent kernel.UserID) (bool, error) {
	args := m.Called(ctx, id, agent)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) TryRate(
	ctx context.Context, id kernel.UUID, rating order.Rating, ratedAgent kernel.UserID,
) (bool, error) {
	args := m.Called(ctx, id, rating, ratedAgent)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSubmissionRepository struct{ mock.Mock }

func (m *MockSubmissionRepository) Add(ctx context.Context, s *quiz.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubmissionRepository) ListByQuiz(ctx context.Context, quizID string) ([]*quiz.Submission, error) {
	args := m.Called(ctx, quizID)
	subs, _ := args.Get(0).([]*quiz.Submission)
	return subs, args.Error(1)
}

func (m *MockSubmissionRepository) ListRecent(ctx context.Context, limit int) ([]*quiz.Submission, error) {
	args := m.Called(ctx, limit)
	subs, _ := args.Get(0).([]*quiz.Submission)
	return subs, args.Error(1)
}

type MockSubmissionUoW struct{ mock.Mock }

func (m *MockSubmissionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSubmissionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSubmissionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSubmissionUoW) SubmissionRepository() ports.SubmissionRepository {
	args := m.Called()
	return args.Get(0).(ports.SubmissionRepository)
}

type MockSubmissionUoWFactory struct{ mock.Mock }

func (m *MockSubmissionUoWFactory) Create() commands.SubmissionUoW {
	args := m.Called()
	return args.Get(0).(commands.SubmissionUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.OrderNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockExporter struct{ mock.Mock }

func (m *MockExporter) WriteSubmissions(w io.Writer, submissions []*quiz.Submission) error {
	args := m.Called(w, submissions)
	return args.Error(0)
}

func (m *MockExporter) WriteOrders(w io.Writer, orders []*order.Order) error {
	args := m.Called(w, orders)
	return args.Error(0)
}

const (
	requester kernel.UserID = 100
	agentA    kernel.UserID = 200
	agentB    kernel.UserID = 300
)

var fixedNow = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDetails(t *testing.T) order.Details {
	t.Helper()
	d, err := order.NewDetails(order.Repair, "Aziz", "+998901234567", "Fridge is not cooling", "Chilonzor 9", nil)
	require.NoError(t, err)
	return d
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), requester, testDetails(t), fixedNow)
	require.NoError(t, err)
	return o
}

// restoreCopy returns an independent instance of o, as a repository read would.
func restoreCopy(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	var rating *int
	if r := o.Rating(); r != nil {
		v := r.Int()
		rating = &v
	}
	c, err := order.RestoreOrder(
		o.ID(), o.Requester(), o.Details(), o.CreatedAt(), o.Status(), o.AssignedTo(), rating, o.RatedAgent())
	require.NoError(t, err)
	return c
}

func event(e ports.OrderEvent) any {
	return mock.MatchedBy(func(n ports.OrderNotification) bool { return n.Event == e })
}
