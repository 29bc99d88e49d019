package telegram_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/casper4088/quiz-bot/internal/core/application/usecases/commands"
	"github.com/casper4088/quiz-bot/internal/core/application/usecases/queries"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/conversation"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/domain/services"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: len(b.sent)}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) texts() []string {
	var out []string
	for _, c := range b.sent {
		switch v := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, v.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, v.Text)
		}
	}
	return out
}

func (b *fakeBot) lastText() string {
	texts := b.texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (b *fakeBot) lastMessage() tgbotapi.MessageConfig {
	for i := len(b.sent) - 1; i >= 0; i-- {
		if m, ok := b.sent[i].(tgbotapi.MessageConfig); ok {
			return m
		}
	}
	return tgbotapi.MessageConfig{}
}

func (b *fakeBot) callbackAnswers() []string {
	var out []string
	for _, c := range b.requests {
		if v, ok := c.(tgbotapi.CallbackConfig); ok {
			out = append(out, v.Text)
		}
	}
	return out
}

// memorySessions round-trips sessions through snapshots like a real store.
type memorySessions struct {
	snapshots map[conversation.Key]conversation.Snapshot
}

func newMemorySessions() *memorySessions {
	return &memorySessions{snapshots: map[conversation.Key]conversation.Snapshot{}}
}

func (m *memorySessions) Get(_ context.Context, key conversation.Key) (*conversation.Session, error) {
	snap, ok := m.snapshots[key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("conversation", key.String())
	}
	return conversation.RestoreSession(snap)
}

func (m *memorySessions) Save(_ context.Context, session *conversation.Session) error {
	m.snapshots[session.Key()] = session.Snapshot()
	return nil
}

func (m *memorySessions) Delete(_ context.Context, key conversation.Key) error {
	delete(m.snapshots, key)
	return nil
}

// step reports the dialogue step of userID's private chat.
func (m *memorySessions) step(userID int64) conversation.Step {
	return m.stepOf(conversation.PrivateKey(userID))
}

func (m *memorySessions) stepOf(key conversation.Key) conversation.Step {
	snap, ok := m.snapshots[key]
	if !ok {
		return conversation.StepIdle
	}
	s, err := conversation.RestoreSession(snap)
	if err != nil {
		return conversation.StepIdle
	}
	return s.Step()
}

type submitMock struct{ mock.Mock }

func (m *submitMock) Handle(ctx context.Context, cmd commands.SubmitQuizAnswersCommand) (commands.SubmitQuizAnswersResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SubmitQuizAnswersResult), args.Error(1)
}

type leaderboardMock struct{ mock.Mock }

func (m *leaderboardMock) Handle(ctx context.Context, query queries.GetLeaderboardQuery) (services.Leaderboard, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(services.Leaderboard), args.Error(1)
}

type exportMock struct{ mock.Mock }

func (m *exportMock) Handle(ctx context.Context, cmd commands.ExportCommand, w io.Writer) (int, error) {
	args := m.Called(ctx, cmd, w)
	return args.Int(0), args.Error(1)
}

type createMock struct{ mock.Mock }

func (m *createMock) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type assignMock struct{ mock.Mock }

func (m *assignMock) Handle(ctx context.Context, cmd commands.AssignOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type setStatusMock struct{ mock.Mock }

func (m *setStatusMock) Handle(ctx context.Context, cmd commands.SetOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type rateMock struct{ mock.Mock }

func (m *rateMock) Handle(ctx context.Context, cmd commands.RateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func command(chatID, userID int64, text string) tgbotapi.Update {
	name := text
	for i, r := range text {
		if r == ' ' {
			name = text[:i]
			break
		}
	}
	u := textMessage(chatID, userID, text)
	u.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}}
	return u
}

func textMessage(chatID, userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, FirstName: "Aziz", LastName: "Karimov", UserName: "aziz"},
		Chat:      &tgbotapi.Chat{ID: chatID, Type: "private"},
		Text:      text,
	}}
}
