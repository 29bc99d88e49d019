package telegram_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/casper4088/quiz-bot/internal/adapters/out/telegram"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/ports"
	"github.com/casper4088/quiz-bot/internal/pkg/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	requester kernel.UserID = 10
	agentA    kernel.UserID = 20
	agentB    kernel.UserID = 30
)

type fakeSender struct {
	mu     sync.Mutex
	sent   []tgbotapi.Chattable
	failOn map[int64]bool
	nextID int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var chatID int64
	switch v := c.(type) {
	case tgbotapi.MessageConfig:
		chatID = v.ChatID
	case tgbotapi.EditMessageTextConfig:
		chatID = v.ChatID
	}
	if f.failOn[chatID] {
		return tgbotapi.Message{}, errors.New("Forbidden: bot was blocked by the user")
	}

	f.sent = append(f.sent, c)
	f.nextID++
	return tgbotapi.Message{MessageID: f.nextID, Chat: &tgbotapi.Chat{ID: chatID}}, nil
}

func (f *fakeSender) messages() []tgbotapi.MessageConfig {
	var out []tgbotapi.MessageConfig
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeSender) edits() []tgbotapi.EditMessageTextConfig {
	var out []tgbotapi.EditMessageTextConfig
	for _, c := range f.sent {
		if e, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			out = append(out, e)
		}
	}
	return out
}

type memoryBroadcasts struct {
	items []ports.Broadcast
}

func (m *memoryBroadcasts) Add(_ context.Context, b ports.Broadcast) error {
	m.items = append(m.items, b)
	return nil
}

func (m *memoryBroadcasts) ListByOrder(_ context.Context, id kernel.UUID) ([]ports.Broadcast, error) {
	var out []ports.Broadcast
	for _, b := range m.items {
		if b.OrderID.IsEqual(id) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fixture struct {
	sender     *fakeSender
	broadcasts *memoryBroadcasts
	metrics    *metrics.BotMetrics
	registry   *prometheus.Registry
	notifier   *telegram.OrderNotifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		sender:     &fakeSender{failOn: map[int64]bool{}},
		broadcasts: &memoryBroadcasts{},
		registry:   prometheus.NewRegistry(),
	}
	f.metrics = metrics.NewBotMetrics(f.registry)

	n, err := telegram.NewOrderNotifier(f.sender, f.broadcasts, []kernel.UserID{agentA, agentB}, f.metrics,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	f.notifier = n
	return f
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	details, err := order.NewDetails(order.Repair, "Aziz", "+998 90 123 45 67", "Leaking kitchen tap", "Chilonzor 7", nil)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), requester, details, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func note(event ports.OrderEvent, o *order.Order) ports.OrderNotification {
	return ports.OrderNotification{Event: event, Order: o, Actions: o.AvailableActions()}
}

func TestOrderNotifier_Created_BroadcastsToAgents(t *testing.T) {
	f := newFixture(t)
	o := newOrder(t)

	require.NoError(t, f.notifier.Notify(t.Context(), note(ports.OrderCreated, o)))

	msgs := f.sender.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, agentA.Int64(), msgs[0].ChatID)
	assert.Equal(t, agentB.Int64(), msgs[1].ChatID)
	assert.Contains(t, msgs[0].Text, "Order #"+o.ID().Short())
	assert.Contains(t, msgs[0].Text, "Leaking kitchen tap")

	markup, ok := msgs[0].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 1)
	require.Len(t, markup.InlineKeyboard[0], 1)
	assert.Equal(t, "take:"+o.ID().String(), *markup.InlineKeyboard[0][0].CallbackData)

	require.Len(t, f.broadcasts.items, 2)
	assert.Equal(t, ports.Broadcast{OrderID: o.ID(), ChatID: agentA.Int64(), MessageID: 1}, f.broadcasts.items[0])
	require.NoError(t, testutil.GatherAndCompare(f.registry, strings.NewReader(`
# HELP order_events_total Order lifecycle notifications dispatched, by event.
# TYPE order_events_total counter
order_events_total{event="created"} 1
`), "order_events_total"))
}

func TestOrderNotifier_Created_SkipsFailedAgents(t *testing.T) {
	f := newFixture(t)
	f.sender.failOn[agentA.Int64()] = true
	o := newOrder(t)

	require.NoError(t, f.notifier.Notify(t.Context(), note(ports.OrderCreated, o)))

	require.Len(t, f.broadcasts.items, 1)
	assert.Equal(t, agentB.Int64(), f.broadcasts.items[0].ChatID)
	require.NoError(t, testutil.GatherAndCompare(f.registry, strings.NewReader(`
# HELP notification_failures_total Chat messages that could not be sent or edited, by operation.
# TYPE notification_failures_total counter
notification_failures_total{op="send"} 1
`), "notification_failures_total"))
}

func TestOrderNotifier_Assigned_EditsEveryCopy(t *testing.T) {
	f := newFixture(t)
	o := newOrder(t)
	require.NoError(t, f.notifier.Notify(t.Context(), note(ports.OrderCreated, o)))
	require.NoError(t, o.Assign(agentA))

	require.NoError(t, f.notifier.Notify(t.Context(), note(ports.OrderAssigned, o)))

	edits := f.sender.edits()
	require.Len(t, edits, 2)
	assert.Equal(t, agentA.Int64(), edits[0].ChatID)
	assert.Equal(t, 1, edits[0].MessageID)
	assert.Contains(t, edits[0].Text, "Agent: 20")
	require.NotNil(t, edits[0].ReplyMarkup, "assignee gets status buttons")
	var data []string
	for _, b := range edits[0].ReplyMarkup.InlineKeyboard[0] {
		data = append(data, *b.CallbackData)
	}
	assert.Equal(t, []string{
		"status:" + o.ID().String() + ":in_progress",
		"status:" + o.ID().String() + ":done",
	}, data)
	assert.Nil(t, edits[1].ReplyMarkup, "other agents lose the take button")

	msgs := f.sender.messages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, requester.Int64(), last.ChatID)
	assert.Contains(t, last.Text, "taken by agent 20")
}

func TestOrderNotifier_StatusChangedAndRatingRequested(t *testing.T) {
	f := newFixture(t)
	o := newOrder(t)
	require.NoError(t, f.notifier.Notify(t.Context(), note(ports.OrderCreated, o)))
	require.NoError(t, o.Assign(agentA))
	require.NoError(t, o.SetStatus(agentA, order.Done))

	require.NoError(t, f.notifier.Notify(t.Context(), note(ports.OrderStatusChanged, o)))
	require.NoError(t, f.notifier.Notify(t.Context(), note(ports.OrderRatingRequested, o)))

	msgs := f.sender.messages()
	statusMsg, ratingMsg := msgs[len(msgs)-2], msgs[len(msgs)-1]
	assert.Equal(t, requester.Int64(), statusMsg.ChatID)
	assert.Contains(t, statusMsg.Text, "Done")

	assert.Equal(t, requester.Int64(), ratingMsg.ChatID)
	markup, ok := ratingMsg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard[0], 5)
	assert.Equal(t, "rate:"+o.ID().String()+":1", *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "rate:"+o.ID().String()+":5", *markup.InlineKeyboard[0][4].CallbackData)
}

func TestOrderNotifier_Rated_TellsAgents(t *testing.T) {
	f := newFixture(t)
	o := newOrder(t)
	require.NoError(t, o.Assign(agentA))
	require.NoError(t, o.SetStatus(agentA, order.Done))
	require.NoError(t, o.Rate(requester, 4))

	require.NoError(t, f.notifier.Notify(t.Context(), note(ports.OrderRated, o)))

	msgs := f.sender.messages()
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Contains(t, m.Text, "(4/5)")
	}
}

func TestOrderNotifier_Rejects(t *testing.T) {
	f := newFixture(t)

	require.ErrorIs(t, f.notifier.Notify(t.Context(), ports.OrderNotification{Event: ports.OrderCreated}),
		order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, f.notifier.Notify(t.Context(), note("archived", newOrder(t))), telegram.ErrUnknownEvent)

	_, err := telegram.NewOrderNotifier(nil, f.broadcasts, nil, nil, nil)
	require.Error(t, err)
}
