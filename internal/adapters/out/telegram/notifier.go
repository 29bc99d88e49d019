package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/ports"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"
	"github.com/casper4088/quiz-bot/internal/pkg/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrUnknownEvent = errors.New("unknown order event")

// Sender is the part of *tgbotapi.BotAPI used for outgoing messages and edits.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// OrderNotifier implements ports.OrderNotifier on top of the service bot.
// Chat failures are logged and counted, never returned: the order change they
// report is already committed.
type OrderNotifier struct {
	sender     Sender
	broadcasts ports.BroadcastRepository
	agents     []kernel.UserID
	metrics    *metrics.BotMetrics
	logger     *slog.Logger
}

func NewOrderNotifier(
	sender Sender,
	broadcasts ports.BroadcastRepository,
	agents []kernel.UserID,
	m *metrics.BotMetrics,
	logger *slog.Logger,
) (*OrderNotifier, error) {
	if sender == nil {
		return nil, errs.NewValueIsRequiredError("sender")
	}
	if broadcasts == nil {
		return nil, errs.NewValueIsRequiredError("broadcasts")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OrderNotifier{
		sender:     sender,
		broadcasts: broadcasts,
		agents:     append([]kernel.UserID(nil), agents...),
		metrics:    m,
		logger:     logger.With("component", "order_notifier"),
	}, nil
}

func (n *OrderNotifier) Notify(ctx context.Context, note ports.OrderNotification) error {
	o := note.Order
	if err := o.Validate(); err != nil {
		return err
	}

	switch note.Event {
	case ports.OrderCreated:
		n.broadcastNew(ctx, o)
	case ports.OrderAssigned:
		n.refreshCards(ctx, o)
		n.send(ctx, o.Requester().Int64(), fmt.Sprintf(
			"🙋 Your order #%s was taken by agent %s. They will contact you soon.",
			o.ID().Short(), assignee(o)), nil)
	case ports.OrderStatusChanged:
		n.refreshCards(ctx, o)
		n.send(ctx, o.Requester().Int64(), fmt.Sprintf(
			"Order #%s status: %s", o.ID().Short(), StatusLabel(o.Status())), nil)
	case ports.OrderRatingRequested:
		markup := RatingKeyboard(o)
		n.send(ctx, o.Requester().Int64(), fmt.Sprintf(
			"✅ Order #%s is done. Please rate the service:", o.ID().Short()), &markup)
	case ports.OrderRated:
		n.refreshCards(ctx, o)
		if r := o.Rating(); r != nil {
			text := fmt.Sprintf("Order #%s was rated %s", o.ID().Short(), stars(r.Int()))
			for _, agent := range n.agents {
				n.send(ctx, agent.Int64(), text, nil)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, note.Event)
	}

	n.metrics.IncOrderEvent(string(note.Event))
	return nil
}

// broadcastNew posts the card to every agent and remembers each message.
func (n *OrderNotifier) broadcastNew(ctx context.Context, o *order.Order) {
	card := OrderCard(o)
	for _, agent := range n.agents {
		chatID := agent.Int64()
		sent, ok := n.send(ctx, chatID, card, AgentKeyboard(o, chatID))
		if !ok {
			continue
		}

		err := n.broadcasts.Add(ctx, ports.Broadcast{
			OrderID:   o.ID(),
			ChatID:    chatID,
			MessageID: sent.MessageID,
		})
		if err != nil {
			n.logger.ErrorContext(ctx, "recording broadcast failed",
				"order_id", o.ID().String(), "chat_id", chatID, "error", err)
		}
	}
}

// refreshCards edits every broadcast copy of the card to the current state.
func (n *OrderNotifier) refreshCards(ctx context.Context, o *order.Order) {
	broadcasts, err := n.broadcasts.ListByOrder(ctx, o.ID())
	if err != nil {
		n.logger.ErrorContext(ctx, "listing broadcasts failed", "order_id", o.ID().String(), "error", err)
		return
	}

	card := OrderCard(o)
	for _, b := range broadcasts {
		edit := tgbotapi.NewEditMessageText(b.ChatID, b.MessageID, card)
		edit.ReplyMarkup = AgentKeyboard(o, b.ChatID)

		if _, sendErr := n.sender.Send(edit); sendErr != nil {
			n.metrics.IncNotifyFailure("edit")
			n.logger.WarnContext(ctx, "editing order card failed",
				"order_id", o.ID().String(),
				"chat_id", b.ChatID,
				"message_id", b.MessageID,
				"error", sendErr)
		}
	}
}

func (n *OrderNotifier) send(
	ctx context.Context,
	chatID int64,
	text string,
	markup *tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}

	sent, err := n.sender.Send(msg)
	if err != nil {
		n.metrics.IncNotifyFailure("send")
		n.logger.WarnContext(ctx, "sending message failed", "chat_id", chatID, "error", err)
		return tgbotapi.Message{}, false
	}
	return sent, true
}

func assignee(o *order.Order) string {
	if agent := o.AssignedTo(); agent != nil {
		return agent.String()
	}
	return "?"
}
