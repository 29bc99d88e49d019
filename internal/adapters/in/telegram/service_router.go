package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	outbound "github.com/casper4088/quiz-bot/internal/adapters/out/telegram"
	"github.com/casper4088/quiz-bot/internal/core/application/usecases/commands"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/conversation"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/ports"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"
	"github.com/casper4088/quiz-bot/internal/pkg/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const serviceBotName = "service"

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type AssignOrderHandler interface {
	Handle(ctx context.Context, cmd commands.AssignOrderCommand) (*order.Order, error)
}

type SetOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.SetOrderStatusCommand) (*order.Order, error)
}

type RateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.RateOrderCommand) (*order.Order, error)
}

// ServiceRouterDeps wires a ServiceRouter.
type ServiceRouterDeps struct {
	Bot       BotAPI
	Sessions  ports.ConversationStore
	Create    CreateOrderHandler
	Assign    AssignOrderHandler
	SetStatus SetOrderStatusHandler
	Rate      RateOrderHandler
	Agents    []kernel.UserID
	Clock     kernel.Clock
	Metrics   *metrics.BotMetrics
	Logger    *slog.Logger
}

// ServiceRouter runs the order form for requesters and turns agent and
// requester button presses into order commands.
type ServiceRouter struct {
	bot       BotAPI
	sessions  ports.ConversationStore
	create    CreateOrderHandler
	assign    AssignOrderHandler
	setStatus SetOrderStatusHandler
	rate      RateOrderHandler
	agents    map[kernel.UserID]struct{}
	clock     kernel.Clock
	metrics   *metrics.BotMetrics
	logger    *slog.Logger
}

func NewServiceRouter(deps ServiceRouterDeps) (*ServiceRouter, error) {
	if deps.Bot == nil {
		return nil, errs.NewValueIsRequiredError("bot")
	}
	if deps.Sessions == nil {
		return nil, errs.NewValueIsRequiredError("sessions")
	}
	if deps.Create == nil || deps.Assign == nil || deps.SetStatus == nil || deps.Rate == nil {
		return nil, errs.NewValueIsRequiredError("order handlers")
	}
	if deps.Clock == nil {
		deps.Clock = kernel.RealClock()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &ServiceRouter{
		bot:       deps.Bot,
		sessions:  deps.Sessions,
		create:    deps.Create,
		assign:    deps.Assign,
		setStatus: deps.SetStatus,
		rate:      deps.Rate,
		agents:    userSet(deps.Agents),
		clock:     deps.Clock,
		metrics:   deps.Metrics,
		logger:    deps.Logger.With("bot", serviceBotName),
	}, nil
}

func (r *ServiceRouter) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		r.metrics.IncUpdate(serviceBotName, updateKind(update))
		r.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		r.metrics.IncUpdate(serviceBotName, updateKind(update))
		msg := update.Message
		if err := r.handleMessage(ctx, msg); err != nil {
			r.logger.ErrorContext(ctx, "failed to handle message",
				"chat_id", msg.Chat.ID, "user_id", msg.From.ID, "error", err)
			r.send(ctx, tgbotapi.NewMessage(msg.Chat.ID, textSomethingWentWrong))
		}
	}
}

func (r *ServiceRouter) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.IsCommand() {
		return r.handleCommand(ctx, msg)
	}

	chatID := msg.Chat.ID
	session, err := r.sessions.Get(ctx, sessionKey(msg))
	if errors.Is(err, errs.ErrObjectNotFound) {
		r.send(ctx, tgbotapi.NewMessage(chatID, textNoOpenOrder))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !session.Step().IsOrderForm() {
		r.send(ctx, tgbotapi.NewMessage(chatID, textNoOpenOrder))
		return nil
	}

	in, ok := classifyInput(msg, session.Step())
	if !ok {
		r.prompt(ctx, chatID, session, textTryAgain)
		return nil
	}

	step, err := session.Apply(in, r.clock.Now())
	if err != nil {
		if isUserInputError(err) {
			r.logger.DebugContext(ctx, "input rejected", "chat_id", chatID, "step", session.Step(), "error", err)
			r.prompt(ctx, chatID, session, textTryAgain)
			return nil
		}
		return err
	}

	if step != conversation.StepIdle {
		if err = r.sessions.Save(ctx, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		r.prompt(ctx, chatID, session, "")
		return nil
	}

	return r.finishForm(ctx, msg, session)
}

func (r *ServiceRouter) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "order":
		session := conversation.NewSession(sessionKey(msg), r.clock.Now())
		session.StartOrder(r.clock.Now())
		if err := r.sessions.Save(ctx, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		r.prompt(ctx, chatID, session, "")
	case "cancel":
		if err := r.sessions.Delete(ctx, sessionKey(msg)); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		reply := tgbotapi.NewMessage(chatID, textOrderCanceled)
		reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		r.send(ctx, reply)
	default:
		r.send(ctx, tgbotapi.NewMessage(chatID, serviceHelp(r.isAgent(msg.From.ID))))
	}
	return nil
}

// finishForm runs once the confirmation step is answered: a confirmed form
// becomes an order, a canceled one is dropped.
func (r *ServiceRouter) finishForm(ctx context.Context, msg *tgbotapi.Message, session *conversation.Session) error {
	chatID := msg.Chat.ID
	if err := r.sessions.Delete(ctx, session.Key()); err != nil {
		r.logger.WarnContext(ctx, "failed to close order session", "session", session.Key().String(), "error", err)
	}

	details, err := session.TakeCompleted()
	if errors.Is(err, conversation.ErrNoCompletedForm) {
		reply := tgbotapi.NewMessage(chatID, textOrderCanceled)
		reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		r.send(ctx, reply)
		return nil
	}
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.UserID(msg.From.ID), details)
	if err != nil {
		return err
	}
	created, err := r.create.Handle(ctx, cmd)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	reply := tgbotapi.NewMessage(chatID,
		fmt.Sprintf("✅ Order #%s is created. An agent will take it soon.", created.ID().Short()))
	reply.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	r.send(ctx, reply)
	return nil
}

func (r *ServiceRouter) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if q.From == nil {
		return
	}
	user := kernel.UserID(q.From.ID)

	cb, err := outbound.ParseCallback(q.Data)
	if err != nil {
		r.logger.DebugContext(ctx, "unknown callback", "data", q.Data, "error", err)
		r.answer(ctx, q.ID, textStaleButton)
		return
	}

	var answer string
	switch cb.Kind {
	case outbound.CallbackTake:
		answer = r.take(ctx, cb.OrderID, user)
	case outbound.CallbackStatus:
		answer = r.changeStatus(ctx, cb.OrderID, user, cb.Status)
	case outbound.CallbackRate:
		answer = r.rateOrder(ctx, q, cb.OrderID, user, cb.Score)
	default:
		answer = textStaleButton
	}
	r.answer(ctx, q.ID, answer)
}

func (r *ServiceRouter) take(ctx context.Context, orderID kernel.UUID, agent kernel.UserID) string {
	if !r.isAgent(agent.Int64()) {
		return "Only agents can take orders."
	}
	cmd, err := commands.NewAssignOrderCommand(orderID, agent)
	if err != nil {
		return r.callbackError(ctx, err)
	}
	o, err := r.assign.Handle(ctx, cmd)
	if err != nil {
		return r.callbackError(ctx, err)
	}
	return fmt.Sprintf("Order #%s is yours.", o.ID().Short())
}

func (r *ServiceRouter) changeStatus(ctx context.Context, orderID kernel.UUID, agent kernel.UserID, status order.Status) string {
	cmd, err := commands.NewSetOrderStatusCommand(orderID, agent, status)
	if err != nil {
		return r.callbackError(ctx, err)
	}
	o, err := r.setStatus.Handle(ctx, cmd)
	if err != nil {
		return r.callbackError(ctx, err)
	}
	return "Status: " + outbound.StatusLabel(o.Status())
}

func (r *ServiceRouter) rateOrder(
	ctx context.Context,
	q *tgbotapi.CallbackQuery,
	orderID kernel.UUID,
	requester kernel.UserID,
	score int,
) string {
	cmd, err := commands.NewRateOrderCommand(orderID, requester, score)
	if err != nil {
		return r.callbackError(ctx, err)
	}
	o, err := r.rate.Handle(ctx, cmd)
	if err != nil {
		return r.callbackError(ctx, err)
	}

	text := fmt.Sprintf("Thank you! Order #%s is rated %d/5.", o.ID().Short(), score)
	if q.Message != nil && q.Message.Chat != nil {
		r.send(ctx, tgbotapi.NewEditMessageText(q.Message.Chat.ID, q.Message.MessageID, text))
	}
	return text
}

// callbackError turns a command failure into the short text shown on the
// pressed button. Unexpected failures are logged.
func (r *ServiceRouter) callbackError(ctx context.Context, err error) string {
	var taken *order.AlreadyAssignedError
	switch {
	case errors.As(err, &taken):
		return fmt.Sprintf("Already taken by agent %s.", taken.Assignee)
	case errors.Is(err, order.ErrNotAssignedYet):
		return "Take the order first."
	case errors.Is(err, order.ErrWrongAgent):
		return "This order belongs to another agent."
	case errors.Is(err, order.ErrInvalidStatus):
		return "Unknown status."
	case errors.Is(err, order.ErrInvalidRating):
		return "Rating must be from 1 to 5."
	case errors.Is(err, order.ErrWrongRequester):
		return "Only the customer can rate this order."
	case errors.Is(err, order.ErrAlreadyRated):
		return "This order is already rated."
	case errors.Is(err, order.ErrNotDoneYet):
		return "The order is not done yet."
	case errors.Is(err, errs.ErrObjectNotFound):
		return "Order not found."
	default:
		r.logger.ErrorContext(ctx, "failed to handle callback", "error", err)
		return textSomethingWentWrong
	}
}

func (r *ServiceRouter) prompt(ctx context.Context, chatID int64, session *conversation.Session, prefix string) {
	text := stepPrompt(session.Step(), session.Draft())
	if prefix != "" {
		text = prefix + "\n\n" + text
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = stepKeyboard(session.Step())
	r.send(ctx, msg)
}

func (r *ServiceRouter) isAgent(userID int64) bool {
	_, ok := r.agents[kernel.UserID(userID)]
	return ok
}

func (r *ServiceRouter) send(ctx context.Context, c tgbotapi.Chattable) {
	if _, err := r.bot.Send(c); err != nil {
		r.logger.WarnContext(ctx, "failed to send reply", "error", err)
	}
}

func (r *ServiceRouter) answer(ctx context.Context, callbackID, text string) {
	if _, err := r.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		r.logger.WarnContext(ctx, "failed to answer callback", "error", err)
	}
}

// classifyInput maps a message onto form input. Confirmation buttons arrive
// as plain text and are recognized by their labels.
func classifyInput(msg *tgbotapi.Message, step conversation.Step) (conversation.Input, bool) {
	switch {
	case msg.Contact != nil:
		return conversation.ContactInput(msg.Contact.PhoneNumber), true
	case msg.Location != nil:
		loc, err := kernel.NewLocation(msg.Location.Latitude, msg.Location.Longitude)
		if err != nil {
			return conversation.Input{}, false
		}
		return conversation.LocationInput(loc), true
	case msg.Text == "":
		return conversation.Input{}, false
	case step == conversation.StepAwaitingConfirmation && msg.Text == labelConfirm:
		return conversation.ChoiceInput(conversation.ChoiceConfirm), true
	case step == conversation.StepAwaitingConfirmation && msg.Text == labelCancel:
		return conversation.ChoiceInput(conversation.ChoiceCancel), true
	default:
		return conversation.TextInput(msg.Text), true
	}
}

func isUserInputError(err error) bool {
	return errors.Is(err, conversation.ErrUnexpectedInput) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

func stepKeyboard(step conversation.Step) any {
	switch step {
	case conversation.StepAwaitingServiceType:
		types := order.ServiceTypes()
		rows := make([][]tgbotapi.KeyboardButton, 0, (len(types)+1)/2)
		for i := 0; i < len(types); i += 2 {
			row := tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(outbound.ServiceTypeLabel(types[i])))
			if i+1 < len(types) {
				row = append(row, tgbotapi.NewKeyboardButton(outbound.ServiceTypeLabel(types[i+1])))
			}
			rows = append(rows, row)
		}
		return replyKeyboard(rows...)
	case conversation.StepAwaitingPhone:
		return replyKeyboard(tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact("📞 Share contact")))
	case conversation.StepAwaitingAddress:
		return replyKeyboard(tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonLocation("📍 Share location")))
	case conversation.StepAwaitingConfirmation:
		return replyKeyboard(tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(labelConfirm),
			tgbotapi.NewKeyboardButton(labelCancel),
		))
	default:
		return tgbotapi.NewRemoveKeyboard(true)
	}
}

func replyKeyboard(rows ...[]tgbotapi.KeyboardButton) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}
