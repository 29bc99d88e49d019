package telegram

import (
	"context"
	"log/slog"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/conversation"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const pollTimeoutSeconds = 30

// BotAPI is the part of *tgbotapi.BotAPI the routers use.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// UpdateSource is the long-polling half of *tgbotapi.BotAPI.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

// Poll feeds updates to handler one at a time until ctx is cancelled or the
// update channel closes. A panicking handler is logged and polling goes on.
func Poll(ctx context.Context, source UpdateSource, handler UpdateHandler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := source.GetUpdatesChan(cfg)
	defer source.StopReceivingUpdates()

	logger.InfoContext(ctx, "polling started")
	for {
		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "polling stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				logger.InfoContext(ctx, "update channel closed")
				return nil
			}
			dispatch(ctx, handler, update, logger)
		}
	}
}

func dispatch(ctx context.Context, handler UpdateHandler, update tgbotapi.Update, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "update handler panicked", "update_id", update.UpdateID, "panic", r)
		}
	}()
	handler.HandleUpdate(ctx, update)
}

func updateKind(update tgbotapi.Update) string {
	switch {
	case update.CallbackQuery != nil:
		return "callback"
	case update.Message == nil:
		return "other"
	case update.Message.IsCommand():
		return "command"
	case update.Message.Contact != nil:
		return "contact"
	case update.Message.Location != nil:
		return "location"
	case update.Message.Text != "":
		return "text"
	default:
		return "other"
	}
}

func fullName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// sessionKey scopes a dialogue to the sender, so members of a group chat do
// not answer each other's prompts. Callers guarantee msg.From is set.
func sessionKey(msg *tgbotapi.Message) conversation.Key {
	return conversation.Key{ChatID: msg.Chat.ID, UserID: msg.From.ID}
}

func userSet(ids []kernel.UserID) map[kernel.UserID]struct{} {
	set := make(map[kernel.UserID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
