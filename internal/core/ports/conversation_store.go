package ports

import (
	"context"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/conversation"
)

// ConversationStore keeps one session per user and chat.
type ConversationStore interface {
	// Get returns errs.ObjectNotFoundError when the key has no live session.
	// Expired sessions are reported as not found.
	Get(ctx context.Context, key conversation.Key) (*conversation.Session, error)
	Save(ctx context.Context, session *conversation.Session) error
	Delete(ctx context.Context, key conversation.Key) error
}
