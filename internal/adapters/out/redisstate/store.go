// Package redisstate keeps chat sessions in Redis as JSON. Redis expires the
// keys, so the session TTL is enforced by the server.
package redisstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/conversation"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "quizbot:conversation:"

// NewClient parses a redis:// or rediss:// URL and checks the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

// ConversationStore implements ports.ConversationStore. Sessions of
// different bots live under different scopes. A ttl of zero stores sessions
// without expiry.
type ConversationStore struct {
	client redis.Cmdable
	scope  string
	ttl    time.Duration
}

func NewConversationStore(client redis.Cmdable, scope string, ttl time.Duration) *ConversationStore {
	return &ConversationStore{client: client, scope: scope, ttl: ttl}
}

// Key is the Redis key of a session, e.g. "quizbot:conversation:quiz:-100123:42".
func Key(scope string, key conversation.Key) string {
	return keyPrefix + scope + ":" + key.String()
}

func (s *ConversationStore) Get(ctx context.Context, key conversation.Key) (*conversation.Session, error) {
	payload, err := s.client.Get(ctx, Key(s.scope, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.NewObjectNotFoundError("conversation", key.String())
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var snap conversation.Snapshot
	if err = json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	return conversation.RestoreSession(snap)
}

func (s *ConversationStore) Save(ctx context.Context, session *conversation.Session) error {
	if session == nil {
		return errs.NewValueIsRequiredError("session")
	}

	payload, err := json.Marshal(session.Snapshot())
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err = s.client.Set(ctx, Key(s.scope, session.Key()), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

func (s *ConversationStore) Delete(ctx context.Context, key conversation.Key) error {
	if err := s.client.Del(ctx, Key(s.scope, key)).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
