// Package conversationrepo keeps chat sessions in the relational store. It is
// the default ports.ConversationStore when no Redis URL is configured.
package conversationrepo

import (
	"context"
	"errors"
	"time"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/conversation"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationDTO struct {
	Scope       string `gorm:"primaryKey;size:16"`
	ChatID      int64  `gorm:"primaryKey;autoIncrement:false"`
	UserID      int64  `gorm:"primaryKey;autoIncrement:false"`
	Step        string `gorm:"size:32;not null"`
	ServiceType string `gorm:"size:32"`
	Name        string `gorm:"size:100"`
	Phone       string `gorm:"size:32"`
	Problem     string `gorm:"size:1000"`
	Address     string `gorm:"size:300"`
	Latitude    *float64
	Longitude   *float64
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (ConversationDTO) TableName() string {
	return "conversations"
}

// GormConversationStore keeps the sessions of one bot, named by scope. It
// treats sessions older than ttl as absent and removes them on read. A ttl of
// zero keeps sessions forever.
type GormConversationStore struct {
	db    *gorm.DB
	scope string
	ttl   time.Duration
	clock kernel.Clock
}

func NewGormConversationStore(db *gorm.DB, scope string, ttl time.Duration, clock kernel.Clock) *GormConversationStore {
	return &GormConversationStore{db: db, scope: scope, ttl: ttl, clock: clock}
}

func (s *GormConversationStore) Get(ctx context.Context, key conversation.Key) (*conversation.Session, error) {
	var dto ConversationDTO
	err := s.db.WithContext(ctx).
		First(&dto, "scope = ? AND chat_id = ? AND user_id = ?", s.scope, key.ChatID, key.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("conversation", key.String())
		}
		return nil, err
	}

	session, err := conversation.RestoreSession(toSnapshot(dto))
	if err != nil {
		return nil, err
	}

	if session.IsExpired(s.clock.Now(), s.ttl) {
		if err = s.Delete(ctx, key); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("conversation", key.String())
	}

	return session, nil
}

// Save inserts or overwrites the session under its key.
func (s *GormConversationStore) Save(ctx context.Context, session *conversation.Session) error {
	if session == nil {
		return errs.NewValueIsRequiredError("session")
	}

	dto := fromSnapshot(session.Snapshot())
	dto.Scope = s.scope
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}, {Name: "chat_id"}, {Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

func (s *GormConversationStore) Delete(ctx context.Context, key conversation.Key) error {
	return s.db.WithContext(ctx).
		Delete(&ConversationDTO{}, "scope = ? AND chat_id = ? AND user_id = ?", s.scope, key.ChatID, key.UserID).Error
}

// DeleteExpired removes every session untouched for longer than the ttl and
// reports how many were removed.
func (s *GormConversationStore) DeleteExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.clock.Now().Add(-s.ttl).UTC()
	res := s.db.WithContext(ctx).Where("scope = ? AND updated_at < ?", s.scope, cutoff).Delete(&ConversationDTO{})
	return res.RowsAffected, res.Error
}

func fromSnapshot(snap conversation.Snapshot) ConversationDTO {
	return ConversationDTO{
		ChatID:      snap.ChatID,
		UserID:      snap.UserID,
		Step:        snap.Step,
		ServiceType: snap.ServiceType,
		Name:        snap.Name,
		Phone:       snap.Phone,
		Problem:     snap.Problem,
		Address:     snap.Address,
		Latitude:    snap.Latitude,
		Longitude:   snap.Longitude,
		UpdatedAt:   snap.UpdatedAt.UTC(),
	}
}

func toSnapshot(dto ConversationDTO) conversation.Snapshot {
	return conversation.Snapshot{
		ChatID:      dto.ChatID,
		UserID:      dto.UserID,
		Step:        dto.Step,
		ServiceType: dto.ServiceType,
		Name:        dto.Name,
		Phone:       dto.Phone,
		Problem:     dto.Problem,
		Address:     dto.Address,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		UpdatedAt:   dto.UpdatedAt.UTC(),
	}
}
