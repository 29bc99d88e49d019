package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionView is one stored quiz attempt as exported and served by the API.
type SubmissionView struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	QuizID    string    `json:"quiz_id"`
	Answers   string    `json:"answers"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// ListSubmissionsQueryHandler returns the newest submissions first.
type ListSubmissionsQueryHandler struct {
	db *gorm.DB
}

func NewListSubmissionsQueryHandler(db *gorm.DB) ListSubmissionsQueryHandler {
	return ListSubmissionsQueryHandler{db: db}
}

func (h ListSubmissionsQueryHandler) Handle(ctx context.Context, query ListQuery) ([]SubmissionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]SubmissionView, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, user_id, full_name, username, quiz_id, answers, score, total, created_at
		FROM submissions
		ORDER BY created_at DESC, id
		LIMIT ?
	`, query.Limit()).Scan(&views).Error
	if err != nil {
		return nil, err
	}

	return views, nil
}
