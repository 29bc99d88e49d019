package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler returns the newest orders first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]OrderView, 0)
	err := h.db.WithContext(ctx).
		Raw(`SELECT `+orderViewColumns+` FROM orders ORDER BY created_at DESC, id LIMIT ?`, query.Limit()).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}

	return views, nil
}
