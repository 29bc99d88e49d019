package queries

import (
	"errors"

	"github.com/casper4088/quiz-bot/internal/pkg/errs"
	"github.com/casper4088/quiz-bot/internal/pkg/guard"
)

const MaxListLimit = 1000

var ErrListQueryIsNotConstructed = errors.New(
	"ListQuery must be created via NewListQuery constructor",
)

// ListQuery pages the newest rows of a table, used by ListOrders and
// ListSubmissions.
type ListQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewListQuery(limit int) (ListQuery, error) {
	if limit <= 0 || limit > MaxListLimit {
		return ListQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	return ListQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListQuery) Validate() error {
	return q.guard.Validate(ErrListQueryIsNotConstructed)
}

func (q ListQuery) Limit() int {
	return q.limit
}
