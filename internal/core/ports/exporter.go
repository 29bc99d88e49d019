package ports

import (
	"io"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"
)

// Exporter renders rows as a spreadsheet.
type Exporter interface {
	WriteSubmissions(w io.Writer, submissions []*quiz.Submission) error
	WriteOrders(w io.Writer, orders []*order.Order) error
}
