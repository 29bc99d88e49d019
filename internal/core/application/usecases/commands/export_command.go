package commands

import (
	"errors"

	"github.com/casper4088/quiz-bot/internal/pkg/errs"
	"github.com/casper4088/quiz-bot/internal/pkg/guard"
)

// DefaultExportLimit caps the number of rows written to one spreadsheet.
const DefaultExportLimit = 20000

var (
	ErrExportCommandIsNotConstructed = errors.New(
		"ExportCommand must be created via NewExportCommand constructor",
	)

	// ErrNothingToExport is returned when there are no rows yet. No
	// spreadsheet is written in that case.
	ErrNothingToExport = errors.New("nothing to export")
)

// ExportCommand asks for the newest rows, at most limit of them.
// It drives both the submissions and the orders export.
type ExportCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

func NewExportCommand(limit int) (ExportCommand, error) {
	if limit <= 0 {
		return ExportCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, DefaultExportLimit)
	}
	return ExportCommand{limit: min(limit, DefaultExportLimit), guard: guard.NewConstructorGuard()}, nil
}

func (c ExportCommand) Validate() error {
	return c.guard.Validate(ErrExportCommandIsNotConstructed)
}

func (c ExportCommand) Limit() int {
	return c.limit
}
