package commands

import (
	"context"
	"io"

	"github.com/casper4088/quiz-bot/internal/core/ports"
)

// ExportSubmissionsCommandHandler writes the newest quiz submissions as a
// spreadsheet.
//
// Example:
//
//	var buf bytes.Buffer
//	cmd, _ := NewExportCommand(DefaultExportLimit)
//	n, err := handler.Handle(ctx, cmd, &buf)
//	if errors.Is(err, ErrNothingToExport) {
//	    // tell the admin there are no results yet
//	}
type ExportSubmissionsCommandHandler struct {
	uowFactory SubmissionUoWFactory
	exporter   ports.Exporter
}

func NewExportSubmissionsCommandHandler(uowFactory SubmissionUoWFactory, exporter ports.Exporter) ExportSubmissionsCommandHandler {
	return ExportSubmissionsCommandHandler{uowFactory: uowFactory, exporter: exporter}
}

// Handle returns the number of rows written.
func (h ExportSubmissionsCommandHandler) Handle(ctx context.Context, cmd ExportCommand, w io.Writer) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	submissions, err := uow.SubmissionRepository().ListRecent(ctx, cmd.Limit())
	if err != nil {
		return 0, err
	}
	if len(submissions) == 0 {
		return 0, ErrNothingToExport
	}

	if err = h.exporter.WriteSubmissions(w, submissions); err != nil {
		return 0, err
	}

	return len(submissions), nil
}
