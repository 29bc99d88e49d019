package commands

import (
	"context"
	"io"

	"github.com/casper4088/quiz-bot/internal/core/ports"
)

// ExportOrdersCommandHandler writes the newest orders as a spreadsheet.
type ExportOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	exporter   ports.Exporter
}

func NewExportOrdersCommandHandler(uowFactory OrderUoWFactory, exporter ports.Exporter) ExportOrdersCommandHandler {
	return ExportOrdersCommandHandler{uowFactory: uowFactory, exporter: exporter}
}

// Handle returns the number of rows written.
func (h ExportOrdersCommandHandler) Handle(ctx context.Context, cmd ExportCommand, w io.Writer) (int, error) {
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

	orders, err := uow.OrderRepository().List(ctx, cmd.Limit())
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, ErrNothingToExport
	}

	if err = h.exporter.WriteOrders(w, orders); err != nil {
		return 0, err
	}

	return len(orders), nil
}
