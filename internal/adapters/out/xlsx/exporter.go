// Package xlsx writes submissions and orders as spreadsheets.
package xlsx

import (
	"fmt"
	"io"
	"strconv"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"

	"github.com/xuri/excelize/v2"
)

const (
	SubmissionsSheet = "Results"
	OrdersSheet      = "Orders"

	columnWidth = 18
	timeLayout  = "2006-01-02 15:04:05"
)

var (
	submissionHeaders = []any{
		"ID", "UserID", "Full name", "Username", "QuizID", "Answers", "Score", "Total", "CreatedAt",
	}
	orderHeaders = []any{
		"ID", "CreatedAt", "Status", "ServiceType", "Name", "Phone", "Problem", "Address",
		"Latitude", "Longitude", "Requester", "AssignedTo", "Rating", "RatedAgent",
	}
)

// Exporter implements ports.Exporter. It keeps no state between calls.
type Exporter struct{}

func NewExporter() Exporter {
	return Exporter{}
}

func (Exporter) WriteSubmissions(w io.Writer, submissions []*quiz.Submission) error {
	rows := make([][]any, 0, len(submissions))
	for _, s := range submissions {
		p := s.Participant()
		rows = append(rows, []any{
			s.ID().String(),
			p.UserID.Int64(),
			p.FullName,
			p.Username,
			s.QuizID(),
			s.Answers(),
			s.Score(),
			s.Total(),
			s.CreatedAt().UTC().Format(timeLayout),
		})
	}
	return writeSheet(w, SubmissionsSheet, submissionHeaders, rows)
}

func (Exporter) WriteOrders(w io.Writer, orders []*order.Order) error {
	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		d := o.Details()

		var lat, lon any = "", ""
		if loc := d.Location(); loc != nil {
			lat, lon = loc.Latitude(), loc.Longitude()
		}

		assignedTo := ""
		if agent := o.AssignedTo(); agent != nil {
			assignedTo = agent.String()
		}
		rating := ""
		if r := o.Rating(); r != nil {
			rating = strconv.Itoa(r.Int())
		}
		ratedAgent := ""
		if agent := o.RatedAgent(); agent != nil {
			ratedAgent = agent.String()
		}

		rows = append(rows, []any{
			o.ID().String(),
			o.CreatedAt().UTC().Format(timeLayout),
			o.Status().String(),
			d.ServiceType().String(),
			d.Name(),
			d.Phone(),
			d.Problem(),
			d.Address(),
			lat,
			lon,
			o.Requester().Int64(),
			assignedTo,
			rating,
			ratedAgent,
		})
	}
	return writeSheet(w, OrdersSheet, orderHeaders, rows)
}

func writeSheet(w io.Writer, sheet string, headers []any, rows [][]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, columnWidth); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err = f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		cell, cellErr := excelize.CoordinatesToCellName(1, i+2)
		if cellErr != nil {
			return cellErr
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if _, err = f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
