package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/casper4088/quiz-bot/internal/adapters/out/xlsx"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/order"
	"github.com/casper4088/quiz-bot/internal/core/domain/model/quiz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var at = time.Date(2026, 3, 8, 7, 45, 0, 0, time.UTC)

func readSheet(t *testing.T, buf *bytes.Buffer, sheet string) (*excelize.File, [][]string) {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return f, rows
}

func TestExporter_WriteSubmissions(t *testing.T) {
	p, err := quiz.NewParticipant(42, "Aziza Karimova", "@aziza")
	require.NoError(t, err)
	id := kernel.NewUUID()
	s, err := quiz.RestoreSubmission(id, p, "quiz_001", "1:A,2:C", 17, 20, at)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, xlsx.NewExporter().WriteSubmissions(&buf, []*quiz.Submission{s}))

	f, rows := readSheet(t, &buf, xlsx.SubmissionsSheet)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "UserID", "Full name", "Username", "QuizID", "Answers", "Score", "Total", "CreatedAt"}, rows[0])
	assert.Equal(t, []string{id.String(), "42", "Aziza Karimova", "aziza", "quiz_001", "1:A,2:C", "17", "20", "2026-03-08 07:45:00"}, rows[1])
	assert.Equal(t, []string{xlsx.SubmissionsSheet}, f.GetSheetList())

	width, err := f.GetColWidth(xlsx.SubmissionsSheet, "I")
	require.NoError(t, err)
	assert.InDelta(t, 18.0, width, 0)
}

func TestExporter_WriteOrders(t *testing.T) {
	loc, err := kernel.NewLocation(41.5, 69.25)
	require.NoError(t, err)
	details, err := order.NewDetails(order.Repair, "Sardor", "+998 99 111 22 33", "Broken washing machine", "", &loc)
	require.NoError(t, err)
	id := kernel.NewUUID()
	agent := kernel.UserID(700)
	score := 5
	rated, err := order.RestoreOrder(id, 15, details, at, order.Done, &agent, &score, &agent)
	require.NoError(t, err)

	fresh, err := order.NewOrder(kernel.NewUUID(), 16, details, at.Add(time.Hour))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, xlsx.NewExporter().WriteOrders(&buf, []*order.Order{rated, fresh}))

	_, rows := readSheet(t, &buf, xlsx.OrdersSheet)
	require.Len(t, rows, 3)
	assert.Equal(t, "RatedAgent", rows[0][13])
	assert.Equal(t, []string{
		id.String(), "2026-03-08 07:45:00", "done", "repair", "Sardor", "+998991112233",
		"Broken washing machine", "", "41.5", "69.25", "15", "700", "5", "700",
	}, rows[1])
	assert.Equal(t, "new", rows[2][2])
	assert.Equal(t, "16", rows[2][10])
}

func TestExporter_EmptyWorkbookHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsx.NewExporter().WriteOrders(&buf, nil))

	_, rows := readSheet(t, &buf, xlsx.OrdersSheet)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 14)
}
