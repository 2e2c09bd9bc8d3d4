package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/campuscell/events-portal/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestBudgetSheetWrite(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	writer := NewBudgetSheetWriter(30, logger)

	p := entity.Programme{
		PublicID:  "prog-001",
		Title:     "Workshop on Go",
		StartDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC),
		Venue:     "Seminar Hall A",
		Mode:      entity.ModeOffline,
		Budget: entity.BudgetBreakdown{
			Income: []entity.IncomeItem{
				{Category: "Students", ExpectedParticipants: 40, PerParticipantAmount: 500, GSTPercentage: 18},
			},
			Expenses: []entity.BudgetExpense{
				{Category: "Honorarium", Amount: 8000},
				{Category: "Refreshments", Amount: 4000},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writer.Write(p, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Budget", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Workshop on Go", title)

	incomeTotal, err := f.GetCellValue("Budget", "E7")
	require.NoError(t, err)
	assert.Equal(t, "23600", incomeTotal)
}
