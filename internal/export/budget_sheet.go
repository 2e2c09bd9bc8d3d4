// Package export produces spreadsheet renditions of programme budgets for
// the accounts section, which works from xlsx rather than PDF.
package export

import (
	"fmt"
	"io"

	"github.com/campuscell/events-portal/internal/document"
	"github.com/campuscell/events-portal/internal/domain/entity"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// BudgetSheetWriter renders a programme's tentative budget as an Excel
// workbook
type BudgetSheetWriter struct {
	overheadPercent float64
	logger          *zap.Logger
}

// NewBudgetSheetWriter creates a new budget sheet writer
func NewBudgetSheetWriter(overheadPercent float64, logger *zap.Logger) *BudgetSheetWriter {
	if overheadPercent == 0 {
		overheadPercent = 30
	}
	return &BudgetSheetWriter{overheadPercent: overheadPercent, logger: logger}
}

// Write composes the workbook and writes it to w
func (b *BudgetSheetWriter) Write(p entity.Programme, w io.Writer) error {
	b.logger.Info("Composing budget sheet", zap.String("programme", p.PublicID))

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Budget"
	f.SetSheetName(f.GetSheetName(0), sheet)

	b.setCell(f, sheet, "A1", p.Title)
	b.setCell(f, sheet, "A2", fmt.Sprintf("Dates: %s", p.DateRange()))
	b.setCell(f, sheet, "A3", fmt.Sprintf("Venue: %s (%s)", p.Venue, p.Mode))

	row := 5
	b.setCell(f, sheet, cell("A", row), "Expected Income")
	row++
	b.setCell(f, sheet, cell("A", row), "Category")
	b.setCell(f, sheet, cell("B", row), "Participants")
	b.setCell(f, sheet, cell("C", row), "Fee")
	b.setCell(f, sheet, cell("D", row), "GST %")
	b.setCell(f, sheet, cell("E", row), "Total")
	row++
	for _, item := range p.Budget.Income {
		b.setCell(f, sheet, cell("A", row), item.Category)
		b.setNumber(f, sheet, cell("B", row), float64(item.ExpectedParticipants))
		b.setNumber(f, sheet, cell("C", row), item.PerParticipantAmount)
		b.setNumber(f, sheet, cell("D", row), item.GSTPercentage)
		b.setNumber(f, sheet, cell("E", row), document.IncomeTotal(item))
		row++
	}

	row++
	b.setCell(f, sheet, cell("A", row), "Expenditure")
	row++
	b.setCell(f, sheet, cell("A", row), "Particulars")
	b.setCell(f, sheet, cell("B", row), "Amount")
	row++

	var planned float64
	for _, e := range p.Budget.Expenses {
		b.setCell(f, sheet, cell("A", row), e.Category)
		b.setNumber(f, sheet, cell("B", row), e.Amount)
		planned += e.Amount
		row++
	}

	overhead := p.Budget.UniversityOverhead
	if overhead == 0 {
		overhead = document.OverheadAmount(p.Budget.Expenses, b.overheadPercent)
	}
	b.setCell(f, sheet, cell("A", row), fmt.Sprintf("University Overhead (%g%%)", b.overheadPercent))
	b.setNumber(f, sheet, cell("B", row), overhead)
	row++

	total := p.Budget.TotalExpenditure
	if total == 0 {
		total = planned + overhead
	}
	b.setCell(f, sheet, cell("A", row), "Total Expenditure")
	b.setNumber(f, sheet, cell("B", row), total)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write budget sheet: %w", err)
	}
	return nil
}

func (b *BudgetSheetWriter) setCell(f *excelize.File, sheet, ref, value string) {
	if err := f.SetCellValue(sheet, ref, value); err != nil {
		b.logger.Warn("Failed to set cell value",
			zap.String("cell", ref),
			zap.Error(err))
	}
}

func (b *BudgetSheetWriter) setNumber(f *excelize.File, sheet, ref string, value float64) {
	if err := f.SetCellValue(sheet, ref, value); err != nil {
		b.logger.Warn("Failed to set cell value",
			zap.String("cell", ref),
			zap.Error(err))
	}
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
