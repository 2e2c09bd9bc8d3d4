package document

import (
	"fmt"
	"strings"

	"github.com/campuscell/events-portal/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

const (
	detailRowHeight = 8
	tableRowHeight  = 8
)

// signatoryColumns is the approval chain printed at the foot of every note
// order, left to right.
var signatoryColumns = []string{
	"Co-ordinator(s)",
	"HOD",
	"Director-CCS",
	"Director-CSRC",
	"Registrar",
}

// NoteOrder composes the two-page administrative request document for a
// programme: the note order itself followed by the tentative budget
// annexure.
func (c *Composer) NoteOrder(p entity.Programme, sink Sink) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: programme title is required", ErrValidation)
	}

	c.logger.Info("Composing note order",
		zap.String("programme", p.PublicID),
		zap.String("title", p.Title))

	pdf := c.newPage()
	pdf.AddPage()
	c.letterhead(pdf)

	pdf.SetFont("Times", "B", 13)
	pdf.CellFormat(0, 8, "NOTE ORDER", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Times", "B", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("Sub: Permission to conduct %q - reg.", p.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Times", "", 11)
	pdf.MultiCell(0, 6, c.narrative(p), "", "J", false)
	pdf.Ln(4)

	c.detailsTable(pdf, p)
	pdf.Ln(4)

	if len(p.Budget.Income) > 0 {
		c.feeTable(pdf, p.Budget.Income)
		pdf.Ln(4)
	}

	c.signatoryBlock(pdf, p.Coordinators)

	c.budgetPage(pdf, p)

	return c.finish(pdf, sink)
}

// narrative is the request paragraph interpolating the programme facts
func (c *Composer) narrative(p entity.Programme) string {
	coordinators := strings.Join(p.CoordinatorNames(), ", ")
	if coordinators == "" {
		coordinators = "the undersigned"
	}
	return fmt.Sprintf(
		"It is proposed to conduct %q, a %s %s programme, from %s at %s. "+
			"The programme will be coordinated by %s. It is requested that "+
			"permission may kindly be accorded to conduct the programme and "+
			"to collect the registration fees detailed below.",
		p.Title, p.Duration, p.Mode, p.DateRange(), p.Venue, coordinators)
}

// detailsTable draws the fixed-width label:value block
func (c *Composer) detailsTable(pdf *gofpdf.Fpdf, p entity.Programme) {
	rows := [][2]string{
		{"Mode of Conduct", p.Mode},
		{"Duration", p.Duration},
		{"Date(s)", p.DateRange()},
		{"Target Audience", strings.Join(p.TargetAudience, ", ")},
		{"Resource Persons", strings.Join(p.ResourcePersons, ", ")},
	}

	const labelWidth = 55.0
	for _, row := range rows {
		pdf.SetFont("Times", "B", 11)
		pdf.CellFormat(labelWidth, detailRowHeight, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Times", "", 11)
		pdf.MultiCell(0, detailRowHeight, ": "+row[1], "", "L", false)
	}
}

// feeTable draws the bordered registration-fee table, one row per income
// category
func (c *Composer) feeTable(pdf *gofpdf.Fpdf, income []entity.IncomeItem) {
	pdf.SetFont("Times", "B", 11)
	pdf.CellFormat(90, tableRowHeight, "Category", "1", 0, "C", false, 0, "")
	pdf.CellFormat(84, tableRowHeight, "Registration Fee", "1", 1, "C", false, 0, "")

	pdf.SetFont("Times", "", 11)
	for _, item := range income {
		pdf.CellFormat(90, tableRowHeight, item.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(84, tableRowHeight, FeeLine(item), "1", 1, "L", false, 0, "")
	}
}

// signatoryBlock draws the five-column approval strip with one name row
// per coordinator under the first column
func (c *Composer) signatoryBlock(pdf *gofpdf.Fpdf, coordinators []entity.Coordinator) {
	colWidth := 174.0 / float64(len(signatoryColumns))

	pdf.Ln(14)
	pdf.SetFont("Times", "B", 10)
	for i, col := range signatoryColumns {
		ln := 0
		if i == len(signatoryColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(colWidth, 6, col, "", ln, "C", false, 0, "")
	}

	pdf.SetFont("Times", "", 9)
	for _, coord := range coordinators {
		pdf.CellFormat(colWidth, 5, coord.Name, "", 0, "C", false, 0, "")
		for i := 1; i < len(signatoryColumns); i++ {
			ln := 0
			if i == len(signatoryColumns)-1 {
				ln = 1
			}
			pdf.CellFormat(colWidth, 5, "", "", ln, "C", false, 0, "")
		}
	}
}

// budgetPage draws page two, the tentative budget annexure
func (c *Composer) budgetPage(pdf *gofpdf.Fpdf, p entity.Programme) {
	pdf.AddPage()
	pdf.SetFont("Times", "B", 13)
	pdf.CellFormat(0, 8, "TENTATIVE BUDGET", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Times", "B", 12)
	pdf.CellFormat(0, 7, "Expected Income", "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 11)
	for _, item := range p.Budget.Income {
		pdf.MultiCell(0, 6, IncomeLine(item), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Times", "B", 12)
	pdf.CellFormat(0, 7, "Expenditure", "", 1, "L", false, 0, "")

	rows := make([]entity.BudgetExpense, 0, len(p.Budget.Expenses)+2)
	rows = append(rows, p.Budget.Expenses...)
	rows = append(rows,
		entity.BudgetExpense{
			Category: fmt.Sprintf("University Overhead (%g%%)", c.cfg.OverheadPercent),
			Amount:   c.overhead(p),
		},
		entity.BudgetExpense{
			Category: "Total Expenditure",
			Amount:   c.totalExpenditure(p),
		},
	)

	pdf.SetFont("Times", "B", 11)
	pdf.CellFormat(120, tableRowHeight, "Particulars", "1", 0, "C", false, 0, "")
	pdf.CellFormat(54, tableRowHeight, "Amount", "1", 1, "C", false, 0, "")
	pdf.SetFont("Times", "", 11)
	for _, row := range rows {
		pdf.CellFormat(120, tableRowHeight, row.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(54, tableRowHeight, FormatRupees(row.Amount), "1", 1, "R", false, 0, "")
	}
}

func (c *Composer) overhead(p entity.Programme) float64 {
	if p.Budget.UniversityOverhead > 0 {
		return p.Budget.UniversityOverhead
	}
	return OverheadAmount(p.Budget.Expenses, c.cfg.OverheadPercent)
}

func (c *Composer) totalExpenditure(p entity.Programme) float64 {
	if p.Budget.TotalExpenditure > 0 {
		return p.Budget.TotalExpenditure
	}
	var sum float64
	for _, e := range p.Budget.Expenses {
		sum += e.Amount
	}
	return sum + c.overhead(p)
}
