package document

import (
	"fmt"
	"strings"

	"github.com/campuscell/events-portal/internal/claim"
	"github.com/campuscell/events-portal/internal/domain/entity"
	"go.uber.org/zap"
)

// ReceiptRow is one rendered line of the claim-bill statement. Display
// carries the literal input text when the amount was unparsable, so the
// statement shows exactly what the coordinator filed.
type ReceiptRow struct {
	Serial   int
	Category string
	Display  string
	Value    float64
	Counted  bool
}

// ReceiptRows converts claim items to display rows. Items whose amount
// fails numeric parsing are rendered with their literal value and excluded
// from the total; the claim statement must still print even when the data
// is dirty.
func ReceiptRows(items []entity.ExpenseItem) []ReceiptRow {
	rows := make([]ReceiptRow, 0, len(items))
	for i, item := range items {
		row := ReceiptRow{Serial: i + 1, Category: item.Category}
		switch {
		case item.Amount.IsSet() && !item.Amount.Valid():
			row.Display = item.Amount.Raw()
		case item.Amount.IsSet():
			row.Value = item.Amount.Float()
			row.Display = FormatRupees(row.Value)
			row.Counted = true
		default:
			// claim not yet reconciled; derive from status
			row.Value = item.EffectiveAmount()
			row.Display = FormatRupees(row.Value)
			row.Counted = true
		}
		rows = append(rows, row)
	}
	return rows
}

// ReceiptTotal sums the countable rows
func ReceiptTotal(rows []ReceiptRow) float64 {
	var total float64
	for _, row := range rows {
		if row.Counted {
			total += row.Value
		}
	}
	return total
}

// ClaimReceipt composes the claim-bill statement for a programme. The
// programme must carry a claim bill.
func (c *Composer) ClaimReceipt(p entity.Programme, sink Sink) error {
	if p.Claim == nil {
		return fmt.Errorf("programme %s: %w", p.PublicID, claim.ErrClaimBillNotFound)
	}

	rows := ReceiptRows(p.Claim.Expenses)
	for _, row := range rows {
		if !row.Counted {
			c.logger.Warn("Skipping unparsable amount in claim receipt total",
				zap.String("programme", p.PublicID),
				zap.String("category", row.Category),
				zap.String("value", row.Display))
		}
	}
	total := ReceiptTotal(rows)

	c.logger.Info("Composing claim receipt",
		zap.String("programme", p.PublicID),
		zap.Int("items", len(rows)),
		zap.Float64("total", total))

	pdf := c.newPage()
	pdf.AddPage()
	c.letterhead(pdf)

	pdf.SetFont("Times", "B", 13)
	pdf.CellFormat(0, 8, "CLAIM BILL", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Times", "", 11)
	pdf.MultiCell(0, 6, c.coordinatorBlock(p), "", "L", false)
	pdf.Ln(4)

	// expense table; a claim with no items still gets a valid empty table
	pdf.SetFont("Times", "B", 11)
	pdf.CellFormat(18, tableRowHeight, "S.No", "1", 0, "C", false, 0, "")
	pdf.CellFormat(102, tableRowHeight, "Particulars", "1", 0, "C", false, 0, "")
	pdf.CellFormat(54, tableRowHeight, "Amount", "1", 1, "C", false, 0, "")

	pdf.SetFont("Times", "", 11)
	for _, row := range rows {
		pdf.CellFormat(18, tableRowHeight, fmt.Sprintf("%d", row.Serial), "1", 0, "C", false, 0, "")
		pdf.CellFormat(102, tableRowHeight, row.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(54, tableRowHeight, row.Display, "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Times", "B", 11)
	pdf.CellFormat(120, tableRowHeight, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(54, tableRowHeight, FormatRupees(total), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Times", "", 11)
	pdf.MultiCell(0, 6, c.certification(p, rows, total), "", "J", false)
	pdf.Ln(10)

	pdf.CellFormat(0, 6, "Bill passed for Rs. ____________", "", 1, "L", false, 0, "")
	pdf.Ln(14)
	pdf.CellFormat(87, 6, "Signature of the Co-ordinator", "", 0, "C", false, 0, "")
	pdf.CellFormat(87, 6, "Signature of the "+c.cfg.ReceiptSignatory, "", 1, "C", false, 0, "")

	return c.finish(pdf, sink)
}

// coordinatorBlock identifies the claiming coordinator(s)
func (c *Composer) coordinatorBlock(p entity.Programme) string {
	var b strings.Builder
	for _, coord := range p.Coordinators {
		fmt.Fprintf(&b, "%s, %s, %s\n", coord.Name, coord.Designation, coord.Department)
	}
	if b.Len() == 0 {
		b.WriteString("Programme Co-ordinator\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// certification is the closing paragraph embedding the category list, the
// venue, the date range and the total in words
func (c *Composer) certification(p entity.Programme, rows []ReceiptRow, total float64) string {
	categories := make([]string, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.Category)
	}

	return fmt.Sprintf(
		"Certified that a sum of %s (%s Only) was incurred towards %s in "+
			"connection with %q conducted at %s, %s, and that the bills "+
			"enclosed are genuine.",
		FormatRupees(total),
		AmountToWords(total),
		strings.Join(categories, ", "),
		p.Title,
		p.Venue,
		p.DateRange())
}
