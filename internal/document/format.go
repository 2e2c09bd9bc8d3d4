package document

import (
	"fmt"

	"github.com/campuscell/events-portal/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Core PDF fonts carry the cp1252 set only, so amounts print with the
// "Rs." prefix rather than the rupee glyph.

// FormatRupees renders a monetary value for document tables
func FormatRupees(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}

// IncomeTotal computes the expected income for one registration-fee
// category: participants x fee, plus GST, rounded to two decimals. Decimal
// arithmetic keeps the printed figure exact (40 x 500 at 18% GST must be
// 23600.00, not 23599.99...).
func IncomeTotal(item entity.IncomeItem) float64 {
	per := decimal.NewFromFloat(item.PerParticipantAmount)
	participants := decimal.NewFromInt(int64(item.ExpectedParticipants))
	gstFactor := decimal.NewFromFloat(item.GSTPercentage).
		Div(decimal.NewFromInt(100)).
		Add(decimal.NewFromInt(1))

	total, _ := per.Mul(participants).Mul(gstFactor).Round(2).Float64()
	return total
}

// IncomeLine renders one income row of the tentative budget
func IncomeLine(item entity.IncomeItem) string {
	return fmt.Sprintf("%s = %d x Rs. %g + %g%% GST = %s",
		item.Category,
		item.ExpectedParticipants,
		item.PerParticipantAmount,
		item.GSTPercentage,
		FormatRupees(IncomeTotal(item)))
}

// FeeLine renders the registration-fee column of the note order
func FeeLine(item entity.IncomeItem) string {
	return fmt.Sprintf("Rs. %g/- + %g%% GST", item.PerParticipantAmount, item.GSTPercentage)
}

// OverheadAmount computes the university overhead on the planned
// expenditure at the given percentage
func OverheadAmount(expenses []entity.BudgetExpense, percent float64) float64 {
	var sum decimal.Decimal
	for _, e := range expenses {
		sum = sum.Add(decimal.NewFromFloat(e.Amount))
	}
	overhead, _ := sum.Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100)).
		Round(2).Float64()
	return overhead
}
