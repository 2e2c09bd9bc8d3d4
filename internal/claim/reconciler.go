// Package claim holds the claim-bill reconciliation core: the pure
// transforms that keep per-item amount fields and claim totals consistent
// with each item's approval status.
package claim

import (
	"math"

	"github.com/campuscell/events-portal/internal/domain/entity"
)

// Reconcile recomputes every item's amount fields and the three claim-level
// totals from the authoritative item statuses. It never changes status,
// category, rejection metadata, or the order and count of items, and it is
// idempotent: reconciling an already reconciled bill changes nothing.
//
// Per item the target amount is derived by status (approved prefers the
// approved figure, pending the actual figure, rejected is always 0), with
// malformed or negative values coerced to 0 rather than rejected. Approved
// items have all four fields rewritten to the target so every downstream
// reader sees one figure; the originally claimed amount survives separately
// in ClaimedAmount.
func Reconcile(bill entity.ClaimBill) entity.ClaimBill {
	out := bill
	out.Expenses = make([]entity.ExpenseItem, len(bill.Expenses))
	copy(out.Expenses, bill.Expenses)

	var approvedTotal float64
	for i := range out.Expenses {
		item := &out.Expenses[i]
		target := sanitize(item.EffectiveAmount())

		item.Amount = entity.NewAmount(target)

		switch item.ItemStatus {
		case entity.ItemStatusApproved:
			item.ActualAmount = entity.NewAmount(target)
			item.BudgetAmount = entity.NewAmount(target)
			item.ApprovedAmount = entity.NewAmount(target)
			approvedTotal += target
		case entity.ItemStatusRejected:
			item.ActualAmount = entity.NewAmount(0)
			item.BudgetAmount = entity.NewAmount(0)
			item.ApprovedAmount = entity.NewAmount(0)
		}
	}

	out.TotalApprovedAmount = approvedTotal
	out.TotalBudgetAmount = approvedTotal
	out.TotalExpenditure = approvedTotal

	return out
}

// IsReconciled reports whether the bill already satisfies the reconciled
// form, without modifying it. The background audit job uses this to detect
// drift in stored claims.
func IsReconciled(bill entity.ClaimBill) bool {
	var approvedTotal float64
	for _, item := range bill.Expenses {
		target := sanitize(item.EffectiveAmount())

		if !item.Amount.Valid() || item.Amount.Float() != target {
			return false
		}

		switch item.ItemStatus {
		case entity.ItemStatusApproved, entity.ItemStatusRejected:
			for _, a := range []entity.Amount{item.ActualAmount, item.BudgetAmount, item.ApprovedAmount} {
				if !a.Valid() || a.Float() != target {
					return false
				}
			}
			if item.ItemStatus == entity.ItemStatusApproved {
				approvedTotal += target
			}
		}
	}

	return bill.TotalApprovedAmount == approvedTotal &&
		bill.TotalBudgetAmount == approvedTotal &&
		bill.TotalExpenditure == approvedTotal
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
