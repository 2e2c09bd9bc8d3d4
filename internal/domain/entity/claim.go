package entity

import "time"

// Item status constants
const (
	ItemStatusPending  = "pending"
	ItemStatusApproved = "approved"
	ItemStatusRejected = "rejected"
)

// ExpenseItem is one line of a claim bill. The four amount fields are the
// wire shape the portal has always exposed; after reconciliation they are
// kept in lockstep with ItemStatus. ClaimedAmount preserves the figure the
// coordinator originally submitted and is never rewritten on review.
type ExpenseItem struct {
	Category string `json:"category"`

	BudgetAmount   Amount `json:"budgetAmount"`
	ActualAmount   Amount `json:"actualAmount"`
	ApprovedAmount Amount `json:"approvedAmount"`
	Amount         Amount `json:"amount"`

	ClaimedAmount float64 `json:"claimedAmount"`

	ItemStatus      string     `json:"itemStatus"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	ReviewedBy      string     `json:"reviewedBy,omitempty"`
	ReviewDate      *time.Time `json:"reviewDate,omitempty"`

	ReceiptGenerated bool   `json:"receiptGenerated"`
	ReceiptNumber    string `json:"receiptNumber,omitempty"`
}

// EffectiveAmount derives the single authoritative amount for the item from
// its status. It is the only place the fallback order between the four
// fields is defined: approved items prefer the approved figure, pending
// items the actual figure, and rejected items carry nothing. Malformed or
// negative values coerce to 0.
func (e ExpenseItem) EffectiveAmount() float64 {
	switch e.ItemStatus {
	case ItemStatusRejected:
		return 0
	case ItemStatusApproved:
		return firstSet(e.ApprovedAmount, e.ActualAmount, e.BudgetAmount)
	default:
		return firstSet(e.ActualAmount, e.BudgetAmount)
	}
}

// firstSet walks the fallback chain: the first supplied amount wins even
// when it is malformed, in which case it coerces to 0 rather than letting a
// later field override what the submitter typed.
func firstSet(amounts ...Amount) float64 {
	for _, a := range amounts {
		if !a.IsSet() {
			continue
		}
		v := a.Float()
		if v < 0 {
			return 0
		}
		return v
	}
	return 0
}

// ClaimBill is a coordinator's itemized reimbursement request for one
// programme. Item order is significant: it is the display and
// receipt-numbering order.
type ClaimBill struct {
	Expenses []ExpenseItem `json:"expenses"`

	TotalBudgetAmount   float64 `json:"totalBudgetAmount"`
	TotalExpenditure    float64 `json:"totalExpenditure"`
	TotalApprovedAmount float64 `json:"totalApprovedAmount"`

	SubmittedBy string     `json:"submittedBy,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}
