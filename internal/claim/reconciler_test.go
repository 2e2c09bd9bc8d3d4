package claim

import (
	"testing"

	"github.com/campuscell/events-portal/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedItem(category string, approved entity.Amount) entity.ExpenseItem {
	return entity.ExpenseItem{
		Category:       category,
		ItemStatus:     entity.ItemStatusApproved,
		ApprovedAmount: approved,
	}
}

func TestReconcileSynchronizesApprovedItems(t *testing.T) {
	bill := entity.ClaimBill{
		Expenses: []entity.ExpenseItem{
			approvedItem("Tea", entity.NewAmount(2500)),
			{
				Category:     "Food",
				ItemStatus:   entity.ItemStatusApproved,
				ActualAmount: entity.NewAmount(2030),
			},
		},
	}

	out := Reconcile(bill)

	require.Len(t, out.Expenses, 2)

	for i, want := range []float64{2500, 2030} {
		item := out.Expenses[i]
		assert.Equal(t, want, item.Amount.Float(), "amount for %s", item.Category)
		assert.Equal(t, want, item.ActualAmount.Float())
		assert.Equal(t, want, item.BudgetAmount.Float())
		assert.Equal(t, want, item.ApprovedAmount.Float())
	}

	assert.Equal(t, 4530.0, out.TotalApprovedAmount)
	assert.Equal(t, 4530.0, out.TotalBudgetAmount)
	assert.Equal(t, 4530.0, out.TotalExpenditure)
}

func TestReconcileZeroesRejectedItems(t *testing.T) {
	bill := entity.ClaimBill{
		Expenses: []entity.ExpenseItem{
			{
				Category:        "Banner",
				ItemStatus:      entity.ItemStatusRejected,
				BudgetAmount:    entity.NewAmount(400),
				RejectionReason: "no bill attached",
			},
		},
	}

	out := Reconcile(bill)

	item := out.Expenses[0]
	assert.Equal(t, 0.0, item.Amount.Float())
	assert.Equal(t, 0.0, item.ActualAmount.Float())
	assert.Equal(t, 0.0, item.BudgetAmount.Float())
	assert.Equal(t, 0.0, item.ApprovedAmount.Float())
	assert.Equal(t, "no bill attached", item.RejectionReason)
	assert.Equal(t, 0.0, out.TotalApprovedAmount)
}

func TestReconcilePendingFallsBackToBudget(t *testing.T) {
	bill := entity.ClaimBill{
		Expenses: []entity.ExpenseItem{
			{
				Category:     "Stationery",
				ItemStatus:   entity.ItemStatusPending,
				BudgetAmount: entity.NewAmount(345),
			},
		},
	}

	out := Reconcile(bill)

	item := out.Expenses[0]
	assert.Equal(t, 345.0, item.Amount.Float())
	// approval-only fields stay untouched for pending items
	assert.False(t, item.ApprovedAmount.IsSet())
	assert.Equal(t, 345.0, item.BudgetAmount.Float())
	assert.Equal(t, 0.0, out.TotalApprovedAmount, "pending items are excluded from totals")
}

func TestReconcileIsIdempotent(t *testing.T) {
	bill := entity.ClaimBill{
		Expenses: []entity.ExpenseItem{
			approvedItem("Tea", entity.NewAmount(2500)),
			{Category: "Banner", ItemStatus: entity.ItemStatusRejected, BudgetAmount: entity.NewAmount(400)},
			{Category: "Stationery", ItemStatus: entity.ItemStatusPending, ActualAmount: entity.NewAmount(120)},
		},
		TotalExpenditure: 99999, // stale
	}

	once := Reconcile(bill)
	twice := Reconcile(once)

	assert.Equal(t, once, twice)
	assert.True(t, IsReconciled(once))
}

func TestReconcilePreservesOrderAndIdentity(t *testing.T) {
	bill := entity.ClaimBill{
		Expenses: []entity.ExpenseItem{
			{Category: "C", ItemStatus: entity.ItemStatusPending},
			{Category: "A", ItemStatus: entity.ItemStatusApproved, ApprovedAmount: entity.NewAmount(10)},
			{Category: "B", ItemStatus: entity.ItemStatusRejected},
		},
	}

	out := Reconcile(bill)

	require.Len(t, out.Expenses, 3)
	assert.Equal(t, "C", out.Expenses[0].Category)
	assert.Equal(t, "A", out.Expenses[1].Category)
	assert.Equal(t, "B", out.Expenses[2].Category)
	assert.Equal(t, entity.ItemStatusPending, out.Expenses[0].ItemStatus)
	assert.Equal(t, entity.ItemStatusApproved, out.Expenses[1].ItemStatus)
	assert.Equal(t, entity.ItemStatusRejected, out.Expenses[2].ItemStatus)

	// input slice is not mutated
	assert.False(t, bill.Expenses[1].BudgetAmount.IsSet())
}

func TestReconcileCoercesMalformedAmounts(t *testing.T) {
	tests := []struct {
		name string
		item entity.ExpenseItem
		want float64
	}{
		{
			name: "malformed approved amount",
			item: entity.ExpenseItem{
				ItemStatus:     entity.ItemStatusApproved,
				ApprovedAmount: entity.InvalidAmount("abc"),
			},
			want: 0,
		},
		{
			name: "negative actual amount",
			item: entity.ExpenseItem{
				ItemStatus:   entity.ItemStatusPending,
				ActualAmount: entity.NewAmount(-50),
			},
			want: 0,
		},
		{
			name: "absent everything",
			item: entity.ExpenseItem{ItemStatus: entity.ItemStatusApproved},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Reconcile(entity.ClaimBill{Expenses: []entity.ExpenseItem{tt.item}})
			assert.Equal(t, tt.want, out.Expenses[0].Amount.Float())
		})
	}
}

func TestReconcileDoesNotTouchClaimedAmount(t *testing.T) {
	bill := entity.ClaimBill{
		Expenses: []entity.ExpenseItem{
			{
				Category:       "Travel",
				ItemStatus:     entity.ItemStatusApproved,
				ClaimedAmount:  1800,
				ActualAmount:   entity.NewAmount(1800),
				ApprovedAmount: entity.NewAmount(1500),
			},
		},
	}

	out := Reconcile(bill)

	assert.Equal(t, 1500.0, out.Expenses[0].ActualAmount.Float(), "legacy field synchronizes")
	assert.Equal(t, 1800.0, out.Expenses[0].ClaimedAmount, "original claim survives")
}

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{entity.ItemStatusPending, entity.ItemStatusApproved, true},
		{entity.ItemStatusPending, entity.ItemStatusRejected, true},
		{entity.ItemStatusApproved, entity.ItemStatusRejected, true},
		{entity.ItemStatusRejected, entity.ItemStatusApproved, true},
		{entity.ItemStatusApproved, entity.ItemStatusApproved, true},
		{entity.ItemStatusRejected, entity.ItemStatusRejected, true},
		{entity.ItemStatusApproved, entity.ItemStatusPending, false},
		{entity.ItemStatusRejected, entity.ItemStatusPending, false},
		{entity.ItemStatusPending, entity.ItemStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}

	assert.ErrorIs(t, ValidateTransition("bogus", entity.ItemStatusApproved), ErrUnknownStatus)
	assert.ErrorIs(t, ValidateTransition(entity.ItemStatusPending, "bogus"), ErrUnknownStatus)
}
