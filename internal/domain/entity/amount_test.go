package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		set   bool
		valid bool
		value float64
		raw   string
	}{
		{name: "number", input: `2500`, set: true, valid: true, value: 2500},
		{name: "decimal number", input: `123.45`, set: true, valid: true, value: 123.45},
		{name: "numeric string", input: `"345"`, set: true, valid: true, value: 345},
		{name: "padded numeric string", input: `" 99.5 "`, set: true, valid: true, value: 99.5},
		{name: "null", input: `null`},
		{name: "garbage string", input: `"abc"`, set: true, raw: "abc"},
		{name: "empty string", input: `""`, set: true, raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.input), &a))
			assert.Equal(t, tt.set, a.IsSet())
			assert.Equal(t, tt.valid, a.Valid())
			assert.Equal(t, tt.value, a.Float())
			assert.Equal(t, tt.raw, a.Raw())
		})
	}
}

func TestAmountMarshalRoundTrip(t *testing.T) {
	item := ExpenseItem{
		Category:     "Tea",
		ItemStatus:   ItemStatusPending,
		ActualAmount: NewAmount(120.5),
		BudgetAmount: InvalidAmount("n/a"),
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var back ExpenseItem
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, 120.5, back.ActualAmount.Float())
	assert.Equal(t, "n/a", back.BudgetAmount.Raw())
	assert.False(t, back.ApprovedAmount.IsSet())
}

func TestEffectiveAmountFallbackOrder(t *testing.T) {
	t.Run("approved prefers approved figure", func(t *testing.T) {
		item := ExpenseItem{
			ItemStatus:     ItemStatusApproved,
			ApprovedAmount: NewAmount(1500),
			ActualAmount:   NewAmount(1800),
			BudgetAmount:   NewAmount(2000),
		}
		assert.Equal(t, 1500.0, item.EffectiveAmount())
	})

	t.Run("approved without approved figure uses actual", func(t *testing.T) {
		item := ExpenseItem{
			ItemStatus:   ItemStatusApproved,
			ActualAmount: NewAmount(1800),
			BudgetAmount: NewAmount(2000),
		}
		assert.Equal(t, 1800.0, item.EffectiveAmount())
	})

	t.Run("pending ignores approved figure", func(t *testing.T) {
		item := ExpenseItem{
			ItemStatus:     ItemStatusPending,
			ApprovedAmount: NewAmount(1),
			BudgetAmount:   NewAmount(2000),
		}
		assert.Equal(t, 2000.0, item.EffectiveAmount())
	})

	t.Run("rejected is always zero", func(t *testing.T) {
		item := ExpenseItem{
			ItemStatus:     ItemStatusRejected,
			ApprovedAmount: NewAmount(1500),
		}
		assert.Equal(t, 0.0, item.EffectiveAmount())
	})
}
