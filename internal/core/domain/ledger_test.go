package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAggregateLedgerApply(t *testing.T) {
	a := AggregateLedger{LedgerID: AggregateLedgerID}

	a.Apply(LedgerEntry{TotalAmount: decimal.NewFromInt(100), PaymentMethod: Cash, Type: EntryThu})
	a.Apply(LedgerEntry{TotalAmount: decimal.NewFromInt(50), PaymentMethod: Bank, Type: EntryThu})
	a.Apply(LedgerEntry{TotalAmount: decimal.NewFromInt(30), PaymentMethod: Cash, Type: EntryChi})

	assert.True(t, a.TotalIncome.Equal(decimal.NewFromInt(150)), "income = %s", a.TotalIncome)
	assert.True(t, a.TotalExpense.Equal(decimal.NewFromInt(30)), "expense = %s", a.TotalExpense)
	assert.True(t, a.CashBalance.Equal(decimal.NewFromInt(70)), "cash = %s", a.CashBalance)
	assert.True(t, a.BankBalance.Equal(decimal.NewFromInt(50)), "bank = %s", a.BankBalance)
}

func TestAggregateLedgerRevertIsExactInverse(t *testing.T) {
	entries := []LedgerEntry{
		{TotalAmount: decimal.NewFromInt(100), PaymentMethod: Cash, Type: EntryThu},
		{TotalAmount: decimal.NewFromInt(75), PaymentMethod: Bank, Type: EntryChi},
		{TotalAmount: decimal.RequireFromString("19.95"), PaymentMethod: Bank, Type: EntryThu},
	}

	a := AggregateLedger{LedgerID: AggregateLedgerID}
	for _, e := range entries {
		a.Apply(e)
	}
	for _, e := range entries {
		a.Revert(e)
	}

	assert.True(t, a.TotalIncome.IsZero(), "income = %s", a.TotalIncome)
	assert.True(t, a.TotalExpense.IsZero(), "expense = %s", a.TotalExpense)
	assert.True(t, a.CashBalance.IsZero(), "cash = %s", a.CashBalance)
	assert.True(t, a.BankBalance.IsZero(), "bank = %s", a.BankBalance)
}

func TestEntryTypeValid(t *testing.T) {
	assert.True(t, EntryThu.Valid())
	assert.True(t, EntryChi.Valid())
	assert.False(t, EntryType("DEBIT").Valid())
	assert.False(t, EntryType("").Valid())
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, Cash.Valid())
	assert.True(t, Bank.Valid())
	assert.False(t, PaymentMethod("credit").Valid())
}
