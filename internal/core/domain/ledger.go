package domain

import "github.com/shopspring/decimal"

// EntryType classifies a ledger entry as income (THU) or expense (CHI).
type EntryType string

const (
	EntryThu EntryType = "THU"
	EntryChi EntryType = "CHI"
)

// Valid reports whether the entry type is THU or CHI.
func (t EntryType) Valid() bool {
	return t == EntryThu || t == EntryChi
}

// EntryStatus indicates whether a ledger entry still contributes to the
// aggregate totals.
type EntryStatus string

const (
	EntryCompleted EntryStatus = "completed"
	EntryCancelled EntryStatus = "cancelled"
)

// LedgerEntry is a single receipt note. Order-driven entries carry the order
// id; ad hoc entries do not. Cancelling an entry reverses its effect on the
// aggregate ledger exactly once.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	OrderID       *string         `json:"orderID,omitempty"`
	StoreID       string          `json:"storeID"`
	CreaterID     string          `json:"createrID"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Type          EntryType       `json:"type"`
	Status        EntryStatus     `json:"status"`
	Note          string          `json:"note"`
	Counterparty  string          `json:"counterparty"`
	AuditFields
}

// AggregateLedgerID is the primary key of the single aggregate-ledger row.
const AggregateLedgerID = 1

// AggregateLedger is the process-wide running-totals singleton. It is only
// ever touched through the ledger service, inside the same transaction as the
// entries that move it.
type AggregateLedger struct {
	LedgerID     int             `json:"ledgerID"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	CashBalance  decimal.Decimal `json:"cashBalance"`
	BankBalance  decimal.Decimal `json:"bankBalance"`
	AuditFields
}

// Apply adds the entry's effect to the running totals. THU increases income
// and the matching balance; CHI increases expense and decreases the balance.
func (a *AggregateLedger) Apply(entry LedgerEntry) {
	amount := entry.TotalAmount
	if entry.Type == EntryChi {
		a.TotalExpense = a.TotalExpense.Add(amount)
		amount = amount.Neg()
	} else {
		a.TotalIncome = a.TotalIncome.Add(amount)
	}
	switch entry.PaymentMethod {
	case Bank:
		a.BankBalance = a.BankBalance.Add(amount)
	default:
		a.CashBalance = a.CashBalance.Add(amount)
	}
}

// Revert removes a previously applied entry's effect from the running totals.
func (a *AggregateLedger) Revert(entry LedgerEntry) {
	amount := entry.TotalAmount
	if entry.Type == EntryChi {
		a.TotalExpense = a.TotalExpense.Sub(amount)
	} else {
		a.TotalIncome = a.TotalIncome.Sub(amount)
		amount = amount.Neg()
	}
	switch entry.PaymentMethod {
	case Bank:
		a.BankBalance = a.BankBalance.Add(amount)
	default:
		a.CashBalance = a.CashBalance.Add(amount)
	}
}
