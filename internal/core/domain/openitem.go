package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenItem is an unsettled receivable/payable amount tracked per counterparty
// within an account's subledger. Items are created and reduced only as a side
// effect of voucher commits, never edited directly, which keeps the subledger
// total equal to the account's ledger balance.
type OpenItem struct {
	ItemID       string `json:"itemID"`
	LedgerID     string `json:"ledgerID"`
	AccountID    string `json:"accountID"`
	Counterparty string `json:"counterparty"`
	Description  string `json:"description,omitempty"`
	// OriginalAmount is signed: positive for receivables, negative for payables.
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedDate    time.Time       `json:"createdDate"`
	Settled        bool            `json:"settled"`
	AuditFields
}

// IsSettled reports whether the running balance has reached zero.
func (i *OpenItem) IsSettled() bool {
	return i.Balance.IsZero()
}

// OpenItemApplication reduces an existing item's running balance by a signed
// delta inside a voucher commit. Without the Overpayment flag the delta must
// not flip the balance's sign.
type OpenItemApplication struct {
	ItemID      string          `json:"itemID"`
	Delta       decimal.Decimal `json:"delta"`
	Overpayment bool            `json:"overpayment"`
}

// OpenItemMutation is one subledger side effect of a voucher commit: exactly
// one of Open or Apply is set.
type OpenItemMutation struct {
	Open  *OpenItem            `json:"open,omitempty"`
	Apply *OpenItemApplication `json:"apply,omitempty"`
}
