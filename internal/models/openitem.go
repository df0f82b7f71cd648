package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenItem represents one unsettled receivable/payable row of an account's
// subledger. Rows are mutated only inside voucher commit transactions.
type OpenItem struct {
	ItemID         string          `json:"itemID"`    // Primary Key (UUID)
	LedgerID       string          `json:"ledgerID"`  // FK -> Ledger.ledgerID (Not Null)
	AccountID      string          `json:"accountID"` // FK -> Account.accountID (Not Null)
	Counterparty   string          `json:"counterparty"`
	Description    string          `json:"description"`    // Nullable
	OriginalAmount decimal.Decimal `json:"originalAmount"` // signed: + receivable, - payable
	Balance        decimal.Decimal `json:"balance"`
	CreatedDate    time.Time       `json:"createdDate"`
	Settled        bool            `json:"settled"`
	AuditFields
}
