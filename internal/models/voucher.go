package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherState indicates the lifecycle state of a voucher.
type VoucherState string

// VoucherType scopes numbering series.
type VoucherType string

// PostingSide indicates whether a posting line is a debit or a credit.
type PostingSide string

// Voucher represents a dated accounting document holding a balanced set of
// postings. Series and sequence together are the human-facing number.
type Voucher struct {
	VoucherID string      `json:"voucherID"` // Primary Key (UUID)
	LedgerID  string      `json:"ledgerID"`  // FK -> Ledger.ledgerID (Not Null)
	Type      VoucherType `json:"type"`
	Series    string      `json:"series"`
	Sequence  *int64      `json:"sequence"` // Nullable until recorded, never reused
	PeriodID  *string     `json:"periodID"` // FK -> FiscalPeriod.periodID, set when recorded
	Date      time.Time   `json:"date"`
	Title     string      `json:"title"`
	State     VoucherState `json:"state"`
	AuditFields
}

// Posting represents a single debit or credit line within a voucher.
type Posting struct {
	PostingID    string          `json:"postingID"` // Primary Key (UUID)
	VoucherID    string          `json:"voucherID"` // FK -> Voucher.voucherID (Not Null)
	AccountID    string          `json:"accountID"` // FK -> Account.accountID (Not Null)
	Amount       decimal.Decimal `json:"amount"`    // Positive value; side carries direction
	Side         PostingSide     `json:"side"`
	Description  string          `json:"description"`  // Nullable
	AllocationID *string         `json:"allocationID"` // FK -> Allocation.allocationID, nullable

	// Open-item resolution columns, populated only on subledger accounts.
	OpenItemChoice *string `json:"openItemChoice"`
	OpenItemID     *string `json:"openItemID"`
	Counterparty   *string `json:"counterparty"`
	Overpayment    bool    `json:"overpayment"`

	// VAT annotation columns, populated only on taxable postings.
	VatClass      *string          `json:"vatClass"`
	VatPercent    *decimal.Decimal `json:"vatPercent"`
	VatBasis      *decimal.Decimal `json:"vatBasis"`
	VatTax        *decimal.Decimal `json:"vatTax"`
	VatDeductible bool             `json:"vatDeductible"`
	VatSealed     bool             `json:"vatSealed"`

	AuditFields
}

// VoucherAuditEntry represents one state transition of a voucher.
type VoucherAuditEntry struct {
	EntryID   int64        `json:"entryID"` // Primary Key (bigserial)
	VoucherID string       `json:"voucherID"`
	Timestamp time.Time    `json:"timestamp"`
	UserID    string       `json:"userID"`
	FromState VoucherState `json:"fromState"`
	ToState   VoucherState `json:"toState"`
}

// VoucherAttachment links an opaque external artifact reference to a voucher.
type VoucherAttachment struct {
	VoucherID string `json:"voucherID"`
	Ref       string `json:"ref"`
	Position  int    `json:"position"`
}
