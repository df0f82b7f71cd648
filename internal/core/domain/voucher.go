package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherState indicates the lifecycle state of a voucher.
type VoucherState string

const (
	Draft    VoucherState = "DRAFT"
	Recorded VoucherState = "RECORDED"
	Deleted  VoucherState = "DELETED"
)

// VoucherType scopes numbering series and drives which series a voucher is
// numbered from under the BY_TYPE and CASH_SEPARATE schemes.
type VoucherType string

const (
	General     VoucherType = "GENERAL"
	Sales       VoucherType = "SALES"
	Purchase    VoucherType = "PURCHASE"
	CashReceipt VoucherType = "CASH_RECEIPT"
	CashPayment VoucherType = "CASH_PAYMENT"
	Bank        VoucherType = "BANK"
)

// IsCash reports whether the type belongs to the dedicated cash series under
// the CASH_SEPARATE numbering scheme.
func (t VoucherType) IsCash() bool {
	return t == CashReceipt || t == CashPayment
}

// PostingSide indicates whether a posting line is a debit or a credit.
type PostingSide string

const (
	DebitSide  PostingSide = "DEBIT"
	CreditSide PostingSide = "CREDIT"
)

// OpenItemChoice selects how a posting on a receivable/payable account
// resolves against the open-item subledger.
type OpenItemChoice string

const (
	// NewItem opens a fresh open item for the posting amount.
	NewItem OpenItemChoice = "NEW"
	// ApplyItem reduces (or settles) an existing item named by ItemID.
	ApplyItem OpenItemChoice = "APPLY"
)

// OpenItemRef carries the caller's open-item resolution for a posting.
// Matching is always explicit: the caller names the item, nothing is inferred.
type OpenItemRef struct {
	Choice OpenItemChoice `json:"choice"`
	ItemID string         `json:"itemID,omitempty"` // required for APPLY
	// Counterparty labels a NEW item.
	Counterparty string `json:"counterparty,omitempty"`
	// Overpayment permits an APPLY to flip the item's sign.
	Overpayment bool `json:"overpayment,omitempty"`
}

// VatAnnotation is the tax computed for a single posting.
type VatAnnotation struct {
	Class   VatClass        `json:"class"`
	Percent decimal.Decimal `json:"percent"`
	// Basis is the net amount the percentage was applied to.
	Basis decimal.Decimal `json:"basis"`
	Tax   decimal.Decimal `json:"tax"`
	// Deductible tax reduces the net liability on the return.
	Deductible bool `json:"deductible"`
	// Sealed is set once a filed VAT return covers the posting; the
	// annotation is immutable from then on.
	Sealed bool `json:"sealed"`
}

// Posting is a single debit or credit line within a voucher, against one account.
type Posting struct {
	PostingID string `json:"postingID"`
	VoucherID string `json:"voucherID"` // back-reference, not owning
	AccountID string `json:"accountID"`
	// Amount is always positive; Side carries the direction.
	Amount       decimal.Decimal `json:"amount"`
	Side         PostingSide     `json:"side"`
	Description  string          `json:"description,omitempty"`
	AllocationID string          `json:"allocationID,omitempty"`
	OpenItem     *OpenItemRef    `json:"openItem,omitempty"`
	Vat          *VatAnnotation  `json:"vat,omitempty"`
	AuditFields
}

// VoucherAuditEntry records one state transition of a voucher.
type VoucherAuditEntry struct {
	Timestamp time.Time    `json:"timestamp"`
	UserID    string       `json:"userID"`
	FromState VoucherState `json:"fromState"`
	ToState   VoucherState `json:"toState"`
}

// Voucher is a dated accounting document containing a balanced set of postings.
// The (Series, Sequence) pair is the human-facing number; it is assigned when
// the voucher is recorded and never changes or gets reused afterwards.
type Voucher struct {
	VoucherID string      `json:"voucherID"`
	LedgerID  string      `json:"ledgerID"`
	Type      VoucherType `json:"type"`
	Series    string      `json:"series,omitempty"`
	// Sequence is nil until the voucher has been recorded.
	Sequence *int64 `json:"sequence,omitempty"`
	// PeriodID names the fiscal period the sequence was drawn from; empty on
	// drafts.
	PeriodID    string              `json:"periodID,omitempty"`
	Date        time.Time           `json:"date"`
	Title       string              `json:"title"`
	State       VoucherState        `json:"state"`
	Postings    []Posting           `json:"postings,omitempty"`
	Attachments []string            `json:"attachments,omitempty"` // opaque references, not owned
	AuditLog    []VoucherAuditEntry `json:"auditLog,omitempty"`
	AuditFields
}
