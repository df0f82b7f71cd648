package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VatRate represents one version of a VAT percentage over an effective-date
// range. Versions are closed, never overwritten, so history stays intact.
type VatRate struct {
	RateID        string          `json:"rateID"`   // Primary Key (UUID)
	LedgerID      string          `json:"ledgerID"` // FK -> Ledger.ledgerID (Not Null)
	Class         VatClass        `json:"class"`
	Percent       decimal.Decimal `json:"percent"`
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	EffectiveTo   *time.Time      `json:"effectiveTo"` // Nullable while current
	AuditFields
}

// VatReturn represents a filed periodic VAT return. Filed rows are read-only.
type VatReturn struct {
	ReturnID    string          `json:"returnID"` // Primary Key (UUID)
	LedgerID    string          `json:"ledgerID"` // FK -> Ledger.ledgerID (Not Null)
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	DueDate     time.Time       `json:"dueDate"`
	Payable     decimal.Decimal `json:"payable"`
	Deductible  decimal.Decimal `json:"deductible"`
	Net         decimal.Decimal `json:"net"`
	Lines       []byte          `json:"lines"` // per-rate breakdown, jsonb
	FiledAt     *time.Time      `json:"filedAt"`
	AuditFields
}
