package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VatRate is one version of a VAT percentage, valid over an effective-date
// range. Rates are versioned rather than overwritten so historical postings
// keep matching the rate that applied on their date.
type VatRate struct {
	RateID        string          `json:"rateID"`
	LedgerID      string          `json:"ledgerID"`
	Class         VatClass        `json:"class"`
	Percent       decimal.Decimal `json:"percent"` // e.g. 25.5 for 25.5%
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	// EffectiveTo is nil while the version is current.
	EffectiveTo *time.Time `json:"effectiveTo,omitempty"`
	AuditFields
}

// CoversDate reports whether the rate version applies on the given date.
func (r *VatRate) CoversDate(date time.Time) bool {
	if date.Before(r.EffectiveFrom) {
		return false
	}
	return r.EffectiveTo == nil || !date.After(*r.EffectiveTo)
}

// VatReturnLine is the per-rate/per-class breakdown inside a return.
type VatReturnLine struct {
	Class   VatClass        `json:"class"`
	Percent decimal.Decimal `json:"percent"`
	Basis   decimal.Decimal `json:"basis"`
	Tax     decimal.Decimal `json:"tax"`
}

// VatReturn is the periodic VAT liability derived from posting annotations.
// Once filed it is sealed: retained read-only, and the postings it covers
// become VAT-immutable.
type VatReturn struct {
	ReturnID    string    `json:"returnID"`
	LedgerID    string    `json:"ledgerID"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	DueDate     time.Time `json:"dueDate"`
	// Payable is tax collected on sales, Deductible tax paid on purchases.
	// Net = Payable - Deductible; negative means refundable.
	Payable    decimal.Decimal `json:"payable"`
	Deductible decimal.Decimal `json:"deductible"`
	Net        decimal.Decimal `json:"net"`
	Lines      []VatReturnLine `json:"lines,omitempty"`
	FiledAt    *time.Time      `json:"filedAt,omitempty"`
	AuditFields
}

// Filed reports whether the return has been given to the tax authority.
func (v *VatReturn) Filed() bool {
	return v.FiledAt != nil
}

// VatReturnDueDate computes the statutory due date for a VAT period: the 12th
// of the second month after the period ends. The target month is derived from
// the period end's year and month components; AddDate would overflow a
// month-end date such as Dec 31 past the intended month.
func VatReturnDueDate(periodEnd time.Time) time.Time {
	return time.Date(periodEnd.Year(), periodEnd.Month()+2, 12, 0, 0, 0, 0, periodEnd.Location())
}
