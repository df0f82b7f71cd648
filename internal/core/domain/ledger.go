package domain

// NumberingScheme controls how voucher series are assigned. The choice is
// fixed at ledger initialization and must remain stable afterwards; changing
// it requires an explicit audited renumbering pass, not a live toggle.
type NumberingScheme string

const (
	// SchemeSingle numbers every voucher from one shared series.
	SchemeSingle NumberingScheme = "SINGLE"
	// SchemeByType keeps one series per voucher type.
	SchemeByType NumberingScheme = "BY_TYPE"
	// SchemeCashSeparate numbers cash receipts and payments from a dedicated
	// cash series and everything else from a shared series.
	SchemeCashSeparate NumberingScheme = "CASH_SEPARATE"
)

// VatBasis selects when value-added tax is recognized.
type VatBasis string

const (
	// BasisInvoice recognizes tax at the invoice (voucher) date.
	BasisInvoice VatBasis = "INVOICE"
	// BasisCash recognizes tax at the payment date. Requires clearing
	// accounts in the chart to park tax between invoice and payment.
	BasisCash VatBasis = "CASH"
)

// Ledger is one set of books. Every other entity is scoped by its ID, and
// services thread the ledger explicitly instead of relying on ambient state.
type Ledger struct {
	LedgerID        string          `json:"ledgerID"`
	Name            string          `json:"name"`
	BusinessID      string          `json:"businessID"` // official registration number, informational
	CurrencyCode    string          `json:"currencyCode"`
	NumberingScheme NumberingScheme `json:"numberingScheme"`
	VatBasis        VatBasis        `json:"vatBasis"`
	// Clearing account numbers for cash-basis VAT. Empty on invoice basis.
	VatClearingSales    string `json:"vatClearingSales"`
	VatClearingPurchase string `json:"vatClearingPurchase"`
	AuditFields
}

// RequiresClearingAccounts reports whether the ledger's VAT basis needs the
// clearing accounts configured before returns can be built.
func (l *Ledger) RequiresClearingAccounts() bool {
	return l.VatBasis == BasisCash
}
