package models

// NumberingScheme mirrors domain.NumberingScheme at the storage layer.
type NumberingScheme string

// VatBasis mirrors domain.VatBasis at the storage layer.
type VatBasis string

// Ledger represents one set of books. Every other row is scoped by its ID.
type Ledger struct {
	LedgerID            string          `json:"ledgerID"` // Primary Key (UUID)
	Name                string          `json:"name"`
	BusinessID          string          `json:"businessID"` // official registration number, informational
	CurrencyCode        string          `json:"currencyCode"`
	NumberingScheme     NumberingScheme `json:"numberingScheme"` // frozen after first recorded voucher
	VatBasis            VatBasis        `json:"vatBasis"`        // frozen after first recorded voucher
	VatClearingSales    string          `json:"vatClearingSales"`
	VatClearingPurchase string          `json:"vatClearingPurchase"`
	AuditFields
}
