package dto

import (
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
)

// CreateLedgerRequest defines the payload for initializing a set of books.
// Numbering scheme and VAT basis are fixed once the first voucher is recorded.
type CreateLedgerRequest struct {
	Name            string `json:"name" binding:"required"`
	BusinessID      string `json:"businessID"`
	CurrencyCode    string `json:"currencyCode" binding:"required,len=3"`
	NumberingScheme string `json:"numberingScheme" binding:"required,oneof=SINGLE BY_TYPE CASH_SEPARATE"`
	VatBasis        string `json:"vatBasis" binding:"required,oneof=INVOICE CASH"`
	// Clearing account numbers, required when VatBasis is CASH.
	VatClearingSales    string `json:"vatClearingSales"`
	VatClearingPurchase string `json:"vatClearingPurchase"`
}

// UpdateLedgerRequest defines the updatable ledger metadata. Numbering scheme
// and VAT basis may only change while no voucher has been recorded yet.
type UpdateLedgerRequest struct {
	Name                *string `json:"name,omitempty"`
	BusinessID          *string `json:"businessID,omitempty"`
	NumberingScheme     *string `json:"numberingScheme,omitempty" binding:"omitempty,oneof=SINGLE BY_TYPE CASH_SEPARATE"`
	VatBasis            *string `json:"vatBasis,omitempty" binding:"omitempty,oneof=INVOICE CASH"`
	VatClearingSales    *string `json:"vatClearingSales,omitempty"`
	VatClearingPurchase *string `json:"vatClearingPurchase,omitempty"`
}

// LedgerResponse defines the data returned for a ledger.
type LedgerResponse struct {
	LedgerID            string `json:"ledgerID"`
	Name                string `json:"name"`
	BusinessID          string `json:"businessID,omitempty"`
	CurrencyCode        string `json:"currencyCode"`
	NumberingScheme     string `json:"numberingScheme"`
	VatBasis            string `json:"vatBasis"`
	VatClearingSales    string `json:"vatClearingSales,omitempty"`
	VatClearingPurchase string `json:"vatClearingPurchase,omitempty"`
}

// ToLedgerResponse converts a domain.Ledger to LedgerResponse DTO.
func ToLedgerResponse(l *domain.Ledger) LedgerResponse {
	return LedgerResponse{
		LedgerID:            l.LedgerID,
		Name:                l.Name,
		BusinessID:          l.BusinessID,
		CurrencyCode:        l.CurrencyCode,
		NumberingScheme:     string(l.NumberingScheme),
		VatBasis:            string(l.VatBasis),
		VatClearingSales:    l.VatClearingSales,
		VatClearingPurchase: l.VatClearingPurchase,
	}
}
