package dto

import (
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenItemResponse defines the data returned for an open item.
type OpenItemResponse struct {
	ItemID         string          `json:"itemID"`
	AccountID      string          `json:"accountID"`
	Counterparty   string          `json:"counterparty"`
	Description    string          `json:"description,omitempty"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedDate    time.Time       `json:"createdDate"`
	Settled        bool            `json:"settled"`
}

// ReconciliationResponse compares an account's subledger total against its
// ledger balance. The two must always match.
type ReconciliationResponse struct {
	AccountID      string          `json:"accountID"`
	SubledgerTotal decimal.Decimal `json:"subledgerTotal"`
	LedgerBalance  decimal.Decimal `json:"ledgerBalance"`
	Matches        bool            `json:"matches"`
}

// ToOpenItemResponse converts a domain.OpenItem to OpenItemResponse DTO.
func ToOpenItemResponse(i *domain.OpenItem) OpenItemResponse {
	return OpenItemResponse{
		ItemID:         i.ItemID,
		AccountID:      i.AccountID,
		Counterparty:   i.Counterparty,
		Description:    i.Description,
		OriginalAmount: i.OriginalAmount,
		Balance:        i.Balance,
		CreatedDate:    i.CreatedDate,
		Settled:        i.Settled,
	}
}

// ToOpenItemResponses converts a slice of domain.OpenItem to []OpenItemResponse.
func ToOpenItemResponses(items []domain.OpenItem) []OpenItemResponse {
	responses := make([]OpenItemResponse, len(items))
	for i := range items {
		responses[i] = ToOpenItemResponse(&items[i])
	}
	return responses
}
