package dto

import (
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for defining a chart-of-accounts entry.
type CreateAccountRequest struct {
	Number          string `json:"number" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Type            string `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	VatClass        string `json:"vatClass" binding:"omitempty,oneof=NONE SALES PURCHASE MARGIN_USED_GOODS MARGIN_TRAVEL"`
	GrossAmounts    bool   `json:"grossAmounts"`
	TracksOpenItems bool   `json:"tracksOpenItems"`
	CounterAccount  string `json:"counterAccount"`

	DepreciationMethod  string          `json:"depreciationMethod" binding:"omitempty,oneof=NONE STRAIGHT_LINE REDUCING_BALANCE"`
	DepreciationPercent decimal.Decimal `json:"depreciationPercent"`
}

// UpdateAccountRequest defines the updatable account metadata. The number and
// type are immutable; VAT class changes go through ReclassifyAccountRequest.
type UpdateAccountRequest struct {
	Name           *string `json:"name,omitempty"`
	CounterAccount *string `json:"counterAccount,omitempty"`
	Hidden         *bool   `json:"hidden,omitempty"`
}

// ReclassifyAccountRequest changes an account's VAT class for future postings.
type ReclassifyAccountRequest struct {
	VatClass     string `json:"vatClass" binding:"required,oneof=NONE SALES PURCHASE MARGIN_USED_GOODS MARGIN_TRAVEL"`
	GrossAmounts *bool  `json:"grossAmounts,omitempty"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string `json:"accountID"`
	LedgerID        string `json:"ledgerID"`
	Number          string `json:"number"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	VatClass        string `json:"vatClass"`
	GrossAmounts    bool   `json:"grossAmounts"`
	TracksOpenItems bool   `json:"tracksOpenItems"`
	CounterAccount  string `json:"counterAccount,omitempty"`
	Hidden          bool   `json:"hidden"`
}

// BalanceResponse is an account balance as of a date.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Number    string          `json:"number"`
	AsOf      string          `json:"asOf"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		LedgerID:        a.LedgerID,
		Number:          a.Number,
		Name:            a.Name,
		Type:            string(a.Type),
		VatClass:        string(a.VatClass),
		GrossAmounts:    a.GrossAmounts,
		TracksOpenItems: a.TracksOpenItems,
		CounterAccount:  a.CounterAccount,
		Hidden:          a.Hidden,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
