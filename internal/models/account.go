package models

import "github.com/shopspring/decimal"

// AccountType indicates the fundamental accounting type of an account.
type AccountType string

// VatClass categorizes how postings on an account participate in VAT.
type VatClass string

// DepreciationMethod describes optional depreciation parameters.
type DepreciationMethod string

// Account represents one row of the chart of accounts. The number is the
// stable identity within a ledger; referenced accounts are hidden, not deleted.
type Account struct {
	AccountID           string             `json:"accountID"` // Primary Key (UUID)
	LedgerID            string             `json:"ledgerID"`  // FK -> Ledger.ledgerID (Not Null)
	Number              string             `json:"number"`    // unique within ledger
	Name                string             `json:"name"`
	AccountType         AccountType        `json:"accountType"`
	VatClass            VatClass           `json:"vatClass"`
	GrossAmounts        bool               `json:"grossAmounts"`
	TracksOpenItems     bool               `json:"tracksOpenItems"`
	CounterAccount      string             `json:"counterAccount"` // default counter account number, nullable
	DepreciationMethod  DepreciationMethod `json:"depreciationMethod"`
	DepreciationPercent decimal.Decimal    `json:"depreciationPercent"`
	Hidden              bool               `json:"hidden"`
	AuditFields
}
