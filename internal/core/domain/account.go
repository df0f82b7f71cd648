package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsBalanceSheet reports whether balances of this type carry over fiscal
// periods. Result accounts (revenue/expense) restart at zero each period.
func (t AccountType) IsBalanceSheet() bool {
	return t == Asset || t == Liability || t == Equity
}

// VatClass categorizes how postings on an account participate in VAT.
type VatClass string

const (
	VatNone        VatClass = "NONE"
	VatSales       VatClass = "SALES"
	VatPurchase    VatClass = "PURCHASE"
	VatMarginUsed  VatClass = "MARGIN_USED_GOODS"
	VatMarginTrvl  VatClass = "MARGIN_TRAVEL"
)

// Taxable reports whether postings of this class carry a VAT annotation.
func (c VatClass) Taxable() bool {
	return c != VatNone && c != ""
}

// Deductible reports whether the computed tax reduces the net liability.
func (c VatClass) Deductible() bool {
	return c == VatPurchase
}

// DepreciationMethod describes optional depreciation parameters on asset accounts.
type DepreciationMethod string

const (
	DepreciationNone       DepreciationMethod = "NONE"
	DepreciationStraight   DepreciationMethod = "STRAIGHT_LINE"
	DepreciationReducing   DepreciationMethod = "REDUCING_BALANCE"
)

// Account is one entry in the chart of accounts. The number is the stable
// identity: once any posting references the account, the number and type are
// immutable and the account can only be hidden, never deleted.
type Account struct {
	AccountID string      `json:"accountID"` // surrogate key (UUID)
	LedgerID  string      `json:"ledgerID"`
	Number    string      `json:"number"` // unique, sortable account number
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	VatClass  VatClass    `json:"vatClass"`
	// GrossAmounts marks accounts whose postings record tax-inclusive figures;
	// the VAT engine then derives the tax out of the gross amount.
	GrossAmounts bool `json:"grossAmounts"`
	// TracksOpenItems marks receivable/payable accounts whose postings must
	// resolve against the open-item subledger.
	TracksOpenItems bool `json:"tracksOpenItems"`
	// CounterAccount is the default counter account number offered to voucher
	// entry for this account. Optional.
	CounterAccount string `json:"counterAccount,omitempty"`

	DepreciationMethod  DepreciationMethod `json:"depreciationMethod,omitempty"`
	DepreciationPercent decimal.Decimal    `json:"depreciationPercent,omitempty"`

	Hidden bool `json:"hidden"`
	AuditFields
}
