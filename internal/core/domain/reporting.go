package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingFilter narrows the read-only posting queries of the reporting surface.
type PostingFilter struct {
	StartDate    time.Time
	EndDate      time.Time
	AccountID    string // optional
	AllocationID string // optional
}

// ReportPosting is one row of the posting query result: a posting joined with
// its voucher header, as reporting collaborators consume it.
type ReportPosting struct {
	Posting
	VoucherSeries   string    `json:"voucherSeries"`
	VoucherSequence int64     `json:"voucherSequence"`
	VoucherDate     time.Time `json:"voucherDate"`
	VoucherTitle    string    `json:"voucherTitle"`
}

// TrialBalanceRow is one account's debit/credit sums over a range.
type TrialBalanceRow struct {
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
	Balance       decimal.Decimal `json:"balance"`
}
