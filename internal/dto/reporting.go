package dto

import (
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingQueryParams narrows the read-only posting query.
type PostingQueryParams struct {
	StartDate    time.Time `form:"startDate" time_format:"2006-01-02" binding:"required"`
	EndDate      time.Time `form:"endDate" time_format:"2006-01-02" binding:"required"`
	AccountID    string    `form:"accountID"`
	AllocationID string    `form:"allocationID"`
}

// ReportPostingResponse is one posting joined with its voucher header.
type ReportPostingResponse struct {
	PostingResponse
	VoucherSeries   string    `json:"voucherSeries"`
	VoucherSequence int64     `json:"voucherSequence"`
	VoucherDate     time.Time `json:"voucherDate"`
	VoucherTitle    string    `json:"voucherTitle"`
}

// TrialBalanceRowResponse is one account's totals in a trial balance.
type TrialBalanceRowResponse struct {
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
	Balance       decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse is the full trial balance over a range.
type TrialBalanceResponse struct {
	StartDate time.Time                 `json:"startDate"`
	EndDate   time.Time                 `json:"endDate"`
	Rows      []TrialBalanceRowResponse `json:"rows"`
}

// ToReportPostingResponses converts domain report postings to DTOs.
func ToReportPostingResponses(postings []domain.ReportPosting) []ReportPostingResponse {
	responses := make([]ReportPostingResponse, len(postings))
	for i := range postings {
		responses[i] = ReportPostingResponse{
			PostingResponse: ToPostingResponse(&postings[i].Posting),
			VoucherSeries:   postings[i].VoucherSeries,
			VoucherSequence: postings[i].VoucherSequence,
			VoucherDate:     postings[i].VoucherDate,
			VoucherTitle:    postings[i].VoucherTitle,
		}
	}
	return responses
}

// ToTrialBalanceResponse converts trial balance rows to the response DTO.
func ToTrialBalanceResponse(start, end time.Time, rows []domain.TrialBalanceRow) TrialBalanceResponse {
	resp := TrialBalanceResponse{StartDate: start, EndDate: end, Rows: make([]TrialBalanceRowResponse, len(rows))}
	for i, row := range rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountNumber: row.AccountNumber,
			AccountName:   row.AccountName,
			AccountType:   string(row.AccountType),
			DebitTotal:    row.DebitTotal,
			CreditTotal:   row.CreditTotal,
			Balance:       row.Balance,
		}
	}
	return resp
}
