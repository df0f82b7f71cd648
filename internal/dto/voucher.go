package dto

import (
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVoucherRequest defines the payload for opening a draft voucher.
type CreateVoucherRequest struct {
	Date  time.Time `json:"date" binding:"required"`
	Title string    `json:"title" binding:"required"`
	Type  string    `json:"type" binding:"omitempty,oneof=GENERAL SALES PURCHASE CASH_RECEIPT CASH_PAYMENT BANK"`
}

// OpenItemRefSpec carries the caller's open-item resolution for a posting on
// a receivable/payable account. Matching is explicit: APPLY names the item.
type OpenItemRefSpec struct {
	Choice       string `json:"choice" binding:"required,oneof=NEW APPLY"`
	ItemID       string `json:"itemID,omitempty"`
	Counterparty string `json:"counterparty,omitempty"`
	Overpayment  bool   `json:"overpayment,omitempty"`
}

// PostingSpec defines one posting line added to a draft voucher.
type PostingSpec struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,cents"`
	Side          string          `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Description   string          `json:"description,omitempty"`
	AllocationID  string          `json:"allocationID,omitempty"`
	OpenItem      *OpenItemRefSpec `json:"openItem,omitempty"`
}

// UpdateVoucherRequest defines the updatable voucher header fields.
type UpdateVoucherRequest struct {
	Date  *time.Time `json:"date,omitempty"`
	Title *string    `json:"title,omitempty"`
}

// VatAnnotationResponse is the tax computed for a posting.
type VatAnnotationResponse struct {
	Class      string          `json:"class"`
	Percent    decimal.Decimal `json:"percent"`
	Basis      decimal.Decimal `json:"basis"`
	Tax        decimal.Decimal `json:"tax"`
	Deductible bool            `json:"deductible"`
	Sealed     bool            `json:"sealed"`
}

// PostingResponse defines the data returned for a posting line.
type PostingResponse struct {
	PostingID    string                 `json:"postingID"`
	AccountID    string                 `json:"accountID"`
	Amount       decimal.Decimal        `json:"amount"`
	Side         string                 `json:"side"`
	Description  string                 `json:"description,omitempty"`
	AllocationID string                 `json:"allocationID,omitempty"`
	OpenItemID   string                 `json:"openItemID,omitempty"`
	Vat          *VatAnnotationResponse `json:"vat,omitempty"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID string            `json:"voucherID"`
	Type      string            `json:"type"`
	Series    string            `json:"series,omitempty"`
	Sequence  *int64            `json:"sequence,omitempty"`
	PeriodID  string            `json:"periodID,omitempty"`
	Date      time.Time         `json:"date"`
	Title     string            `json:"title"`
	State     string            `json:"state"`
	Postings  []PostingResponse `json:"postings,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	CreatedBy string            `json:"createdBy"`
}

// ListVouchersParams holds parameters for listing vouchers.
type ListVouchersParams struct {
	Limit           int     `form:"limit"`
	NextToken       *string `form:"nextToken"`
	IncludeDeleted  bool    `form:"includeDeleted"`
	IncludePostings bool    `form:"includePostings"`
}

// ListVouchersResponse is a page of vouchers plus the token for the next page.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ImportVoucherSpec is one voucher produced by an import collaborator (bank
// statement, CSV). It flows through the standard draft/posting/record contract.
type ImportVoucherSpec struct {
	Date     time.Time     `json:"date" binding:"required"`
	Title    string        `json:"title" binding:"required"`
	Type     string        `json:"type" binding:"omitempty,oneof=GENERAL SALES PURCHASE CASH_RECEIPT CASH_PAYMENT BANK"`
	Postings []PostingSpec `json:"postings" binding:"required,min=2"`
}

// ImportBatchRequest is a batch of import vouchers.
type ImportBatchRequest struct {
	Vouchers []ImportVoucherSpec `json:"vouchers" binding:"required,min=1"`
}

// ImportBatchResponse reports per-voucher outcomes of an import batch.
type ImportBatchResponse struct {
	Recorded []VoucherResponse `json:"recorded"`
	Failed   []ImportFailure   `json:"failed,omitempty"`
}

// ImportFailure names the rejected voucher and the violated invariant.
type ImportFailure struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Error string `json:"error"`
}

// ToPostingResponse converts a domain.Posting to PostingResponse DTO.
func ToPostingResponse(p *domain.Posting) PostingResponse {
	resp := PostingResponse{
		PostingID:    p.PostingID,
		AccountID:    p.AccountID,
		Amount:       p.Amount,
		Side:         string(p.Side),
		Description:  p.Description,
		AllocationID: p.AllocationID,
	}
	if p.OpenItem != nil {
		resp.OpenItemID = p.OpenItem.ItemID
	}
	if p.Vat != nil {
		resp.Vat = &VatAnnotationResponse{
			Class:      string(p.Vat.Class),
			Percent:    p.Vat.Percent,
			Basis:      p.Vat.Basis,
			Tax:        p.Vat.Tax,
			Deductible: p.Vat.Deductible,
			Sealed:     p.Vat.Sealed,
		}
	}
	return resp
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID: v.VoucherID,
		Type:      string(v.Type),
		Series:    v.Series,
		Sequence:  v.Sequence,
		PeriodID:  v.PeriodID,
		Date:      v.Date,
		Title:     v.Title,
		State:     string(v.State),
		CreatedAt: v.CreatedAt,
		CreatedBy: v.CreatedBy,
	}
	if len(v.Postings) > 0 {
		resp.Postings = make([]PostingResponse, len(v.Postings))
		for i := range v.Postings {
			resp.Postings[i] = ToPostingResponse(&v.Postings[i])
		}
	}
	return resp
}
