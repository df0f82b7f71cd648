package dto

import (
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVatRateRequest defines a new VAT rate version. The previous open-ended
// version of the same class is closed the day before EffectiveFrom.
type CreateVatRateRequest struct {
	Class         string          `json:"class" binding:"required,oneof=SALES PURCHASE MARGIN_USED_GOODS MARGIN_TRAVEL"`
	Percent       decimal.Decimal `json:"percent" binding:"required"`
	EffectiveFrom time.Time       `json:"effectiveFrom" binding:"required"`
}

// VatRateResponse defines the data returned for a rate version.
type VatRateResponse struct {
	RateID        string          `json:"rateID"`
	Class         string          `json:"class"`
	Percent       decimal.Decimal `json:"percent"`
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	EffectiveTo   *time.Time      `json:"effectiveTo,omitempty"`
}

// BuildVatReturnRequest selects the period the return covers.
type BuildVatReturnRequest struct {
	PeriodStart time.Time `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required"`
}

// VatReturnLineResponse is the per-rate breakdown inside a return.
type VatReturnLineResponse struct {
	Class   string          `json:"class"`
	Percent decimal.Decimal `json:"percent"`
	Basis   decimal.Decimal `json:"basis"`
	Tax     decimal.Decimal `json:"tax"`
}

// VatReturnResponse defines the data returned for a VAT return.
type VatReturnResponse struct {
	ReturnID    string                  `json:"returnID,omitempty"`
	PeriodStart time.Time               `json:"periodStart"`
	PeriodEnd   time.Time               `json:"periodEnd"`
	DueDate     time.Time               `json:"dueDate"`
	Payable     decimal.Decimal         `json:"payable"`
	Deductible  decimal.Decimal         `json:"deductible"`
	Net         decimal.Decimal         `json:"net"`
	Lines       []VatReturnLineResponse `json:"lines,omitempty"`
	FiledAt     *time.Time              `json:"filedAt,omitempty"`
}

// ToVatRateResponse converts a domain.VatRate to VatRateResponse DTO.
func ToVatRateResponse(r *domain.VatRate) VatRateResponse {
	return VatRateResponse{
		RateID:        r.RateID,
		Class:         string(r.Class),
		Percent:       r.Percent,
		EffectiveFrom: r.EffectiveFrom,
		EffectiveTo:   r.EffectiveTo,
	}
}

// ToVatReturnResponse converts a domain.VatReturn to VatReturnResponse DTO.
func ToVatReturnResponse(v *domain.VatReturn) VatReturnResponse {
	resp := VatReturnResponse{
		ReturnID:    v.ReturnID,
		PeriodStart: v.PeriodStart,
		PeriodEnd:   v.PeriodEnd,
		DueDate:     v.DueDate,
		Payable:     v.Payable,
		Deductible:  v.Deductible,
		Net:         v.Net,
		FiledAt:     v.FiledAt,
	}
	if len(v.Lines) > 0 {
		resp.Lines = make([]VatReturnLineResponse, len(v.Lines))
		for i, line := range v.Lines {
			resp.Lines[i] = VatReturnLineResponse{
				Class:   string(line.Class),
				Percent: line.Percent,
				Basis:   line.Basis,
				Tax:     line.Tax,
			}
		}
	}
	return resp
}
