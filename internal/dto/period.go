package dto

import (
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
)

// CreatePeriodRequest defines the payload for adding a fiscal period.
// The new period must be contiguous with the ledger's existing periods.
type CreatePeriodRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	// Opening marks the very first period; initial balances enter through an
	// opening voucher recorded inside it.
	Opening bool `json:"opening"`
}

// LockPeriodRequest defines the payload for locking a period. Outstanding
// warnings are advisory; locking despite them requires the acknowledgment.
type LockPeriodRequest struct {
	AcknowledgeWarnings bool `json:"acknowledgeWarnings"`
}

// UpdateHeadcountRequest stores the average-headcount reporting metadata.
type UpdateHeadcountRequest struct {
	AvgHeadcount int `json:"avgHeadcount" binding:"required,min=0"`
}

// SetStatementRequest links the financial-statement artifact to a period.
type SetStatementRequest struct {
	StatementRef string `json:"statementRef" binding:"required"`
	Finalized    bool   `json:"finalized"`
}

// PeriodWarningResponse is one advisory condition surfaced before locking.
type PeriodWarningResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	PeriodID           string     `json:"periodID"`
	StartDate          time.Time  `json:"startDate"`
	EndDate            time.Time  `json:"endDate"`
	State              string     `json:"state"`
	Opening            bool       `json:"opening"`
	AvgHeadcount       int        `json:"avgHeadcount,omitempty"`
	StatementRef       string     `json:"statementRef,omitempty"`
	StatementFinalized bool       `json:"statementFinalized"`
	LockAcknowledgedBy string     `json:"lockAcknowledgedBy,omitempty"`
	LockAcknowledgedAt *time.Time `json:"lockAcknowledgedAt,omitempty"`
	ArchiveStatus      string     `json:"archiveStatus"`
	ArchiveRef         string     `json:"archiveRef,omitempty"`
}

// ToPeriodResponse converts a domain.FiscalPeriod to PeriodResponse DTO.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:           p.PeriodID,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		State:              string(p.State),
		Opening:            p.Opening,
		AvgHeadcount:       p.AvgHeadcount,
		StatementRef:       p.StatementRef,
		StatementFinalized: p.StatementFinalized,
		LockAcknowledgedBy: p.LockAcknowledgedBy,
		LockAcknowledgedAt: p.LockAcknowledgedAt,
		ArchiveStatus:      string(p.ArchiveStatus),
		ArchiveRef:         p.ArchiveRef,
	}
}

// ToPeriodResponses converts a slice of domain.FiscalPeriod to []PeriodResponse.
func ToPeriodResponses(periods []domain.FiscalPeriod) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToPeriodResponse(&periods[i])
	}
	return responses
}

// ToPeriodWarningResponses converts domain warnings to DTOs.
func ToPeriodWarningResponses(warnings []domain.PeriodWarning) []PeriodWarningResponse {
	responses := make([]PeriodWarningResponse, len(warnings))
	for i, w := range warnings {
		responses[i] = PeriodWarningResponse{Code: w.Code, Message: w.Message}
	}
	return responses
}
