package domain

import "time"

// PeriodState is the lifecycle state of a fiscal period. Transitions are
// monotonic: OPEN -> LOCKED -> ARCHIVED, with LOCKED -> OPEN possible only
// through an explicit audited unlock while no statement is finalized.
type PeriodState string

const (
	PeriodOpen     PeriodState = "OPEN"
	PeriodLocked   PeriodState = "LOCKED"
	PeriodArchived PeriodState = "ARCHIVED"
)

// ArchiveStatus is the advisory status of the asynchronous archive snapshot
// requested when a period is locked. It never affects ledger state.
type ArchiveStatus string

const (
	ArchiveNone      ArchiveStatus = "NONE"
	ArchiveRequested ArchiveStatus = "REQUESTED"
	ArchiveDone      ArchiveStatus = "DONE"
	ArchiveFailed    ArchiveStatus = "FAILED"
)

// FiscalPeriod is a bounded date range within which vouchers are recorded.
// Periods of one ledger are contiguous and non-overlapping.
type FiscalPeriod struct {
	PeriodID  string      `json:"periodID"`
	LedgerID  string      `json:"ledgerID"`
	StartDate time.Time   `json:"startDate"`
	EndDate   time.Time   `json:"endDate"` // inclusive, > StartDate
	State     PeriodState `json:"state"`
	// Opening marks the very first period, seeded from prior-period closing
	// balances rather than ordinary postings. At most one per ledger.
	Opening bool `json:"opening"`
	// AvgHeadcount is reporting metadata for the financial statement.
	AvgHeadcount int `json:"avgHeadcount,omitempty"`

	// StatementRef links the financial-statement artifact once produced;
	// StatementFinalized forbids unlocking.
	StatementRef       string `json:"statementRef,omitempty"`
	StatementFinalized bool   `json:"statementFinalized"`

	// Acknowledgment recorded when the period was locked despite warnings.
	LockAcknowledgedBy string     `json:"lockAcknowledgedBy,omitempty"`
	LockAcknowledgedAt *time.Time `json:"lockAcknowledgedAt,omitempty"`

	ArchiveStatus ArchiveStatus `json:"archiveStatus"`
	ArchiveRef    string        `json:"archiveRef,omitempty"`
	AuditFields
}

// Contains reports whether the date falls inside the period.
func (p *FiscalPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// PeriodWarning is an advisory condition surfaced before locking a period.
// Warnings never block the lock, but locking with outstanding warnings
// requires an explicit acknowledgment that gets recorded.
type PeriodWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	WarnUnfiledVatReturn = "UNFILED_VAT_RETURN"
	WarnDraftVouchers    = "DRAFT_VOUCHERS"
)
