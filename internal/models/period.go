package models

import "time"

// PeriodState is the lifecycle state of a fiscal period.
type PeriodState string

// ArchiveStatus is the advisory status of the asynchronous archive snapshot.
type ArchiveStatus string

// FiscalPeriod represents a bounded date range of one ledger. Rows of one
// ledger are contiguous and non-overlapping.
type FiscalPeriod struct {
	PeriodID           string      `json:"periodID"` // Primary Key (UUID)
	LedgerID           string      `json:"ledgerID"` // FK -> Ledger.ledgerID (Not Null)
	StartDate          time.Time   `json:"startDate"`
	EndDate            time.Time   `json:"endDate"` // inclusive
	State              PeriodState `json:"state"`
	Opening            bool        `json:"opening"`
	AvgHeadcount       int         `json:"avgHeadcount"`
	StatementRef       string      `json:"statementRef"` // Nullable
	StatementFinalized bool        `json:"statementFinalized"`
	LockAcknowledgedBy string      `json:"lockAcknowledgedBy"` // Nullable
	LockAcknowledgedAt *time.Time  `json:"lockAcknowledgedAt"` // Nullable
	ArchiveStatus      ArchiveStatus `json:"archiveStatus"`
	ArchiveRef         string        `json:"archiveRef"` // Nullable
	AuditFields
}
