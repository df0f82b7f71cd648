package apperrors

import (
	"errors"
	"fmt"
)

// Generic error kinds shared by all components.
var (
	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation indicates that input data failed validation checks.
	ErrValidation = errors.New("validation error")

	// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
	ErrDuplicate = errors.New("resource already exists")

	// ErrConflict indicates that the operation conflicts with the current state of the resource.
	ErrConflict = errors.New("conflicting state")

	// ErrForbidden indicates that the caller is not allowed to perform the operation.
	ErrForbidden = errors.New("operation not allowed")

	// ErrInternal indicates an unexpected internal failure.
	ErrInternal = errors.New("internal error")
)

// Accounting error kinds. Handlers map these to specific responses so a
// rejected operation always tells the caller which invariant it violated.
var (
	// ErrDuplicateNumber: the account number is already defined in the chart.
	ErrDuplicateNumber = errors.New("account number already exists")

	// ErrUnbalancedVoucher: debit and credit postings do not sum to the same total.
	ErrUnbalancedVoucher = errors.New("voucher postings do not balance")

	// ErrPeriodClosed: the voucher date does not fall inside an open fiscal period.
	ErrPeriodClosed = errors.New("fiscal period is not open for posting")

	// ErrPeriodDateOutOfRange: the date is not covered by any fiscal period.
	ErrPeriodDateOutOfRange = errors.New("date falls outside every fiscal period")

	// ErrPeriodLocked: the enclosing fiscal period is locked.
	ErrPeriodLocked = errors.New("fiscal period is locked")

	// ErrStatementFinalized: the period has a finalized financial statement.
	ErrStatementFinalized = errors.New("financial statement has been finalized")

	// ErrOverlap: the new fiscal period overlaps or leaves a gap against existing periods.
	ErrOverlap = errors.New("fiscal period is not contiguous with existing periods")

	// ErrIncompleteVoucherCheck: period lock attempted without acknowledging outstanding warnings.
	ErrIncompleteVoucherCheck = errors.New("outstanding period warnings not acknowledged")

	// ErrNoRateForDate: no VAT rate version covers the posting date.
	ErrNoRateForDate = errors.New("no VAT rate configured for date")

	// ErrAlreadyFiled: a sealed VAT return already covers the range.
	ErrAlreadyFiled = errors.New("VAT return already filed for range")

	// ErrVatSealed: the posting's tax annotation is covered by a filed VAT return.
	ErrVatSealed = errors.New("posting is sealed by a filed VAT return")

	// ErrIncompleteData: ledger configuration is missing accounts the chosen VAT basis requires.
	ErrIncompleteData = errors.New("ledger configuration incomplete for VAT basis")

	// ErrOverApplication: applying the amount would flip the open item's sign without the overpayment flag.
	ErrOverApplication = errors.New("application exceeds open item balance")

	// ErrSequenceConflict: concurrent voucher numbering collision; retried internally, surfaced only
	// when the bounded retries are exhausted.
	ErrSequenceConflict = errors.New("voucher sequence assignment conflict")
)

// AppError wraps a lower-level error with an HTTP-ish status code and a message
// suitable for logging. Repositories use it to report infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
