package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected failure inside the service or its storage layer.
var ErrInternal = errors.New("internal error")

// Posting validation errors, checked in order by the posting service.
var (
	// ErrEmptyEntry indicates a candidate entry with fewer than two lines.
	ErrEmptyEntry = errors.New("journal entry must have at least two lines")

	// ErrMalformedLine indicates a line that is not exactly one of debit or credit.
	ErrMalformedLine = errors.New("line must have exactly one of debit or credit")

	// ErrUnknownAccount indicates a line referencing a missing or deactivated account.
	ErrUnknownAccount = errors.New("unknown or inactive account")

	// ErrUnbalancedEntry indicates total debits do not equal total credits.
	ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")

	// ErrDuplicateSource indicates an active entry already exists for the
	// candidate's (sourceType, sourceID) pair.
	ErrDuplicateSource = errors.New("active journal entry already exists for source document")
)

// ErrAlreadyReversed indicates an entry whose reversal has already been posted.
var ErrAlreadyReversed = errors.New("journal entry is already reversed")

// ErrAccountInUse indicates an account that cannot be deleted because ledger
// lines reference it. Deactivation is the supported alternative.
var ErrAccountInUse = errors.New("account is referenced by posted lines")

// AppError wraps a lower-level failure with an HTTP-ish status code and a
// message safe to log. Repositories return these for storage faults that do
// not map to one of the sentinel errors above.
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
