package domain

import "fmt"

// ValidationError rejects malformed input before any ledger call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StateConflictError surfaces a guarded ledger transition that was rejected
// (already sold, already scanned, not the owner). It is reported verbatim and
// never retried automatically.
type StateConflictError struct {
	Reason string
	Err    error
}

func (e *StateConflictError) Error() string {
	return e.Reason
}

func (e *StateConflictError) Unwrap() error {
	return e.Err
}

// PartialWorkflowError reports a multi-step workflow that failed after an
// earlier step had already committed. Committed names the state that is now
// true on the ledger so the caller can drive an explicit repair.
type PartialWorkflowError struct {
	Step      string
	Committed string
	EventID   uint64
	TicketID  uint64
	TokenID   uint64
	Err       error
}

func (e *PartialWorkflowError) Error() string {
	return fmt.Sprintf(
		"step %q failed after %q committed (event=%d ticket=%d token=%d): %v",
		e.Step, e.Committed, e.EventID, e.TicketID, e.TokenID, e.Err,
	)
}

func (e *PartialWorkflowError) Unwrap() error {
	return e.Err
}

// UnavailableError means the ledger could not be reached; the operation failed
// fast and attempted no mutation.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("ledger unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}
