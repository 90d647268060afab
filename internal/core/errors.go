package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatScan        ErrorCategory = "scan"         // Partial or total catalog scan failure
	ErrCatProcessGone ErrorCategory = "process_gone" // Target exited before dispatch
	ErrCatSpawn       ErrorCategory = "spawn"        // Diagnostic binary missing or unexecutable
	ErrCatTimeout     ErrorCategory = "timeout"      // Dispatch exceeded its bound
	ErrCatValidation  ErrorCategory = "validation"   // Invalid selection or flag input
	ErrCatInternal    ErrorCategory = "internal"     // Unexpected internal error
)

// DomainError represents a structured error from the dispatch domain.
type DomainError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Hint     string // remediation hint shown to the operator, may be empty
	Cause    error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithHint attaches a remediation hint.
func (e *DomainError) WithHint(hint string) *DomainError {
	e.Hint = hint
	return e
}

// Predefined error codes.
const (
	CodeProcessGone      = "PROCESS_GONE"
	CodeSpawnFailed      = "SPAWN_FAILED"
	CodeDispatchTimeout  = "DISPATCH_TIMEOUT"
	CodeInvalidSelection = "INVALID_SELECTION"
	CodeScanFailed       = "SCAN_FAILED"
	CodeActionUnknown    = "ACTION_UNKNOWN"
	CodeActionMismatch   = "ACTION_MISMATCH"
)

// ErrProcessGone reports a target process that exited before dispatch.
func ErrProcessGone(pid int32) *DomainError {
	return &DomainError{
		Category: ErrCatProcessGone,
		Code:     CodeProcessGone,
		Message:  fmt.Sprintf("process %d no longer exists", pid),
	}
}

// ErrSpawnFailed reports a diagnostic binary that could not be started.
func ErrSpawnFailed(binary string) *DomainError {
	return &DomainError{
		Category: ErrCatSpawn,
		Code:     CodeSpawnFailed,
		Message:  fmt.Sprintf("cannot start %q", binary),
		Hint:     fmt.Sprintf("check that %q is installed and on PATH, or set its path in the config file", binary),
	}
}

// ErrDispatchTimeout reports a dispatch that exceeded its bound.
func ErrDispatchTimeout(action string, seconds float64) *DomainError {
	return &DomainError{
		Category: ErrCatTimeout,
		Code:     CodeDispatchTimeout,
		Message:  fmt.Sprintf("%s did not finish within %.0fs, child terminated", action, seconds),
		Hint:     "raise dispatch.timeout in the config or retry against a responsive process",
	}
}

// ErrInvalidSelection reports an operator selection out of range.
func ErrInvalidSelection(index, size int) *DomainError {
	return &DomainError{
		Category: ErrCatValidation,
		Code:     CodeInvalidSelection,
		Message:  fmt.Sprintf("selection %d out of range (1-%d)", index, size),
	}
}

// ErrScanFailed reports a catalog scan that produced nothing at all.
// This is the only fatal error in the tool.
func ErrScanFailed(cause error) *DomainError {
	return &DomainError{
		Category: ErrCatScan,
		Code:     CodeScanFailed,
		Message:  "cannot enumerate processes",
		Cause:    cause,
	}
}

// ErrValidation creates a generic validation error.
func ErrValidation(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatValidation,
		Code:     code,
		Message:  message,
	}
}

// GetCategory extracts the error category.
func GetCategory(err error) ErrorCategory {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Category
	}
	return ErrCatInternal
}

// IsCategory checks if an error belongs to a category.
func IsCategory(err error, cat ErrorCategory) bool {
	return GetCategory(err) == cat
}

// HintOf extracts the remediation hint, if any.
func HintOf(err error) string {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Hint
	}
	return ""
}
