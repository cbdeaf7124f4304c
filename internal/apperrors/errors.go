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

// ErrUnbalanced indicates a posting whose debits and credits do not match.
// Well-formed callers never produce this; it is treated as a programming error.
var ErrUnbalanced = errors.New("posting is not balanced")

// ErrConcurrencyConflict indicates a serialization failure or deadlock while
// reconciling an event. The whole reconciliation may be retried by the caller;
// idempotent references make the retry safe.
var ErrConcurrencyConflict = errors.New("concurrent modification conflict")

// ErrTimeout indicates the reconciliation exceeded its transaction budget and
// was rolled back cleanly.
var ErrTimeout = errors.New("reconciliation timed out")

// AccountNotConfiguredError is returned when no account is mapped for a
// (business, role) pair. It is a configuration error and is not retryable.
type AccountNotConfiguredError struct {
	BusinessID string
	Role       string
}

func (e *AccountNotConfiguredError) Error() string {
	return fmt.Sprintf("no account configured for role %q in business %s", e.Role, e.BusinessID)
}

// AmbiguousAccountError is returned when the role mapping resolves to more
// than one account. It signals inconsistent configuration data.
type AmbiguousAccountError struct {
	BusinessID string
	Role       string
	Matches    int
}

func (e *AmbiguousAccountError) Error() string {
	return fmt.Sprintf("%d accounts configured for role %q in business %s, expected exactly one", e.Matches, e.Role, e.BusinessID)
}

// IsConfigurationError reports whether err is one of the non-retryable
// account configuration failures surfaced to operators.
func IsConfigurationError(err error) bool {
	var notConfigured *AccountNotConfiguredError
	var ambiguous *AmbiguousAccountError
	return errors.As(err, &notConfigured) || errors.As(err, &ambiguous)
}
