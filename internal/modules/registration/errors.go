package registration

import "errors"

var (
	ErrNotFound         = errors.New("registration not found")
	ErrDuplicateEmail   = errors.New("a registration with this email already exists")
	ErrPermissionDenied = errors.New("the data store rejected the write")
	ErrConnection       = errors.New("could not reach the data store")
)

// ValidationError carries the single user-correctable reason produced by the
// form validator. One reason at a time, matching the single-message UX.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func newValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}
