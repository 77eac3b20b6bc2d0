package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrEmployeeNotFound  = fmt.Errorf("employee %w", ErrNotFound)
	ErrPositionNotFound  = fmt.Errorf("position %w", ErrNotFound)
	ErrInvalidDeductions = errors.New("deductions must be a non-negative number")
)

// LookupError reports that a collaborator could not be asked, as opposed to
// answering that the entity does not exist.
type LookupError struct {
	Collaborator string
	ID           int64
	Status       int // HTTP status when the collaborator answered, else 0
	Err          error
}

func (e *LookupError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s lookup %d: status %d", e.Collaborator, e.ID, e.Status)
	}
	return fmt.Sprintf("%s lookup %d: %v", e.Collaborator, e.ID, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// IsTransportFailure reports whether err came from a failed collaborator call.
func IsTransportFailure(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}
