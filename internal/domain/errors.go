package domain

import "errors"

// DomainViolation marks an operation that would break a hard invariant:
// rewriting closed history, or recording execution against a day that was
// never materialized. It is terminal for the operation and must not be
// retried automatically.
type DomainViolation struct {
	Reason string
}

func (e *DomainViolation) Error() string {
	return e.Reason
}

// Violation constructs a DomainViolation with the given reason.
func Violation(reason string) error {
	return &DomainViolation{Reason: reason}
}

// IsViolation reports whether err is (or wraps) a DomainViolation.
func IsViolation(err error) bool {
	var v *DomainViolation
	return errors.As(err, &v)
}

// ErrNotPlanned is returned when a task execution is recorded against a task
// that is not part of the day's plan.
var ErrNotPlanned = errors.New("task is not part of the daily plan")
