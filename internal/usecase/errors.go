package usecase

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrPrecondition          = errors.New("precondition failed")
	ErrForbidden             = errors.New("forbidden")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// preconditionf reports a state the caller can fix; hint tells them how.
func preconditionf(hint, format string, args ...any) error {
	return errors.WithHint(fmt.Errorf("%w: "+format, append([]any{ErrPrecondition}, args...)...), hint)
}

// RemediationHint returns the hint attached to a precondition failure, if any.
func RemediationHint(err error) string {
	hints := errors.GetAllHints(err)
	if len(hints) == 0 {
		return ""
	}
	return hints[0]
}
