// Package errors classifies exchange failures. The circuit breaker and the
// request metrics use the category to tell a sick remote service apart from a
// bad request.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory says whether repeating the same request can succeed.
type ErrorCategory int

const (
	// Recoverable: the remote side is failing (5xx, 408, 429, network errors).
	Recoverable ErrorCategory = iota

	// Irrecoverable: the request itself is wrong (400, 401, 403, 404).
	Irrecoverable
)

func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError is a failed exchange with its category.
type ClassifiedError struct {
	Category   ErrorCategory
	StatusCode int    // 0 when no response was received
	Body       string // truncated response body
	Underlying error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

func (e *ClassifiedError) Unwrap() error { return e.Underlying }

// CategoryOf finds a ClassifiedError in err's chain.
func CategoryOf(err error) (ErrorCategory, bool) {
	var ce *ClassifiedError
	if !stderrors.As(err, &ce) || ce == nil {
		return 0, false
	}
	return ce.Category, true
}

// IsRecoverable reports whether err's chain holds a recoverable ClassifiedError.
func IsRecoverable(err error) bool {
	c, ok := CategoryOf(err)
	return ok && c == Recoverable
}

// IsIrrecoverable reports whether err's chain holds an irrecoverable
// ClassifiedError.
func IsIrrecoverable(err error) bool {
	c, ok := CategoryOf(err)
	return ok && c == Irrecoverable
}
