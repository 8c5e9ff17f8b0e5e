package errors

import (
	"fmt"

	"github.com/wbstat/client/internal/types"
)

// maxBodySnippet bounds how much of a response body is copied into an error.
const maxBodySnippet = 512

// ClassifyHTTPError maps a status code to a category:
// - 4xx client errors (except 408 and 429) are irrecoverable
// - 5xx server errors are recoverable
// - anything else unexpected is treated as recoverable
func ClassifyHTTPError(statusCode int, body string, underlyingErr error) *ClassifiedError {
	return &ClassifiedError{
		Category:   getHTTPErrorCategory(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Underlying: underlyingErr,
	}
}

// getHTTPErrorCategory maps HTTP status codes to error categories.
func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		return Recoverable
	}
}

// NewHTTPError creates a classified error for an HTTP failure.
func NewHTTPError(statusCode int, body string, operation string) *ClassifiedError {
	underlyingErr := fmt.Errorf("%s failed: HTTP %d", operation, statusCode)
	return ClassifyHTTPError(statusCode, body, underlyingErr)
}

// NewNetworkError creates a classified error for network-level failures.
// Network errors are always recoverable as they may be transient.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}

// ClassifyOutcome returns nil when out is a completed exchange with a status
// below 400, and a ClassifiedError otherwise.
func ClassifyOutcome(out *types.RawOutcome) *ClassifiedError {
	if out == nil {
		return nil
	}
	op := out.Method + " " + out.URL
	if out.Err != nil {
		return NewNetworkError(op, out.Err)
	}
	if out.StatusCode >= 400 || out.StatusCode < 100 {
		body := out.Body
		if len(body) > maxBodySnippet {
			body = body[:maxBodySnippet]
		}
		return NewHTTPError(out.StatusCode, string(body), op)
	}
	return nil
}

// Label is a low-cardinality metric label for out: "ok", "recoverable" or
// "irrecoverable".
func Label(out *types.RawOutcome) string {
	ce := ClassifyOutcome(out)
	if ce == nil {
		return "ok"
	}
	if ce.Category == Recoverable {
		return "recoverable"
	}
	return "irrecoverable"
}
