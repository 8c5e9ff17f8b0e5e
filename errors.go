package client

import (
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/wbstat/client/internal/types"
)

// ErrTokenMissing is returned by New when no token is given.
var ErrTokenMissing = errors.New("the token is not specified")

// ErrInvalidOption wraps every option or setter validation error.
var ErrInvalidOption = errors.New("invalid client option")

// Validation failures. They are reported through Result (Failure.Kind ==
// KindValidation) and match with errors.Is(res.Err(), ...). No request is sent.
var (
	ErrDateFromMissing = errors.New("the dateFrom parameter is not specified")
	ErrFlagOutOfRange  = errors.New("the flag value must be 0 or 1")
	ErrInvalidLimit    = errors.New("the limit must be positive")
	ErrInvalidCursor   = errors.New("the rrdid cursor must not be negative")
	ErrInvalidRequest  = errors.New("the request has no path")
)

// ErrCircuitOpen matches failures produced while the optional circuit breaker
// rejects requests.
var ErrCircuitOpen = gobreaker.ErrOpenState

// IsValidation reports whether err is a validation Failure.
func IsValidation(err error) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == KindValidation
}

func invalidOption(err error) error { return fmt.Errorf("%w: %v", ErrInvalidOption, err) }

func errPositive(what string) error { return fmt.Errorf("%s must be > 0", what) }

func errUnknownVerbosity(v Verbosity) error { return fmt.Errorf("unknown verbosity %d", int(v)) }

func validationFailure(cause error) Result {
	return types.Fail(types.NewFailure(types.KindValidation, cause, cause.Error()))
}
