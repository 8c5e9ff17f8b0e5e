package types

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// FailureKind tells where a Failure originated.
type FailureKind int

const (
	// KindRemote is a non-success status or an "errors" field in the payload.
	KindRemote FailureKind = iota
	// KindTransport is a failed exchange (DNS, TLS, connection, timeout).
	KindTransport
	// KindValidation is a rejected argument; no exchange was attempted.
	KindValidation
)

// String returns a human-readable representation of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Failure is the error side of a Result. Errors always holds at least one
// message; the remaining fields are diagnostics and are zero for validation
// failures.
type Failure struct {
	Kind       FailureKind
	Errors     []string
	StatusCode int
	Headers    http.Header
	IP         string
	Method     string
	URL        string
	Timestamp  time.Time
	// Payload is the decoded error body, if the service sent one.
	Payload any

	cause error
}

// NewFailure builds a Failure of the given kind. A nil or empty msgs list is
// replaced by the cause's text, or by a generic message.
func NewFailure(kind FailureKind, cause error, msgs ...string) *Failure {
	f := &Failure{Kind: kind, cause: cause}
	for _, m := range msgs {
		if m = strings.TrimSpace(m); m != "" {
			f.Errors = append(f.Errors, m)
		}
	}
	f.ensureMessage()
	return f
}

func (f *Failure) ensureMessage() {
	if len(f.Errors) > 0 {
		return
	}
	if f.cause != nil {
		f.Errors = []string{f.cause.Error()}
		return
	}
	f.Errors = []string{"request failed"}
}

// Error implements the error interface.
func (f *Failure) Error() string {
	msg := strings.Join(f.Errors, "; ")
	if f.StatusCode > 0 {
		// Synthesised status messages already carry the code.
		if prefix := fmt.Sprintf("HTTP %d: ", f.StatusCode); !strings.HasPrefix(msg, prefix) {
			msg = prefix + msg
		}
	}
	return fmt.Sprintf("[%s] %s", f.Kind, msg)
}

// Unwrap returns the underlying error, if any, so errors.Is works against the
// package sentinels.
func (f *Failure) Unwrap() error { return f.cause }

// Result is returned by every API call: either a success payload or a Failure,
// never both. Callers check OK before reading the payload.
type Result struct {
	payload any
	raw     []byte
	failure *Failure
}

// Success wraps a decoded payload. raw is the body it was decoded from and is
// used by Decode; nil means there is no body and Decode re-encodes payload,
// while a non-nil blank raw is an empty response.
func Success(payload any, raw []byte) Result {
	return Result{payload: payload, raw: raw}
}

// Fail wraps f. A nil f becomes a generic failure so the Result stays tagged.
func Fail(f *Failure) Result {
	if f == nil {
		f = NewFailure(KindRemote, nil)
	}
	f.ensureMessage()
	return Result{failure: f}
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.failure == nil }

// Payload returns the decoded success payload: a map or slice for JSON bodies,
// a string for anything else. It is nil on failure.
func (r Result) Payload() any {
	if r.failure != nil {
		return nil
	}
	return r.payload
}

// Failure returns the failure, or nil on success.
func (r Result) Failure() *Failure { return r.failure }

// Err returns the failure as an error, or nil on success.
func (r Result) Err() error {
	if r.failure == nil {
		return nil
	}
	return r.failure
}

// ErrNotSuccess is returned by Decode on a failed Result.
var ErrNotSuccess = errors.New("result is not a success")

// Decode unmarshals the success payload into v, e.g. a *[]Sale. An empty
// response body decodes to nothing and leaves v untouched.
func (r Result) Decode(v any) error {
	if r.failure != nil {
		return fmt.Errorf("decode: %w", ErrNotSuccess)
	}
	raw := r.raw
	if raw != nil && len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if len(raw) == 0 {
		b, err := json.Marshal(r.payload)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		raw = b
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
