package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/wbstat/client/internal/types"
)

func TestClassifyHTTPError_Categories(t *testing.T) {
	t.Parallel()
	cases := []struct {
		code int
		want ErrorCategory
	}{
		{400, Irrecoverable}, {401, Irrecoverable}, {404, Irrecoverable},
		{408, Recoverable}, {429, Recoverable}, {500, Recoverable}, {503, Recoverable}, {0, Recoverable},
	}
	for _, c := range cases {
		if got := ClassifyHTTPError(c.code, "", nil).Category; got != c.want {
			t.Fatalf("status %d: got %v want %v", c.code, got, c.want)
		}
	}
}

func TestClassifyOutcome(t *testing.T) {
	t.Parallel()
	if ce := ClassifyOutcome(&types.RawOutcome{StatusCode: 200}); ce != nil {
		t.Fatalf("200 classified as failure: %v", ce)
	}
	if ce := ClassifyOutcome(nil); ce != nil {
		t.Fatalf("nil outcome classified as failure: %v", ce)
	}

	netErr := errors.New("connection refused")
	ce := ClassifyOutcome(&types.RawOutcome{Method: "GET", URL: "http://x", Err: netErr})
	if ce == nil || !IsRecoverable(ce) || !errors.Is(ce, netErr) {
		t.Fatalf("network failure not recoverable/unwrappable: %v", ce)
	}

	ce = ClassifyOutcome(&types.RawOutcome{StatusCode: 401, Body: []byte(`{"errors":["bad key"]}`)})
	if ce == nil || !IsIrrecoverable(ce) || ce.Body == "" {
		t.Fatalf("401 not irrecoverable: %v", ce)
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()
	if got := Label(&types.RawOutcome{StatusCode: 200}); got != "ok" {
		t.Fatalf("got %q", got)
	}
	if got := Label(&types.RawOutcome{StatusCode: 502}); got != "recoverable" {
		t.Fatalf("got %q", got)
	}
	if got := Label(&types.RawOutcome{StatusCode: 403}); got != "irrecoverable" {
		t.Fatalf("got %q", got)
	}
}

func TestClassifiedError_String(t *testing.T) {
	t.Parallel()
	if Recoverable.String() != "Recoverable" || Irrecoverable.String() != "Irrecoverable" || ErrorCategory(9).String() != "Unknown(9)" {
		t.Fatal("unexpected category strings")
	}
	e := NewHTTPError(500, "", "GET /sales")
	if e.Error() == "" || e.StatusCode != 500 {
		t.Fatalf("unexpected error: %v", e)
	}
}

func TestCategoryOf_Wrapped(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("dispatch: %w", NewHTTPError(503, "", "GET /stocks"))
	if c, ok := CategoryOf(wrapped); !ok || c != Recoverable {
		t.Fatalf("CategoryOf = %v, %v", c, ok)
	}
	if _, ok := CategoryOf(errors.New("plain")); ok {
		t.Fatal("plain error classified")
	}
	if IsRecoverable(nil) || IsIrrecoverable(nil) {
		t.Fatal("nil error classified")
	}
}
