package types

import (
	"errors"
	"strings"
	"testing"
)

func TestResult_SuccessAndFailureAreExclusive(t *testing.T) {
	t.Parallel()
	ok := Success(map[string]any{"a": 1}, nil)
	if !ok.OK() || ok.Failure() != nil || ok.Err() != nil {
		t.Fatalf("success result reports failure: %+v", ok)
	}

	bad := Fail(NewFailure(KindRemote, nil, "boom"))
	if bad.OK() || bad.Payload() != nil || bad.Err() == nil {
		t.Fatalf("failure result reports success: %+v", bad)
	}
}

func TestFail_AlwaysCarriesAMessage(t *testing.T) {
	t.Parallel()
	cases := []*Failure{
		nil,
		NewFailure(KindRemote, nil),
		NewFailure(KindTransport, errors.New("dial tcp: refused"), "   "),
		{Kind: KindRemote},
	}
	for i, f := range cases {
		r := Fail(f)
		if got := r.Failure(); got == nil || len(got.Errors) == 0 {
			t.Fatalf("case %d: expected at least one error message, got %+v", i, got)
		}
	}
	if msg := Fail(NewFailure(KindTransport, errors.New("dial tcp: refused"))).Failure().Errors[0]; msg != "dial tcp: refused" {
		t.Fatalf("cause text not used as message: %q", msg)
	}
}

func TestFailure_UnwrapsCause(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("sentinel")
	r := Fail(NewFailure(KindValidation, sentinel, "bad input"))
	if !errors.Is(r.Err(), sentinel) {
		t.Fatalf("expected errors.Is to reach the cause, got %v", r.Err())
	}
	if !strings.Contains(r.Err().Error(), "validation") {
		t.Fatalf("kind missing from error text: %q", r.Err().Error())
	}
}

func TestResult_Decode(t *testing.T) {
	t.Parallel()
	raw := []byte(`[{"saleID":"S1","nmId":12345678901,"forPay":10.5}]`)
	var sales []Sale
	if err := Success([]any{}, raw).Decode(&sales); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sales) != 1 || sales[0].SaleID != "S1" || sales[0].NmID != 12345678901 || sales[0].ForPay != 10.5 {
		t.Fatalf("unexpected decode: %+v", sales)
	}

	var m map[string]any
	if err := Success(map[string]any{"k": "v"}, nil).Decode(&m); err != nil || m["k"] != "v" {
		t.Fatalf("decode from payload: %v %+v", err, m)
	}

	if err := Fail(nil).Decode(&m); !errors.Is(err, ErrNotSuccess) {
		t.Fatalf("expected ErrNotSuccess, got %v", err)
	}
}

func TestParseVerbosity(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want Verbosity
		ok   bool
	}{
		{"", VerbosityNone, true}, {"none", VerbosityNone, true}, {"URL", VerbosityURL, true},
		{"2", VerbosityHeaders, true}, {"content", VerbosityContent, true}, {"full", VerbosityContent, true},
		{"loud", VerbosityNone, false},
	}
	for _, c := range cases {
		got, err := ParseVerbosity(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Fatalf("ParseVerbosity(%q) = %v, %v; want %v", c.in, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Fatalf("expected error for %q", c.in)
		}
	}
	if VerbosityURL.Enabled(VerbosityHeaders) || !VerbosityContent.Enabled(VerbosityURL) || VerbosityContent.Enabled(VerbosityNone) {
		t.Fatalf("Enabled ordering broken")
	}
}

func TestFailure_ErrorDoesNotRepeatStatus(t *testing.T) {
	t.Parallel()
	f := NewFailure(KindRemote, nil, "HTTP 404: Not Found")
	f.StatusCode = 404
	if got := f.Error(); got != "[remote] HTTP 404: Not Found" {
		t.Fatalf("Error() = %q", got)
	}
	f = NewFailure(KindRemote, nil, "period too long")
	f.StatusCode = 400
	if got := f.Error(); got != "[remote] HTTP 400: period too long" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestVerbosity_Valid(t *testing.T) {
	t.Parallel()
	for _, v := range []Verbosity{VerbosityNone, VerbosityURL, VerbosityHeaders, VerbosityContent} {
		if !v.Valid() {
			t.Fatalf("%v reported invalid", v)
		}
	}
	if Verbosity(-1).Valid() || Verbosity(4).Valid() {
		t.Fatal("out-of-range verbosity reported valid")
	}
}
