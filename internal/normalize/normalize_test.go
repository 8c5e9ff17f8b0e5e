package normalize

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/wbstat/client/internal/types"
)

func TestNormalize_JSONSuccess(t *testing.T) {
	t.Parallel()
	r := Normalize(&types.RawOutcome{StatusCode: 200, Body: []byte(`{"a":1}`)}, nil)
	if !r.OK() {
		t.Fatalf("expected success, got %v", r.Err())
	}
	want := map[string]any{"a": json.Number("1")}
	if !reflect.DeepEqual(r.Payload(), want) {
		t.Fatalf("payload = %#v, want %#v", r.Payload(), want)
	}
}

func TestNormalize_ServerErrorWithEmptyObject(t *testing.T) {
	t.Parallel()
	done := time.Now()
	r := Normalize(&types.RawOutcome{
		StatusCode:  500,
		Body:        []byte(`{}`),
		Method:      http.MethodGet,
		URL:         "https://h/sales?key=REDACTED",
		IP:          "10.0.0.1",
		Headers:     http.Header{"X-Id": {"1"}},
		CompletedAt: done,
	}, nil)
	if r.OK() {
		t.Fatal("expected failure for 500")
	}
	f := r.Failure()
	if len(f.Errors) != 1 || !strings.Contains(f.Errors[0], "500") || !strings.Contains(f.Errors[0], "Internal Server Error") {
		t.Fatalf("unexpected synthesized errors: %v", f.Errors)
	}
	if f.Kind != types.KindRemote || f.StatusCode != 500 || f.IP != "10.0.0.1" || f.Method != "GET" ||
		f.URL == "" || f.Headers.Get("X-Id") != "1" || !f.Timestamp.Equal(done) {
		t.Fatalf("diagnostics not attached: %+v", f)
	}
}

func TestNormalize_PlainTextSuccess(t *testing.T) {
	t.Parallel()
	r := Normalize(&types.RawOutcome{StatusCode: 200, Body: []byte("plain text")}, nil)
	if !r.OK() || r.Payload() != "plain text" {
		t.Fatalf("expected raw string payload, got %#v (err=%v)", r.Payload(), r.Err())
	}
}

func TestNormalize_EmptyBodyBecomesEmptyObject(t *testing.T) {
	t.Parallel()
	for _, body := range []string{"", "   ", "null"} {
		r := Normalize(&types.RawOutcome{StatusCode: 200, Body: []byte(body)}, nil)
		m, ok := r.Payload().(map[string]any)
		if !r.OK() || !ok || len(m) != 0 {
			t.Fatalf("body %q: payload = %#v", body, r.Payload())
		}
	}
}

func TestNormalize_ErrorsFieldFailsEvenOn200(t *testing.T) {
	t.Parallel()
	r := Normalize(&types.RawOutcome{StatusCode: 200, Body: []byte(`{"errors":["bad date", {"code":7}]}`)}, nil)
	if r.OK() {
		t.Fatal("expected failure when payload carries errors")
	}
	got := r.Failure().Errors
	if len(got) != 2 || got[0] != "bad date" || got[1] != `{"code":7}` {
		t.Fatalf("unexpected errors: %v", got)
	}

	r = Normalize(&types.RawOutcome{StatusCode: 200, Body: []byte(`{"errors":[]}`)}, nil)
	if r.OK() || len(r.Failure().Errors) == 0 {
		t.Fatalf("empty errors list must still yield a message: %+v", r.Failure())
	}
}

func TestNormalize_TransportErrorAppended(t *testing.T) {
	t.Parallel()
	netErr := errors.New("dial tcp: connection refused")
	r := Normalize(&types.RawOutcome{Err: netErr}, nil)
	if r.OK() {
		t.Fatal("expected failure")
	}
	f := r.Failure()
	if f.Kind != types.KindTransport || !errors.Is(r.Err(), netErr) {
		t.Fatalf("unexpected failure: %+v", f)
	}
	if f.Errors[len(f.Errors)-1] != netErr.Error() {
		t.Fatalf("transport error not appended: %v", f.Errors)
	}
}

func TestNormalize_CustomSuccessSet(t *testing.T) {
	t.Parallel()
	out := &types.RawOutcome{StatusCode: 204}
	if Normalize(out, nil).OK() {
		t.Fatal("204 should fail with default success set")
	}
	if !Normalize(out, []int{200, 204}).OK() {
		t.Fatal("204 should succeed when configured")
	}
}

func TestNormalize_NilOutcome(t *testing.T) {
	t.Parallel()
	if r := Normalize(nil, nil); r.OK() || len(r.Failure().Errors) == 0 {
		t.Fatalf("nil outcome must fail with a message: %+v", r)
	}
}

func TestStatusDescription(t *testing.T) {
	t.Parallel()
	if got := StatusDescription(404); got != "HTTP 404: Not Found" {
		t.Fatalf("got %q", got)
	}
	if got := StatusDescription(599); got != "HTTP 599: Unknown Status" {
		t.Fatalf("got %q", got)
	}
	if got := StatusDescription(0); got == "" {
		t.Fatal("empty description for 0")
	}
}

func TestNormalize_NullErrorsFieldIsAbsent(t *testing.T) {
	t.Parallel()
	r := Normalize(&types.RawOutcome{StatusCode: 200, Body: []byte(`{"errors":null,"data":[1]}`)}, nil)
	if !r.OK() {
		t.Fatalf("null errors field treated as failure: %v", r.Err())
	}
	m, ok := r.Payload().(map[string]any)
	if !ok || m["data"] == nil {
		t.Fatalf("unexpected payload %#v", r.Payload())
	}

	r = Normalize(&types.RawOutcome{StatusCode: 500, Body: []byte(`{"errors":null}`)}, nil)
	if r.OK() || r.Failure().Errors[0] != "HTTP 500: Internal Server Error" {
		t.Fatalf("unexpected result for 500 with null errors: %+v", r.Failure())
	}
}

func TestNormalize_FailureTextHasOneStatusPrefix(t *testing.T) {
	t.Parallel()
	r := Normalize(&types.RawOutcome{StatusCode: 500, Body: []byte(`{}`)}, nil)
	if got := r.Err().Error(); got != "[remote] HTTP 500: Internal Server Error" {
		t.Fatalf("Error() = %q", got)
	}
	r = Normalize(&types.RawOutcome{StatusCode: 401, Body: []byte(`{"errors":["bad key"]}`)}, nil)
	if got := r.Err().Error(); got != "[remote] HTTP 401: bad key" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestNormalize_EmptyBodyDecodesToNothing(t *testing.T) {
	t.Parallel()
	for _, body := range [][]byte{nil, {}, []byte("  ")} {
		r := Normalize(&types.RawOutcome{StatusCode: 200, Body: body}, nil)
		var sales []types.Sale
		if err := r.Decode(&sales); err != nil {
			t.Fatalf("body %q: decode into slice: %v", body, err)
		}
		if len(sales) != 0 {
			t.Fatalf("body %q: unexpected rows %+v", body, sales)
		}
	}
}
