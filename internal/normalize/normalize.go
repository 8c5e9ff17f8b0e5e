// Package normalize turns a RawOutcome into the tagged Result handed to
// callers.
package normalize

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"

	"github.com/goccy/go-json"

	"github.com/wbstat/client/internal/types"
)

// DefaultSuccessCodes is the status set treated as success when none is
// configured.
var DefaultSuccessCodes = []int{http.StatusOK}

// errorsField is the payload key the service uses to report failures.
const errorsField = "errors"

// Normalize converts out into a Result. A status outside success (or
// DefaultSuccessCodes when success is empty), an "errors" field in the
// payload, or a transport failure produce a Failure; anything else is a
// Success carrying the parsed body.
func Normalize(out *types.RawOutcome, success []int) types.Result {
	if out == nil {
		return types.Fail(types.NewFailure(types.KindTransport, nil, "no exchange was performed"))
	}
	if len(success) == 0 {
		success = DefaultSuccessCodes
	}

	payload := Parse(out.Body)
	remoteErrs, hasErrors := errorsOf(payload)

	if out.Err == nil && !hasErrors && slices.Contains(success, out.StatusCode) {
		raw := out.Body
		if raw == nil {
			raw = []byte{}
		}
		return types.Success(payload, raw)
	}

	kind := types.KindRemote
	if out.Err != nil {
		kind = types.KindTransport
	}
	msgs := remoteErrs
	if len(msgs) == 0 {
		msgs = []string{StatusDescription(out.StatusCode)}
	}
	if out.Err != nil {
		msgs = append(msgs, out.Err.Error())
	}

	f := types.NewFailure(kind, out.Err, msgs...)
	f.StatusCode = out.StatusCode
	f.Headers = out.Headers
	f.IP = out.IP
	f.Method = out.Method
	f.URL = out.URL
	f.Timestamp = out.CompletedAt
	f.Payload = payload
	return types.Fail(f)
}

// Parse decodes body as JSON, keeping numbers as json.Number so large ids
// survive. An empty or null body becomes an empty object; a body that is not
// JSON is returned as a string.
func Parse(body []byte) any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return map[string]any{}
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return string(body)
	}
	if v == nil {
		return map[string]any{}
	}
	return v
}

// errorsOf extracts the "errors" field of an object payload. The boolean
// reports whether the field was present and not null.
func errorsOf(payload any) ([]string, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	raw, ok := obj[errorsField]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case nil:
		return nil, false
	case string:
		return []string{v}, true
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, stringify(e))
		}
		return out, true
	default:
		return []string{stringify(v)}, true
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// StatusDescription renders a status code as a human-readable message.
func StatusDescription(code int) string {
	if code == 0 {
		return "no HTTP response received"
	}
	text := http.StatusText(code)
	if text == "" {
		text = "Unknown Status"
	}
	return fmt.Sprintf("HTTP %d: %s", code, text)
}
