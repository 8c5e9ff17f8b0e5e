package transport

import (
	"net/http"
	"net/http/httputil"

	"github.com/wbstat/client/internal/types"
)

// debugTransport logs request and response headers when the trace level is
// headers or above, and the raw response dump at content level.
//
// Authorization values and secret query parameters are masked. Response
// bodies can hold commercial data; keep content-level tracing out of
// production logs.
type debugTransport struct {
	base http.RoundTripper
	t    *Transport
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if dt.t.enabled(types.VerbosityHeaders) {
		dt.t.log.Debug().
			Str("method", req.Method).
			Str("url", dt.t.RedactURL(req.URL.String())).
			Interface("headers", maskHeaders(req.Header)).
			Msg("===> REQUEST HEADERS")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		if dt.t.enabled(types.VerbosityHeaders) {
			dt.t.log.Error().Err(err).Str("method", req.Method).Str("url", dt.t.RedactURL(req.URL.String())).Msg("HTTP request failed")
		}
		return nil, err
	}

	if dt.t.enabled(types.VerbosityHeaders) {
		dt.t.log.Debug().
			Int("status_code", resp.StatusCode).
			Interface("headers", resp.Header).
			Msg("<=== RESPONSE HEADERS")
	}
	if dt.t.enabled(types.VerbosityContent) {
		if respDump, err := httputil.DumpResponse(resp, false); err == nil {
			dt.t.log.Debug().Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
		}
	}
	return resp, nil
}

func maskHeaders(h http.Header) http.Header {
	if h.Get("Authorization") == "" {
		return h
	}
	masked := h.Clone()
	masked.Set("Authorization", redacted)
	return masked
}
