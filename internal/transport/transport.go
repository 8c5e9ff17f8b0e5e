// Package transport performs a single HTTP exchange and captures everything
// about it (status, headers, body, timing, remote IP, failure) in a
// types.RawOutcome. Non-2xx responses are ordinary outcomes; only a failed
// exchange sets RawOutcome.Err.
package transport

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/wbstat/client/internal/types"
)

// Defaults match the service's documented limits for large reports.
const (
	DefaultConnectTimeout = 30 * time.Second
	DefaultTimeout        = 300 * time.Second
)

// redacted replaces the token in anything that is logged or reported.
const redacted = "REDACTED"

// Config configures a Transport.
type Config struct {
	ConnectTimeout time.Duration
	Timeout        time.Duration
	// InsecureSkipVerify disables TLS certificate verification. Opt-in only.
	InsecureSkipVerify bool
	// RoundTripper replaces the default dialer-based transport. ConnectTimeout
	// and InsecureSkipVerify do not apply to it.
	RoundTripper http.RoundTripper
	// SecretParams are query/form parameters whose values are redacted in
	// traces and in RawOutcome.URL.
	SecretParams []string
	UserAgent    string
	Logger       zerolog.Logger
	Verbosity    types.Verbosity
}

// Exchange is one request as the transport sees it.
type Exchange struct {
	Seq       uint64
	RequestID string
	Method    string
	URL       string // base URL plus path, without query
	Params    url.Values
	Header    http.Header
}

// Transport sends Exchanges. It is safe for concurrent use, although the
// client only ever runs one exchange at a time.
type Transport struct {
	rc        *resty.Client
	log       zerolog.Logger
	secrets   map[string]struct{}
	verbosity atomic.Int32
}

// New builds a Transport from cfg, applying defaults for zero timeouts.
func New(cfg Config) *Transport {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	t := &Transport{
		log:     cfg.Logger,
		secrets: make(map[string]struct{}, len(cfg.SecretParams)),
	}
	for _, p := range cfg.SecretParams {
		t.secrets[p] = struct{}{}
	}
	t.verbosity.Store(int32(cfg.Verbosity))

	base := cfg.RoundTripper
	if base == nil {
		base = newHTTPTransport(cfg.ConnectTimeout, cfg.InsecureSkipVerify)
	}

	t.rc = resty.New().
		SetTransport(&debugTransport{base: base, t: t}).
		SetTimeout(cfg.Timeout).
		SetLogger(restyLogger{log: cfg.Logger}).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		t.rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	return t
}

func newHTTPTransport(connectTimeout time.Duration, insecure bool) *http.Transport {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	tr.TLSHandshakeTimeout = connectTimeout
	if insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-out
	}
	return tr
}

// SetVerbosity changes the trace level for subsequent exchanges.
func (t *Transport) SetVerbosity(v types.Verbosity) { t.verbosity.Store(int32(v)) }

// Verbosity returns the current trace level.
func (t *Transport) Verbosity() types.Verbosity { return types.Verbosity(t.verbosity.Load()) }

func (t *Transport) enabled(level types.Verbosity) bool { return t.Verbosity().Enabled(level) }

// Send performs ex and never returns nil. Read verbs carry Params in the query
// string, write verbs send them form-encoded.
func (t *Transport) Send(ctx context.Context, ex Exchange) *types.RawOutcome {
	method := strings.ToUpper(ex.Method)
	if method == "" {
		method = http.MethodGet
	}
	out := &types.RawOutcome{
		Seq:       ex.Seq,
		RequestID: ex.RequestID,
		Method:    method,
		URL:       t.DisplayURL(method, ex.URL, ex.Params),
	}

	req := t.rc.R().SetContext(ctx).EnableTrace()
	for k, vs := range ex.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if hasBody(method) {
		req.SetFormDataFromValues(ex.Params)
	} else if len(ex.Params) > 0 {
		req.SetQueryParamsFromValues(ex.Params)
	}

	if t.enabled(types.VerbosityURL) {
		t.log.Debug().Uint64("seq", ex.Seq).Str("request_id", ex.RequestID).
			Str("method", method).Str("url", out.URL).Msg("===> REQUEST")
	}
	if t.enabled(types.VerbosityContent) {
		t.log.Debug().Uint64("seq", ex.Seq).Str("request_id", ex.RequestID).
			Str("params", t.redact(ex.Params).Encode()).Msg("===> REQUEST PARAMS")
	}

	start := time.Now()
	resp, err := req.Execute(method, ex.URL)
	out.CompletedAt = time.Now()
	out.Elapsed = out.CompletedAt.Sub(start)
	out.Err = err

	if resp != nil {
		out.StatusCode = resp.StatusCode()
		out.Headers = resp.Header()
		out.Body = resp.Body()
		if resp.Request != nil {
			if ti := resp.Request.TraceInfo(); ti.RemoteAddr != nil {
				out.IP = hostOf(ti.RemoteAddr)
			}
		}
	}

	t.traceResponse(out)
	return out
}

func (t *Transport) traceResponse(out *types.RawOutcome) {
	if out.Err != nil && t.enabled(types.VerbosityURL) {
		t.log.Debug().Err(out.Err).Uint64("seq", out.Seq).Str("request_id", out.RequestID).
			Str("url", out.URL).Dur("elapsed", out.Elapsed).Msg("<=== REQUEST FAILED")
		return
	}
	if t.enabled(types.VerbosityURL) {
		t.log.Debug().Uint64("seq", out.Seq).Str("request_id", out.RequestID).
			Int("status_code", out.StatusCode).Str("ip", out.IP).
			Dur("elapsed", out.Elapsed).Msg("<=== RESPONSE")
	}
	if t.enabled(types.VerbosityContent) {
		t.log.Debug().Uint64("seq", out.Seq).Str("request_id", out.RequestID).
			Str("body", string(out.Body)).Msg("<=== RESPONSE RESULT")
	}
}

// DisplayURL renders the request URL as it goes on the wire, minus secrets.
func (t *Transport) DisplayURL(method, base string, params url.Values) string {
	if hasBody(method) || len(params) == 0 {
		return base
	}
	return base + "?" + t.redact(params).Encode()
}

func (t *Transport) redact(params url.Values) url.Values {
	if len(t.secrets) == 0 {
		return params
	}
	out := make(url.Values, len(params))
	for k, vs := range params {
		if _, secret := t.secrets[k]; secret {
			out[k] = []string{redacted}
			continue
		}
		out[k] = vs
	}
	return out
}

// RedactURL hides secret query parameters in a URL string.
func (t *Transport) RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}
	u.RawQuery = t.redact(u.Query()).Encode()
	return u.String()
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func hostOf(addr net.Addr) string {
	s := addr.String()
	if host, _, err := net.SplitHostPort(s); err == nil {
		return host
	}
	return s
}

// restyLogger routes resty's own diagnostics into zerolog.
type restyLogger struct{ log zerolog.Logger }

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
