// Package client is a Go SDK for the supplier statistics API: incomes, stocks,
// orders, sales, the sales-detail report and the excise goods report.
//
// Every call returns a Result. Transport failures and remote errors are folded
// into the Result rather than returned as Go errors; only construction can
// fail with an error.
//
//	c, err := client.New(token, client.WithThrottle(2))
//	if err != nil { ... }
//	res := c.Sales(ctx, from, 0)
//	if !res.OK() {
//		log.Println(res.Err())
//	}
package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/wbstat/client/internal/normalize"
	"github.com/wbstat/client/internal/throttle"
	"github.com/wbstat/client/internal/transport"
	"github.com/wbstat/client/internal/types"
)

// Defaults mirror the service's published limits.
const (
	DefaultBaseURL          = "https://suppliers-stats.wildberries.ru/api/v1/supplier"
	DefaultThrottle         = 3.0
	DefaultConnectTimeout   = transport.DefaultConnectTimeout
	DefaultTimeout          = transport.DefaultTimeout
	DefaultRateLimitBackoff = 500 * time.Millisecond
)

// tokenParam is the parameter that carries the token on every request.
const tokenParam = "key"

const userAgent = "wbstat-go-client/1"

// throttler is the part of throttle.Limiter the request pipeline needs.
type throttler interface {
	Wait(ctx context.Context) (time.Duration, error)
	Record()
}

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the statistics API. It is safe for concurrent use; calls
// are serialised so that the throttle holds across goroutines.
type Client struct {
	token   string // immutable after New
	baseURL string
	log     zerolog.Logger
	now     func() time.Time
	rl      *throttle.Limiter
	limiter throttler // rl, or a stand-in installed by tests

	mu           sync.Mutex // guards everything below up to exchangeMu
	dateFrom     time.Time  // sticky default, zero when unset
	seq          uint64
	successCodes []int
	tcfg         transport.Config
	tr           *transport.Transport
	rlBackoff    time.Duration
	maxRLRetries int
	breaker      *gobreaker.CircuitBreaker[*types.RawOutcome]
	authHeader   bool

	exchangeMu sync.Mutex // one exchange (with its 429 retries) at a time
}

// New constructs a Client for token. An empty token fails with
// ErrTokenMissing; an invalid option fails with ErrInvalidOption.
func New(token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrTokenMissing
	}

	c := &Client{
		token:        token,
		baseURL:      DefaultBaseURL,
		log:          log.Logger,
		now:          time.Now,
		successCodes: append([]int(nil), normalize.DefaultSuccessCodes...),
		tcfg: transport.Config{
			ConnectTimeout: DefaultConnectTimeout,
			Timeout:        DefaultTimeout,
			SecretParams:   []string{tokenParam},
			UserAgent:      userAgent,
		},
		rl:        throttle.New(DefaultThrottle),
		rlBackoff: DefaultRateLimitBackoff,
	}

	// Auto-enable tracing via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, invalidOption(err)
		}
	}

	c.limiter = c.rl
	c.tcfg.Logger = c.log
	c.tr = transport.New(c.tcfg)
	return c, nil
}

// Token returns the token the client was built with.
func (c *Client) Token() string { return c.token }

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// --------------------------------------------------------------------
// Sticky date
// --------------------------------------------------------------------

// SetDateFrom sets the default dateFrom used by calls that do not pass one.
// Calls already in progress keep the value they started with.
func (c *Client) SetDateFrom(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dateFrom = t
}

// ClearDateFrom removes the sticky default.
func (c *Client) ClearDateFrom() { c.SetDateFrom(time.Time{}) }

// DateFrom returns the sticky default and whether one is set.
func (c *Client) DateFrom() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dateFrom, !c.dateFrom.IsZero()
}

// --------------------------------------------------------------------
// Runtime settings
// --------------------------------------------------------------------

// SetVerbosity changes how much of each exchange is traced. An undefined
// level fails with ErrInvalidOption and leaves the current one in place.
func (c *Client) SetVerbosity(v Verbosity) error {
	if !v.Valid() {
		return invalidOption(errUnknownVerbosity(v))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tcfg.Verbosity = v
	c.tr.SetVerbosity(v)
	return nil
}

// Verbosity returns the current trace level.
func (c *Client) Verbosity() Verbosity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tr.Verbosity()
}

// SetThrottle sets the maximum requests per second; 0 disables throttling.
func (c *Client) SetThrottle(rps float64) { c.rl.SetRate(rps) }

// Throttle returns the maximum requests per second, 0 when disabled.
func (c *Client) Throttle() float64 { return c.rl.Rate() }

// SetSuccessStatusCodes replaces the set of status codes treated as success.
// An empty set restores the default {200}.
func (c *Client) SetSuccessStatusCodes(codes ...int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(codes) == 0 {
		codes = normalize.DefaultSuccessCodes
	}
	c.successCodes = append([]int(nil), codes...)
}

// SuccessStatusCodes returns a copy of the success status set.
func (c *Client) SuccessStatusCodes() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.successCodes...)
}

// SetConnectTimeout changes the dial/TLS handshake timeout for later calls.
func (c *Client) SetConnectTimeout(d time.Duration) error {
	if d <= 0 {
		return invalidOption(errPositive("connect timeout"))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tcfg.ConnectTimeout = d
	c.tr = transport.New(c.tcfg)
	return nil
}

// SetTimeout changes the total per-exchange timeout for later calls.
func (c *Client) SetTimeout(d time.Duration) error {
	if d <= 0 {
		return invalidOption(errPositive("timeout"))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tcfg.Timeout = d
	c.tr = transport.New(c.tcfg)
	return nil
}

// settings is the per-call snapshot of mutable client state.
type settings struct {
	dateFrom     time.Time
	successCodes []int
	tr           *transport.Transport
	rlBackoff    time.Duration
	maxRLRetries int
	breaker      *gobreaker.CircuitBreaker[*types.RawOutcome]
	authHeader   bool
}

func (c *Client) snapshot() settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return settings{
		dateFrom:     c.dateFrom,
		successCodes: c.successCodes,
		tr:           c.tr,
		rlBackoff:    c.rlBackoff,
		maxRLRetries: c.maxRLRetries,
		breaker:      c.breaker,
		authHeader:   c.authHeader,
	}
}

func (c *Client) nextSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}
