package client

// Functional options that configure the Client during construction. The
// runtime setters on Client cover the subset that may change afterwards.

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/wbstat/client/internal/types"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithBaseURL overrides the API root. The URL must be absolute.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base url %q must be absolute", raw)
		}
		c.baseURL = raw
		return nil
	}
}

// WithDateFrom sets the initial sticky dateFrom.
func WithDateFrom(t time.Time) Option {
	return func(c *Client) error {
		c.dateFrom = t
		return nil
	}
}

// WithVerbosity sets the initial trace level.
func WithVerbosity(v Verbosity) Option {
	return func(c *Client) error {
		if !v.Valid() {
			return errUnknownVerbosity(v)
		}
		c.tcfg.Verbosity = v
		return nil
	}
}

// WithThrottle sets the maximum requests per second. Zero disables throttling.
func WithThrottle(rps float64) Option {
	return func(c *Client) error {
		if rps < 0 {
			return fmt.Errorf("throttle must be >= 0")
		}
		c.rl.SetRate(rps)
		return nil
	}
}

// WithSuccessStatusCodes replaces the set of HTTP statuses treated as success.
func WithSuccessStatusCodes(codes ...int) Option {
	return func(c *Client) error {
		if len(codes) == 0 {
			return fmt.Errorf("success status codes must not be empty")
		}
		for _, code := range codes {
			if code < 100 || code > 599 {
				return fmt.Errorf("invalid status code %d", code)
			}
		}
		c.successCodes = append([]int(nil), codes...)
		return nil
	}
}

// WithConnectTimeout bounds dialing and the TLS handshake.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errPositive("connect timeout")
		}
		c.tcfg.ConnectTimeout = d
		return nil
	}
}

// WithTimeout bounds a whole exchange, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errPositive("timeout")
		}
		c.tcfg.Timeout = d
		return nil
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. Do not use it
// against the production API.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *Client) error {
		c.tcfg.InsecureSkipVerify = skip
		return nil
	}
}

// WithRoundTripper replaces the underlying HTTP transport. Useful for tests and
// proxies; the connect timeout and TLS options do not apply to it.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(c *Client) error {
		if rt == nil {
			return fmt.Errorf("round tripper must not be nil")
		}
		c.tcfg.RoundTripper = rt
		return nil
	}
}

// WithLogger sets the logger used for request traces. Traces are emitted at
// debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}

// WithMaxRateLimitRetries bounds how many times a 429 response is retried.
// Zero, the default, retries until the context is done.
func WithMaxRateLimitRetries(n int) Option {
	return func(c *Client) error {
		if n < 0 {
			return fmt.Errorf("max rate limit retries must be >= 0")
		}
		c.maxRLRetries = n
		return nil
	}
}

// WithRateLimitBackoff sets the pause before re-sending after a 429.
func WithRateLimitBackoff(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errPositive("rate limit backoff")
		}
		c.rlBackoff = d
		return nil
	}
}

// WithCircuitBreaker stops sending requests for openTimeout after
// failureThreshold consecutive recoverable failures (5xx, timeouts, network
// errors). Rejected calls fail with ErrCircuitOpen without touching the network.
func WithCircuitBreaker(failureThreshold uint32, openTimeout time.Duration) Option {
	return func(c *Client) error {
		if failureThreshold == 0 {
			return errPositive("circuit breaker failure threshold")
		}
		if openTimeout <= 0 {
			return errPositive("circuit breaker open timeout")
		}
		c.breaker = gobreaker.NewCircuitBreaker[*types.RawOutcome](gobreaker.Settings{
			Name:        "wbstat",
			MaxRequests: 1,
			Timeout:     openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failureThreshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				circuitBreakerState.WithLabelValues(name).Set(float64(to))
				c.log.Warn().Str("breaker", name).Str("from", from.String()).
					Str("to", to.String()).Msg("circuit breaker state changed")
			},
		})
		return nil
	}
}

// WithAuthorizationHeader also sends the token in the Authorization header.
// The key query/form parameter is always sent.
func WithAuthorizationHeader(enabled bool) Option {
	return func(c *Client) error {
		c.authHeader = enabled
		return nil
	}
}
