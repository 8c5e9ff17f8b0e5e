package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	clienterrors "github.com/wbstat/client/internal/errors"
	"github.com/wbstat/client/internal/normalize"
	"github.com/wbstat/client/internal/transport"
	"github.com/wbstat/client/internal/types"
)

// Request describes one call. The endpoint methods build it; Do accepts it
// directly for paths without a dedicated method.
type Request struct {
	Path   string // relative to the base URL, e.g. "sales"
	Method string // GET when empty
	Params url.Values

	// DateFrom overrides the sticky default for this call only.
	DateFrom time.Time
	// DateTo defaults to the time of the call.
	DateTo time.Time
	// RequireDateFrom fails the call before dispatch when neither DateFrom nor
	// the sticky default is set.
	RequireDateFrom bool
}

// Do runs req through the request pipeline: parameter defaulting, throttle,
// exchange, 429 retries and normalisation. It never returns a Go error; every
// outcome is a Result.
func (c *Client) Do(ctx context.Context, req Request) Result {
	endpoint := strings.Trim(req.Path, "/")
	res := c.do(ctx, endpoint, req)
	requestsTotal.WithLabelValues(endpoint, outcomeLabel(res)).Inc()
	return res
}

func (c *Client) do(ctx context.Context, endpoint string, req Request) Result {
	if endpoint == "" {
		return validationFailure(ErrInvalidRequest)
	}
	s := c.snapshot()

	params := make(url.Values, len(req.Params)+3)
	for k, vs := range req.Params {
		params[k] = append([]string(nil), vs...)
	}

	from := req.DateFrom
	if from.IsZero() {
		from = s.dateFrom
	}
	switch {
	case !from.IsZero():
		params.Set("dateFrom", FormatDate(from))
	case req.RequireDateFrom:
		return validationFailure(ErrDateFromMissing)
	}
	to := req.DateTo
	if to.IsZero() {
		to = c.now()
	}
	params.Set("dateTo", FormatDate(to))
	params.Set(tokenParam, c.token)

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}
	ex := transport.Exchange{
		Seq:       c.nextSeq(),
		RequestID: uuid.NewString(),
		Method:    method,
		URL:       strings.TrimRight(c.baseURL, "/") + "/" + endpoint,
		Params:    params,
		Header:    http.Header{},
	}
	ex.Header.Set("X-Request-Id", ex.RequestID)
	if s.authHeader {
		ex.Header.Set("Authorization", c.token)
	}

	out := c.dispatch(ctx, s, endpoint, ex)
	if out.Err == nil {
		exchangeDurationSeconds.WithLabelValues(endpoint).Observe(out.Elapsed.Seconds())
	}
	return normalize.Normalize(out, s.successCodes)
}

// dispatch runs the exchange through the circuit breaker when one is
// configured. Only recoverable failures count against the breaker.
func (c *Client) dispatch(ctx context.Context, s settings, endpoint string, ex transport.Exchange) *types.RawOutcome {
	if s.breaker == nil {
		return c.exchange(ctx, s, endpoint, ex)
	}
	out, err := s.breaker.Execute(func() (*types.RawOutcome, error) {
		out := c.exchange(ctx, s, endpoint, ex)
		if ctx.Err() != nil {
			return out, nil
		}
		if ce := clienterrors.ClassifyOutcome(out); ce != nil && clienterrors.IsRecoverable(ce) {
			return out, ce
		}
		return out, nil
	})
	if out == nil {
		return c.unsent(s, ex, fmt.Errorf("circuit breaker: %w", err))
	}
	return out
}

// exchange waits for the throttle once, then sends ex, re-sending after a
// fixed pause for as long as the service answers 429. Only one exchange runs
// at a time per client.
func (c *Client) exchange(ctx context.Context, s settings, endpoint string, ex transport.Exchange) *types.RawOutcome {
	c.exchangeMu.Lock()
	defer c.exchangeMu.Unlock()

	traced := s.tr.Verbosity().Enabled(VerbosityURL)

	waited, err := c.limiter.Wait(ctx)
	throttleWaitSeconds.Observe(waited.Seconds())
	if waited > 0 && traced {
		c.log.Debug().Uint64("seq", ex.Seq).Str("request_id", ex.RequestID).
			Dur("delay", waited).Msg("+++++ THROTTLE REQUEST")
	}
	if err != nil {
		return c.unsent(s, ex, err)
	}

	var b backoff.BackOff = backoff.NewConstantBackOff(s.rlBackoff)
	if s.maxRLRetries > 0 {
		b = backoff.WithMaxRetries(b, uint64(s.maxRLRetries))
	}
	b = backoff.WithContext(b, ctx)

	for attempt := 1; ; attempt++ {
		out := s.tr.Send(ctx, ex)
		out.Attempts = attempt
		exchangesTotal.WithLabelValues(endpoint, clienterrors.Label(out)).Inc()
		if out.Err != nil || out.StatusCode != http.StatusTooManyRequests {
			return out
		}

		pause := b.NextBackOff()
		if pause == backoff.Stop {
			if ctx.Err() != nil {
				out.Err = fmt.Errorf("rate limit retry abandoned: %w", ctx.Err())
			}
			return out
		}
		rateLimitedTotal.WithLabelValues(endpoint).Inc()
		if traced {
			c.log.Debug().Uint64("seq", ex.Seq).Str("request_id", ex.RequestID).
				Int("attempt", attempt).Dur("pause", pause).Msg("TOO MANY REQUESTS")
		}

		timer := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			timer.Stop()
			out.Err = fmt.Errorf("rate limit retry abandoned: %w", ctx.Err())
			return out
		case <-timer.C:
		}
		c.limiter.Record()
	}
}

// unsent builds the outcome of an exchange that never reached the network.
func (c *Client) unsent(s settings, ex transport.Exchange, err error) *types.RawOutcome {
	return &types.RawOutcome{
		Seq:         ex.Seq,
		RequestID:   ex.RequestID,
		Method:      ex.Method,
		URL:         s.tr.DisplayURL(ex.Method, ex.URL, ex.Params),
		Err:         err,
		CompletedAt: c.now(),
	}
}

func outcomeLabel(res Result) string {
	if f := res.Failure(); f != nil {
		return f.Kind.String()
	}
	return "ok"
}
