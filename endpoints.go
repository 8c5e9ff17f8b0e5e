package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// Endpoint paths relative to the base URL.
const (
	PathIncomes              = "incomes"
	PathStocks               = "stocks"
	PathOrders               = "orders"
	PathSales                = "sales"
	PathReportDetailByPeriod = "reportDetailByPeriod"
	PathExciseGoods          = "exciseGoods"
)

// DefaultReportLimit is the page size of ReportDetailByPeriod when none is given.
const DefaultReportLimit = 100

// Incomes returns supplies received since dateFrom. A zero dateFrom uses the
// sticky default.
func (c *Client) Incomes(ctx context.Context, dateFrom time.Time) Result {
	return c.Do(ctx, Request{Path: PathIncomes, DateFrom: dateFrom, RequireDateFrom: true})
}

// Stocks returns warehouse stock changed since dateFrom.
func (c *Client) Stocks(ctx context.Context, dateFrom time.Time) Result {
	return c.Do(ctx, Request{Path: PathStocks, DateFrom: dateFrom, RequireDateFrom: true})
}

// Orders returns orders since dateFrom. With flag 1 only orders of that exact
// day are returned; with 0 everything changed since dateFrom.
func (c *Client) Orders(ctx context.Context, dateFrom time.Time, flag int) Result {
	return c.flagged(ctx, PathOrders, dateFrom, flag)
}

// Sales returns sales and returns since dateFrom; flag as in Orders.
func (c *Client) Sales(ctx context.Context, dateFrom time.Time, flag int) Result {
	return c.flagged(ctx, PathSales, dateFrom, flag)
}

func (c *Client) flagged(ctx context.Context, path string, dateFrom time.Time, flag int) Result {
	if flag != 0 && flag != 1 {
		res := validationFailure(ErrFlagOutOfRange)
		requestsTotal.WithLabelValues(path, outcomeLabel(res)).Inc()
		return res
	}
	return c.Do(ctx, Request{
		Path:            path,
		DateFrom:        dateFrom,
		RequireDateFrom: true,
		Params:          url.Values{"flag": {strconv.Itoa(flag)}},
	})
}

// ReportDetailParams selects one page of the sales-detail report.
type ReportDetailParams struct {
	DateFrom time.Time // zero uses the sticky default
	DateTo   time.Time // zero means now
	Limit    int       // zero means DefaultReportLimit
	// RrdID continues after the row with this id; zero starts from the
	// beginning. Pass the last ReportDetail.RrdID of the previous page.
	RrdID int64
}

// ReportDetailByPeriod returns one page of the sales-detail report.
func (c *Client) ReportDetailByPeriod(ctx context.Context, p ReportDetailParams) Result {
	limit := p.Limit
	if limit == 0 {
		limit = DefaultReportLimit
	}
	var invalid error
	switch {
	case limit < 0:
		invalid = ErrInvalidLimit
	case p.RrdID < 0:
		invalid = ErrInvalidCursor
	}
	if invalid != nil {
		res := validationFailure(invalid)
		requestsTotal.WithLabelValues(PathReportDetailByPeriod, outcomeLabel(res)).Inc()
		return res
	}
	return c.Do(ctx, Request{
		Path:            PathReportDetailByPeriod,
		DateFrom:        p.DateFrom,
		DateTo:          p.DateTo,
		RequireDateFrom: true,
		Params: url.Values{
			"limit": {strconv.Itoa(limit)},
			"rrdid": {strconv.FormatInt(p.RrdID, 10)},
		},
	})
}

// ExciseGoods returns the excise goods report since dateFrom.
func (c *Client) ExciseGoods(ctx context.Context, dateFrom time.Time) Result {
	return c.Do(ctx, Request{Path: PathExciseGoods, DateFrom: dateFrom, RequireDateFrom: true})
}
