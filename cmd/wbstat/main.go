package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wbstat/client"
	"github.com/wbstat/client/internal/logger"
)

// errCallFailed is returned when the API answered with a Failure; the
// details have already been printed.
var errCallFailed = errors.New("request failed")

type rootFlags struct {
	token      string
	baseURL    string
	dateFrom   string
	verbosity  string
	throttle   float64
	maxRetries int
	insecure   bool
	debug      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errCallFailed) {
			log.Error().Err(err).Msg("command failed")
		}
		stop()
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "wbstat",
		Short:         "Query the supplier statistics API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(cmd.ErrOrStderr())

			// Client traces are debug events; asking for them implies debug.
			level := logger.ParseLevel(os.Getenv("WBSTAT_LOG_LEVEL"))
			if f.debug || (f.verbosity != "" && f.verbosity != "none") {
				level = zerolog.DebugLevel
			}
			logger.SetLevel(level)
			log.Debug().Msg("debug logging enabled")
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.token, "token", "", "API token (default $WBSTAT_TOKEN)")
	pf.StringVar(&f.baseURL, "base-url", "", "API root (default $WBSTAT_BASE_URL or the public API)")
	pf.StringVar(&f.dateFrom, "date-from", "", "Start date, e.g. 2022-01-01 or 01.01.2022 (default $WBSTAT_DATE_FROM)")
	pf.StringVar(&f.verbosity, "verbosity", "", "Trace level: none, url, headers, content")
	pf.Float64Var(&f.throttle, "throttle", client.DefaultThrottle, "Maximum requests per second, 0 disables")
	pf.IntVar(&f.maxRetries, "max-retries", 0, "Give up after this many 429 retries, 0 retries until interrupted")
	pf.BoolVar(&f.insecure, "insecure", false, "Skip TLS certificate verification")
	pf.BoolVarP(&f.debug, "debug", "d", false, "Trace full exchanges")

	rootCmd.AddCommand(newDateCmd(f, "incomes", "List supplies received since --date-from", (*client.Client).Incomes))
	rootCmd.AddCommand(newDateCmd(f, "stocks", "List warehouse stock changed since --date-from", (*client.Client).Stocks))
	rootCmd.AddCommand(newFlagCmd(f, "orders", "List orders since --date-from", (*client.Client).Orders))
	rootCmd.AddCommand(newFlagCmd(f, "sales", "List sales and returns since --date-from", (*client.Client).Sales))
	rootCmd.AddCommand(newReportDetailCmd(f))
	rootCmd.AddCommand(newDateCmd(f, "excise-goods", "List the excise goods report since --date-from", (*client.Client).ExciseGoods))

	return rootCmd
}

func newDateCmd(f *rootFlags, use, short string, call func(*client.Client, context.Context, time.Time) client.Result) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, func(c *client.Client, from time.Time) client.Result {
				return call(c, cmd.Context(), from)
			})
		},
	}
}

func newFlagCmd(f *rootFlags, use, short string, call func(*client.Client, context.Context, time.Time, int) client.Result) *cobra.Command {
	var flag int
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, func(c *client.Client, from time.Time) client.Result {
				return call(c, cmd.Context(), from, flag)
			})
		},
	}
	cmd.Flags().IntVar(&flag, "flag", 0, "1 returns only the given day, 0 everything changed since --date-from")
	return cmd
}

func newReportDetailCmd(f *rootFlags) *cobra.Command {
	var dateTo string
	var limit int
	var rrdID int64

	cmd := &cobra.Command{
		Use:   "report-detail",
		Short: "Fetch one page of the sales-detail report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var to time.Time
			if dateTo != "" {
				var err error
				if to, err = client.ParseDate(dateTo); err != nil {
					return fmt.Errorf("--date-to: %w", err)
				}
			}
			return run(cmd, f, func(c *client.Client, from time.Time) client.Result {
				return c.ReportDetailByPeriod(cmd.Context(), client.ReportDetailParams{
					DateFrom: from,
					DateTo:   to,
					Limit:    limit,
					RrdID:    rrdID,
				})
			})
		},
	}
	cmd.Flags().StringVar(&dateTo, "date-to", "", "End date (default now)")
	cmd.Flags().IntVar(&limit, "limit", client.DefaultReportLimit, "Rows per page")
	cmd.Flags().Int64Var(&rrdID, "rrdid", 0, "Continue after this rrd_id")
	return cmd
}

// run builds a client from the environment and flags, performs call and
// prints the payload as indented JSON.
func run(cmd *cobra.Command, f *rootFlags, call func(*client.Client, time.Time) client.Result) error {
	c, from, err := newClient(cmd, f)
	if err != nil {
		return err
	}

	start := time.Now()
	res := call(c, from)
	elapsed := time.Since(start)

	if fail := res.Failure(); fail != nil {
		log.Debug().
			Str("command", cmd.Name()).
			Str("kind", fail.Kind.String()).
			Int("status_code", fail.StatusCode).
			Str("url", fail.URL).
			Dur("elapsed", elapsed).
			Msg("request failed")
		for _, msg := range fail.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", msg)
		}
		return errCallFailed
	}

	log.Debug().Str("command", cmd.Name()).Dur("elapsed", elapsed).Msg("request completed")

	out, err := json.MarshalIndent(res.Payload(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

// newClient loads WBSTAT_* settings and lets explicitly set flags override
// them. The returned date is the --date-from value, zero when not given.
func newClient(cmd *cobra.Command, f *rootFlags) (*client.Client, time.Time, error) {
	cfg, err := client.LoadConfig()
	if err != nil {
		return nil, time.Time{}, err
	}

	pf := cmd.Flags()
	if pf.Changed("token") {
		cfg.Token = f.token
	}
	if pf.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if pf.Changed("throttle") {
		cfg.Throttle = f.throttle
	}
	if pf.Changed("max-retries") {
		cfg.MaxRateLimitRetries = f.maxRetries
	}
	if pf.Changed("insecure") {
		cfg.InsecureSkipVerify = f.insecure
	}
	if pf.Changed("verbosity") {
		if cfg.Verbosity, err = client.ParseVerbosity(f.verbosity); err != nil {
			return nil, time.Time{}, fmt.Errorf("--verbosity: %w", err)
		}
	}

	var from time.Time
	if strings.TrimSpace(f.dateFrom) != "" {
		if from, err = client.ParseDate(f.dateFrom); err != nil {
			return nil, time.Time{}, fmt.Errorf("--date-from: %w", err)
		}
	}

	c, err := client.NewFromConfig(cfg, client.WithLogger(log.Logger), client.WithDebugLogging(f.debug))
	if err != nil {
		return nil, time.Time{}, err
	}
	return c, from, nil
}
