package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the prefix of every environment variable read by LoadConfig,
// e.g. WBSTAT_TOKEN, WBSTAT_THROTTLE.
const envPrefix = "WBSTAT"

// Config holds client settings read from the environment.
type Config struct {
	Token    string `envconfig:"TOKEN"`
	DateFrom string `envconfig:"DATE_FROM"` // any format ParseDate accepts
	BaseURL  string `envconfig:"BASE_URL" default:"https://suppliers-stats.wildberries.ru/api/v1/supplier"`

	Verbosity          Verbosity     `envconfig:"VERBOSITY" default:"none"`
	Throttle           float64       `envconfig:"THROTTLE" default:"3"`
	SuccessStatusCodes []int         `envconfig:"SUCCESS_STATUS_CODES" default:"200"`
	ConnectTimeout     time.Duration `envconfig:"CONNECT_TIMEOUT" default:"30s"`
	Timeout            time.Duration `envconfig:"TIMEOUT" default:"300s"`
	InsecureSkipVerify bool          `envconfig:"INSECURE_SKIP_VERIFY" default:"false"`

	// 429 handling
	MaxRateLimitRetries int           `envconfig:"MAX_RATE_LIMIT_RETRIES" default:"0"`
	RateLimitBackoff    time.Duration `envconfig:"RATE_LIMIT_BACKOFF" default:"500ms"`

	AuthorizationHeader bool `envconfig:"AUTHORIZATION_HEADER" default:"false"`
}

// LoadConfig reads a Config from WBSTAT_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return cfg, nil
}

// Options converts cfg into client options. Zero values fall back to the
// client defaults.
func (cfg Config) Options() ([]Option, error) {
	opts := []Option{
		WithVerbosity(cfg.Verbosity),
		WithThrottle(cfg.Throttle),
		WithInsecureSkipVerify(cfg.InsecureSkipVerify),
		WithMaxRateLimitRetries(cfg.MaxRateLimitRetries),
		WithAuthorizationHeader(cfg.AuthorizationHeader),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if len(cfg.SuccessStatusCodes) > 0 {
		opts = append(opts, WithSuccessStatusCodes(cfg.SuccessStatusCodes...))
	}
	if cfg.ConnectTimeout != 0 {
		opts = append(opts, WithConnectTimeout(cfg.ConnectTimeout))
	}
	if cfg.Timeout != 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	if cfg.RateLimitBackoff != 0 {
		opts = append(opts, WithRateLimitBackoff(cfg.RateLimitBackoff))
	}
	if cfg.DateFrom != "" {
		t, err := ParseDate(cfg.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("date from: %w", err)
		}
		opts = append(opts, WithDateFrom(t))
	}
	return opts, nil
}

// NewFromConfig builds a Client from cfg; opts are applied after the
// options derived from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	base, err := cfg.Options()
	if err != nil {
		return nil, invalidOption(err)
	}
	return New(cfg.Token, append(base, opts...)...)
}
