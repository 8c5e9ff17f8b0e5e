package client

import "os"

// WithDebugLogging traces full exchanges (URL, headers and bodies) when
// enabled is true. The token is redacted. Do not enable it in production.
//
//	export WBSTAT_DEBUG=true
//	go run ./cmd/wbstat sales --date-from 2022-01-01
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.tcfg.Verbosity = VerbosityContent
		}
		return nil
	}
}

// debugLoggingRequested reports whether WBSTAT_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("WBSTAT_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
