package types

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RawOutcome captures one HTTP exchange before normalisation. Err is set only
// when the exchange itself failed; a non-2xx status is not an error here.
type RawOutcome struct {
	Seq         uint64
	RequestID   string
	Method      string
	URL         string // with the key parameter redacted
	StatusCode  int
	Headers     http.Header
	Body        []byte
	Err         error
	Elapsed     time.Duration // final exchange only
	IP          string
	CompletedAt time.Time
	Attempts    int
}

// Verbosity selects how much of each exchange is traced.
type Verbosity int

const (
	VerbosityNone Verbosity = iota
	VerbosityURL
	VerbosityHeaders
	VerbosityContent
)

// String returns the configuration name of v.
func (v Verbosity) String() string {
	switch v {
	case VerbosityNone:
		return "none"
	case VerbosityURL:
		return "url"
	case VerbosityHeaders:
		return "headers"
	case VerbosityContent:
		return "content"
	default:
		return fmt.Sprintf("verbosity(%d)", int(v))
	}
}

// ParseVerbosity accepts the names returned by String as well as the numeric
// levels 0-3.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "0":
		return VerbosityNone, nil
	case "url", "1":
		return VerbosityURL, nil
	case "headers", "2":
		return VerbosityHeaders, nil
	case "content", "full", "3":
		return VerbosityContent, nil
	}
	return VerbosityNone, fmt.Errorf("unknown verbosity %q", s)
}

// UnmarshalText lets envconfig and flag parsers decode a Verbosity.
func (v *Verbosity) UnmarshalText(text []byte) error {
	parsed, err := ParseVerbosity(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Valid reports whether v is one of the defined levels.
func (v Verbosity) Valid() bool {
	return v >= VerbosityNone && v <= VerbosityContent
}

// Enabled reports whether events at level should be emitted.
func (v Verbosity) Enabled(level Verbosity) bool {
	return level != VerbosityNone && v >= level
}
