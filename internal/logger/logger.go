// Package logger configures the process-wide zerolog logger for the CLI.
package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init routes log.Logger to w as uncoloured console text.
func Init(w io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	})
}

// ParseLevel maps a level name (trace, debug, info, warn, error) to a
// zerolog level. Empty or unknown names yield info.
func ParseLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// SetLevel sets the global log level for zerolog.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
