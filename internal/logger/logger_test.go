package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	cases := map[string]zerolog.Level{
		"":       zerolog.InfoLevel,
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"trace":  zerolog.TraceLevel,
		"chatty": zerolog.InfoLevel,
		"error":  zerolog.ErrorLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestInit_WritesPlainText(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	Init(&buf)
	log.Info().Str("endpoint", "sales").Msg("hello")
	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "endpoint=sales")
	assert.NotContains(t, out, "\x1b[", "console output is coloured")
}
