package client

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the format of dateFrom and dateTo on the wire.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

// FormatDate renders t with TimestampLayout.
func FormatDate(t time.Time) string { return t.Format(TimestampLayout) }

// dateLayouts are tried in order by ParseDate. Layouts without a zone are
// read in local time.
var dateLayouts = []string{
	time.RFC3339,
	TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02.01.2006",
}

// ParseDate reads a date typed by a person: RFC 3339, ISO dates with or
// without a time, day-first dates (02-01-2006, 02.01.2006), "now" and "today".
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return time.Time{}, fmt.Errorf("empty date")
	case "now":
		return time.Now(), nil
	case "today":
		y, m, d := time.Now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
