package ore

import (
	"strings"
	"time"
)

// DateParser converts a timestamp string from the API into a time.Time.
// Implementations return a *DateParseError on failure.
type DateParser interface {
	ParseDate(s string) (time.Time, error)
}

// DateParserFunc adapts an ordinary function to the DateParser interface.
type DateParserFunc func(s string) (time.Time, error)

// ParseDate calls f(s).
func (f DateParserFunc) ParseDate(s string) (time.Time, error) {
	return f(s)
}

// dateLayouts are tried in order by the default parser.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// DefaultDateParser reads RFC 3339 timestamps, with or without fractional
// seconds. Timestamps without a zone offset are read as UTC.
var DefaultDateParser DateParser = DateParserFunc(parseISODate)

func parseISODate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, &DateParseError{Value: s}
	}

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}

	return time.Time{}, &DateParseError{Value: s, Err: lastErr}
}
