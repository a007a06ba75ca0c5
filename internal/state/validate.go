package state

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/steviee/go-ore/internal/ore"
)

// ValidateBaseURL validates an API base URL.
// Rules:
// - Must be an absolute http or https URL
// - Must not carry a query string or fragment
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("base url cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https: %q", raw)
	}

	if u.Host == "" {
		return fmt.Errorf("url must include a host: %q", raw)
	}

	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("url must not include a query or fragment: %q", raw)
	}

	return nil
}

// ValidateSizeFormat validates an output size format.
func ValidateSizeFormat(format string) error {
	switch format {
	case SizeFormatHuman, SizeFormatBytes:
		return nil
	}
	return fmt.Errorf("invalid size format: %q (must be %s or %s)", format, SizeFormatHuman, SizeFormatBytes)
}

// ValidateLogLevel validates a log level name.
func ValidateLogLevel(level string) error {
	if _, err := ParseLogLevel(level); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps a level name to its slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", level)
}

// ParseCategories maps category names or titles to categories, keeping
// their order.
func ParseCategories(names []string) ([]ore.PluginCategory, error) {
	categories := make([]ore.PluginCategory, 0, len(names))
	for _, name := range names {
		c, err := ore.ParseCategoryName(name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}
