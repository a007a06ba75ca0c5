// Package output holds the presentation helpers shared by the go-ore
// commands: the JSON envelope, table styling and number formatting.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

// Envelope is the JSON document every command emits in --json mode.
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// IsJSON reports whether the inherited --json flag is set on cmd.
func IsJSON(cmd *cobra.Command) bool {
	on, err := cmd.Flags().GetBool("json")
	return err == nil && on
}

// IsQuiet reports whether the inherited --quiet flag is set on cmd.
func IsQuiet(cmd *cobra.Command) bool {
	on, err := cmd.Flags().GetBool("quiet")
	return err == nil && on
}

// WriteJSON writes a success envelope around data.
func WriteJSON(w io.Writer, data any) error {
	return encode(w, Envelope{Status: "success", Data: data})
}

// WriteError reports err as an error envelope in JSON mode and returns it
// unchanged so callers can propagate it.
func WriteError(w io.Writer, jsonMode bool, err error) error {
	if jsonMode {
		_ = encode(w, Envelope{Status: "error", Error: err.Error()})
	}
	return err
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}

// Header renders a table header line followed by a rule of the given width.
func Header(w io.Writer, line string, width int) {
	_, _ = fmt.Fprintln(w, headerStyle.Render(line))
	_, _ = fmt.Fprintln(w, strings.Repeat("-", width))
}

// Truncate shortens s to maxLen runes, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCount formats counters such as downloads in a compact form.
func FormatCount(n int64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
	if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}

// FormatSize renders a file size either human readable ("1.5MB") or as a
// raw byte count, depending on human.
func FormatSize(n int64, human bool) string {
	if !human {
		return fmt.Sprintf("%d", n)
	}
	return units.HumanSize(float64(n))
}
