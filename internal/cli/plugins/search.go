package plugins

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/steviee/go-ore/internal/cli/output"
	"github.com/steviee/go-ore/internal/ore"
	"github.com/steviee/go-ore/internal/state"
)

// PluginResult is one search hit in JSON output
type PluginResult struct {
	PluginID    string            `json:"plugin_id"`
	Name        string            `json:"name"`
	Owner       string            `json:"owner"`
	Description string            `json:"description"`
	Href        string            `json:"href"`
	Category    string            `json:"category"`
	CreatedAt   time.Time         `json:"created_at"`
	Views       int64             `json:"views"`
	Downloads   int64             `json:"downloads"`
	Stars       int64             `json:"stars"`
	Members     []string          `json:"members"`
	Recommended RecommendedResult `json:"recommended"`
}

// RecommendedResult is the recommended version of a hit in JSON output
type RecommendedResult struct {
	Name         string            `json:"name"`
	Channel      string            `json:"channel"`
	CreatedAt    time.Time         `json:"created_at"`
	FileSize     int64             `json:"file_size"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewSearchCommand creates the plugins search subcommand
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [term...]",
		Short: "Search for plugins on Ore",
		Long: `Search for plugins on Ore with optional filtering.

Without a term every plugin matches. Results can be restricted to one or
more categories and ordered by one of the sort orders listed by
'go-ore plugins sorts'. Use --limit and --offset to page through results.`,
		Example: `  # Search for a plugin
  go-ore plugins search nucleus

  # Multi-word terms need no quoting
  go-ore plugins search world edit

  # Filter and sort
  go-ore plugins search --category "Admin Tools" --sort most-downloads

  # Only print plugin IDs
  go-ore plugins search economy --quiet

  # Get JSON output for scripting
  go-ore plugins search chat --json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := output.IsJSON(cmd)
			cfg := state.ConfigFromContext(cmd.Context())

			settings, err := resolveSettings(cmd, cfg, args)
			if err != nil {
				return output.WriteError(cmd.OutOrStdout(), jsonMode, err)
			}

			return runSearch(cmd.Context(), cmd.OutOrStdout(), cfg, settings, jsonMode, output.IsQuiet(cmd))
		},
	}

	addQueryFlags(cmd)

	return cmd
}

// runSearch executes the search command
func runSearch(ctx context.Context, stdout io.Writer, cfg *state.Config, s searchSettings, jsonMode, quiet bool) error {
	q := s.query(newClient(cfg), s.offset)

	// Report invalid settings before touching the network
	if err := q.Err(); err != nil {
		return output.WriteError(stdout, jsonMode, err)
	}

	plugins, err := q.Execute(ctx)
	if err != nil {
		return output.WriteError(stdout, jsonMode, fmt.Errorf("search failed: %w", err))
	}

	switch {
	case jsonMode:
		return outputSearchJSON(stdout, s, plugins)
	case quiet:
		for _, p := range plugins {
			_, _ = fmt.Fprintln(stdout, p.PluginID)
		}
		return nil
	default:
		return outputSearchTable(stdout, s, plugins, cfg.Output.SizeFormat == state.SizeFormatHuman)
	}
}

// outputSearchTable outputs results in table format
func outputSearchTable(stdout io.Writer, s searchSettings, plugins []ore.Plugin, humanSizes bool) error {
	if len(plugins) == 0 {
		_, _ = fmt.Fprintln(stdout, "No plugins found. Try a different search term.")
		return nil
	}

	_, _ = fmt.Fprintf(stdout, "Results for %s\n\n", describe(s))

	output.Header(stdout, fmt.Sprintf("%-20s %-24s %-16s %-18s %6s %9s %-12s %s",
		"PLUGIN", "NAME", "OWNER", "CATEGORY", "STARS", "DOWNLOADS", "VERSION", "SIZE"), 118)

	for _, p := range plugins {
		_, _ = fmt.Fprintf(stdout, "%-20s %-24s %-16s %-18s %6d %9s %-12s %s\n",
			output.Truncate(p.PluginID, 20),
			output.Truncate(p.Name, 24),
			output.Truncate(p.Owner, 16),
			p.Category.Title(),
			p.Stars,
			output.FormatCount(p.Downloads),
			output.Truncate(p.Recommended.Name, 12),
			output.FormatSize(p.Recommended.FileSize, humanSizes))
	}

	// A full page suggests more results
	if len(plugins) >= s.limit {
		_, _ = fmt.Fprintf(stdout, "\nShowing %d plugin(s) from offset %d. Use --offset %d for the next page.\n",
			len(plugins), s.offset, s.offset+len(plugins))
	} else {
		_, _ = fmt.Fprintf(stdout, "\nFound %d plugin(s).\n", len(plugins))
	}

	return nil
}

// outputSearchJSON outputs results in JSON format
func outputSearchJSON(stdout io.Writer, s searchSettings, plugins []ore.Plugin) error {
	results := make([]PluginResult, len(plugins))
	for i, p := range plugins {
		results[i] = toResult(p)
	}

	return output.WriteJSON(stdout, map[string]any{
		"results":    results,
		"count":      len(results),
		"query":      s.term,
		"categories": categoryTitles(s.categories),
		"sort":       s.sort.Name(),
		"limit":      s.limit,
		"offset":     s.offset,
	})
}

func toResult(p ore.Plugin) PluginResult {
	members := make([]string, len(p.Members))
	for i, u := range p.Members {
		members[i] = u.Name
	}

	deps := make(map[string]string, len(p.Recommended.Dependencies))
	for _, d := range p.Recommended.Dependencies {
		deps[d.PluginID] = d.Version
	}

	return PluginResult{
		PluginID:    p.PluginID,
		Name:        p.Name,
		Owner:       p.Owner,
		Description: p.Description,
		Href:        p.Href,
		Category:    p.Category.Title(),
		CreatedAt:   p.CreatedAt,
		Views:       p.Views,
		Downloads:   p.Downloads,
		Stars:       p.Stars,
		Members:     members,
		Recommended: RecommendedResult{
			Name:         p.Recommended.Name,
			Channel:      p.Recommended.Channel.Name,
			CreatedAt:    p.Recommended.CreatedAt,
			FileSize:     p.Recommended.FileSize,
			Dependencies: deps,
		},
	}
}
