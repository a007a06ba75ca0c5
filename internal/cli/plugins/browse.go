package plugins

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/steviee/go-ore/internal/cli/output"
	"github.com/steviee/go-ore/internal/ore"
	"github.com/steviee/go-ore/internal/state"
	"github.com/steviee/go-ore/internal/tui"
)

// runBrowser is replaced in tests to avoid taking over the terminal.
var runBrowser = tui.Run

// NewBrowseCommand creates the plugins browse subcommand
func NewBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [term...]",
		Short: "Browse search results interactively",
		Long: `Browse search results in an interactive terminal view.

Accepts the same filters as 'go-ore plugins search'. Use the arrow keys
or j/k to move, enter to show details, n/p to page and q to quit.`,
		Example: `  # Browse everything
  go-ore plugins browse

  # Browse chat plugins, most stars first
  go-ore plugins browse --category chat --sort most-stars`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output.IsJSON(cmd) {
				return fmt.Errorf("browse is interactive and does not support --json")
			}

			cfg := state.ConfigFromContext(cmd.Context())
			s, err := resolveSettings(cmd, cfg, args)
			if err != nil {
				return err
			}

			// Fail on bad flags before the screen is taken over
			client := newClient(cfg)
			if err := s.query(client, s.offset).Err(); err != nil {
				return err
			}

			return runBrowser(cmd.Context(), pageFunc(client, s), tui.Options{
				Title:      s.term,
				Limit:      s.limit,
				Offset:     s.offset,
				HumanSizes: cfg.Output.SizeFormat == state.SizeFormatHuman,
			})
		},
	}

	addQueryFlags(cmd)

	return cmd
}

// pageFunc returns a tui.SearchFunc that runs a new one-shot query per page.
func pageFunc(client *ore.Client, s searchSettings) tui.SearchFunc {
	return func(ctx context.Context, offset int) ([]ore.Plugin, error) {
		return s.query(client, offset).Execute(ctx)
	}
}
