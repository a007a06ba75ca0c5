package plugins

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the plugins command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Search and browse Ore plugins",
		Long: `Search and browse plugins published on the Ore repository.

Commands in this group talk to the Ore search API. Category, sort and
page size defaults come from the search section of the config file and
can be overridden per invocation.`,
		Example: `  # Search for plugins
  go-ore plugins search nucleus

  # Only economy and chat plugins, most stars first
  go-ore plugins search --category economy --category chat --sort most-stars

  # Second page of 10 results
  go-ore plugins search --limit 10 --offset 10

  # List categories and sort orders
  go-ore plugins categories
  go-ore plugins sorts

  # Browse interactively
  go-ore plugins browse`,
		Aliases: []string{"plugin", "p"},
	}

	cmd.AddCommand(NewSearchCommand())
	cmd.AddCommand(NewBrowseCommand())
	cmd.AddCommand(NewCategoriesCommand())
	cmd.AddCommand(NewSortsCommand())

	return cmd
}
