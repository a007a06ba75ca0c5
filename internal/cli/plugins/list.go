package plugins

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/steviee/go-ore/internal/cli/output"
	"github.com/steviee/go-ore/internal/ore"
	"github.com/steviee/go-ore/internal/state"
)

// CategoryInfo describes a category in JSON output
type CategoryInfo struct {
	Code  int    `json:"code"`
	Title string `json:"title"`
	Name  string `json:"name"`
}

// SortInfo describes a sort order in JSON output
type SortInfo struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// NewCategoriesCommand creates the plugins categories subcommand
func NewCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List plugin categories",
		Long: `List the plugin categories Ore knows about.

Either the name or the title can be passed to --category.`,
		Example: `  go-ore plugins categories
  go-ore plugins categories --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCategories(cmd.OutOrStdout(), output.IsJSON(cmd))
		},
	}
}

func listCategories(w io.Writer, jsonMode bool) error {
	categories := ore.Categories()

	if jsonMode {
		infos := make([]CategoryInfo, len(categories))
		for i, c := range categories {
			infos[i] = CategoryInfo{Code: c.Wire(), Title: c.Title(), Name: c.Name()}
		}
		return output.WriteJSON(w, map[string]any{"categories": infos})
	}

	output.Header(w, fmt.Sprintf("%-5s %-20s %s", "CODE", "TITLE", "NAME"), 44)
	for _, c := range categories {
		_, _ = fmt.Fprintf(w, "%-5d %-20s %s\n", c.Wire(), c.Title(), c.Name())
	}
	return nil
}

// NewSortsCommand creates the plugins sorts subcommand
func NewSortsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sorts",
		Short: "List sort orders",
		Long: `List the sort orders accepted by --sort.

The marked order is used when neither the flag nor the config file
names one.`,
		Example: `  go-ore plugins sorts`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := state.ConfigFromContext(cmd.Context())
			configured, err := ore.ParseSortName(cfg.Search.Sort)
			if err != nil {
				configured = ore.DefaultSort
			}
			return listSorts(cmd.OutOrStdout(), output.IsJSON(cmd), configured)
		},
	}
}

func listSorts(w io.Writer, jsonMode bool, configured ore.SortType) error {
	sorts := ore.SortTypes()

	if jsonMode {
		infos := make([]SortInfo, len(sorts))
		for i, s := range sorts {
			infos[i] = SortInfo{Code: s.Wire(), Name: s.Name(), Default: s == configured}
		}
		return output.WriteJSON(w, map[string]any{"sorts": infos})
	}

	output.Header(w, fmt.Sprintf("%-5s %-18s %s", "CODE", "NAME", "DEFAULT"), 32)
	for _, s := range sorts {
		marker := ""
		if s == configured {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%-5d %-18s %s\n", s.Wire(), s.Name(), marker)
	}
	return nil
}
