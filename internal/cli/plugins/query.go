package plugins

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/steviee/go-ore/internal/ore"
	"github.com/steviee/go-ore/internal/state"
)

// Flags shared by search and browse
var (
	queryCategories []string
	querySort       string
	queryLimit      int
	queryOffset     int
)

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&queryCategories, "category", "c", nil, "Filter by category name or title, repeatable (default from config)")
	cmd.Flags().StringVarP(&querySort, "sort", "s", "", "Sort by: "+strings.Join(sortNames(), ", ")+" (default from config)")
	cmd.Flags().IntVarP(&queryLimit, "limit", "l", 0, "Maximum results per page (default from config)")
	cmd.Flags().IntVarP(&queryOffset, "offset", "o", 0, "Number of results to skip")
}

// searchSettings is the merged result of config and flags for one search.
type searchSettings struct {
	term       string
	categories []ore.PluginCategory
	sort       ore.SortType
	limit      int
	offset     int
}

// resolveSettings merges the query flags over the configured defaults.
func resolveSettings(cmd *cobra.Command, cfg *state.Config, args []string) (searchSettings, error) {
	s := searchSettings{
		term:   strings.TrimSpace(strings.Join(args, " ")),
		limit:  cfg.Search.Limit,
		offset: queryOffset,
	}

	names := cfg.Search.Categories
	if cmd.Flags().Changed("category") {
		names = queryCategories
	}
	categories, err := state.ParseCategories(names)
	if err != nil {
		return s, err
	}
	s.categories = categories

	sortName := cfg.Search.Sort
	if cmd.Flags().Changed("sort") {
		sortName = querySort
	}
	s.sort, err = ore.ParseSortName(sortName)
	if err != nil {
		return s, err
	}

	if cmd.Flags().Changed("limit") {
		s.limit = queryLimit
	}

	return s, nil
}

// query builds a fresh search for these settings at the given offset.
func (s searchSettings) query(client *ore.Client, offset int) *ore.SearchQuery {
	return client.Search(s.term).
		SetCategories(s.categories...).
		SetSort(s.sort).
		SetLimit(s.limit).
		SetOffset(offset)
}

func newClient(cfg *state.Config) *ore.Client {
	return ore.NewClient(&ore.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
	})
}

func sortNames() []string {
	sorts := ore.SortTypes()
	names := make([]string, len(sorts))
	for i, s := range sorts {
		names[i] = s.Name()
	}
	return names
}

func categoryTitles(categories []ore.PluginCategory) []string {
	titles := make([]string, len(categories))
	for i, c := range categories {
		titles[i] = c.Title()
	}
	return titles
}

func describe(s searchSettings) string {
	term := s.term
	if term == "" {
		term = "all plugins"
	} else {
		term = fmt.Sprintf("%q", term)
	}
	return fmt.Sprintf("%s sorted by %s", term, s.sort.Name())
}
