package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/steviee/go-ore/internal/ore"
)

// SearchFunc fetches one page of results starting at offset. Each call is
// expected to build and execute its own search.
type SearchFunc func(ctx context.Context, offset int) ([]ore.Plugin, error)

// Options configures the browser.
type Options struct {
	// Title is shown in the header, usually the search term.
	Title string

	// Limit is the page size the SearchFunc uses. Paging forward is only
	// offered while a page comes back full.
	Limit int

	// Offset is the first page's offset.
	Offset int

	// HumanSizes renders file sizes as "1.5MB" instead of raw bytes.
	HumanSizes bool
}

// Model is the bubbletea model for the plugin browser
type Model struct {
	plugins     []ore.Plugin
	selectedIdx int
	offset      int
	shownOffset int // offset of the page in plugins
	limit       int
	showDetail  bool
	lastUpdate  time.Time
	err         error
	errorTime   time.Time
	loading     bool
	width       int
	height      int
	search      SearchFunc
	ctx         context.Context
	title       string
	humanSizes  bool
	quitting    bool
}

// NewModel creates a new browser model
func NewModel(ctx context.Context, search SearchFunc, opts Options) *Model {
	limit := opts.Limit
	if limit < 1 {
		limit = ore.DefaultLimit
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	return &Model{
		plugins:     []ore.Plugin{},
		offset:      offset,
		shownOffset: offset,
		limit:       limit,
		loading:     true,
		search:      search,
		ctx:         ctx,
		title:       opts.Title,
		humanSizes:  opts.HumanSizes,
	}
}

// Init loads the first page
func (m Model) Init() tea.Cmd {
	return loadPluginsCmd(m.ctx, m.search, m.offset)
}

// Selected returns the highlighted plugin, if any.
func (m Model) Selected() (ore.Plugin, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.plugins) {
		return ore.Plugin{}, false
	}
	return m.plugins[m.selectedIdx], true
}

// page returns the 1-based page number of the current offset.
func (m Model) page() int {
	return m.offset/m.limit + 1
}

// hasNextPage reports whether the current page came back full.
func (m Model) hasNextPage() bool {
	return len(m.plugins) >= m.limit
}

// loadPluginsCmd returns a command that fetches the page at offset
func loadPluginsCmd(ctx context.Context, search SearchFunc, offset int) tea.Cmd {
	return func() tea.Msg {
		plugins, err := search(ctx, offset)
		return pluginsLoadedMsg{
			offset:  offset,
			plugins: plugins,
			err:     err,
		}
	}
}

// clearErrorCmd returns a command that clears the error message after a delay
func clearErrorCmd() tea.Cmd {
	return tea.Tick(errorDisplayTime, func(t time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

const errorDisplayTime = 3 * time.Second

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, search SearchFunc, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, search, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
