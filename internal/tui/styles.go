package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/steviee/go-ore/internal/ore"
)

var (
	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#00ADD8")).
			Padding(0, 1)

	// Table header styles
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(lipgloss.Color("#FFFFFF"))

	// Selected row style
	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#FFA500")).
				Foreground(lipgloss.Color("#000000"))

	// Detail pane
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00ADD8")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ADD8"))

	// Footer style
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	// Error style
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// channelStyle colours a release channel with the hex colour Ore reports
// for it. Colours that are not hex codes fall back to plain text.
func channelStyle(ch ore.Channel) lipgloss.Style {
	if len(ch.Color) == 7 && ch.Color[0] == '#' {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ch.Color)).Bold(true)
	}
	return lipgloss.NewStyle()
}
