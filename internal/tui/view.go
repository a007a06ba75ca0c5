package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/steviee/go-ore/internal/ore"
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Browser closed.\n"
	}

	var b strings.Builder

	// Render header
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Render table
	switch {
	case m.loading && len(m.plugins) == 0:
		b.WriteString("\nLoading plugins...\n")
	case len(m.plugins) == 0:
		b.WriteString("\nNo plugins found. Try a different search term.\n")
	default:
		b.WriteString(m.renderTable())
		if m.showDetail {
			if p, ok := m.Selected(); ok {
				b.WriteString("\n")
				b.WriteString(m.renderDetail(p))
				b.WriteString("\n")
			}
		}
	}

	// Render footer
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	// Render error message if any
	if m.err != nil && time.Since(m.errorTime) < errorDisplayTime {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %s", m.err)))
	}

	return b.String()
}

// renderHeader renders the browser header
func (m Model) renderHeader() string {
	title := "go-ore"
	if m.title != "" {
		title = fmt.Sprintf("go-ore: %q", m.title)
	}
	status := fmt.Sprintf("Page %d", m.page())
	if m.loading {
		status += " (loading)"
	}

	totalWidth := 80
	if m.width > 0 {
		totalWidth = m.width
	}

	spacing := totalWidth - len(title) - len(status) - 4
	if spacing < 1 {
		spacing = 1
	}

	var b strings.Builder
	b.WriteString("╭")
	b.WriteString(strings.Repeat("─", totalWidth-2))
	b.WriteString("╮\n")

	headerText := fmt.Sprintf(" %s%s%s ", title, strings.Repeat(" ", spacing), status)
	b.WriteString("│")
	b.WriteString(headerStyle.Render(headerText))
	b.WriteString("│\n")

	b.WriteString("╰")
	b.WriteString(strings.Repeat("─", totalWidth-2))
	b.WriteString("╯")

	return b.String()
}

// renderTable renders the result list
func (m Model) renderTable() string {
	var b strings.Builder

	nameWidth := 24
	ownerWidth := 14
	categoryWidth := 18

	headerRow := fmt.Sprintf("  %-*s  %-*s  %-*s  %6s  %9s",
		nameWidth, "NAME",
		ownerWidth, "OWNER",
		categoryWidth, "CATEGORY",
		"STARS",
		"DOWNLOADS",
	)
	b.WriteString(tableHeaderStyle.Render(headerRow))
	b.WriteString("\n")

	for i, p := range m.plugins {
		row := fmt.Sprintf("%-*s  %-*s  %-*s  %6d  %9d",
			nameWidth, clip(p.Name, nameWidth),
			ownerWidth, clip(p.Owner, ownerWidth),
			categoryWidth, clip(p.Category.Title(), categoryWidth),
			p.Stars,
			p.Downloads,
		)

		if i == m.selectedIdx {
			b.WriteString(selectedRowStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderDetail renders the pane describing the selected plugin
func (m Model) renderDetail(p ore.Plugin) string {
	var b strings.Builder

	line := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("Plugin", fmt.Sprintf("%s (%s)", p.Name, p.PluginID))
	owner := p.Owner
	if u, ok := p.Member(p.Owner); ok && u.HeadRole != "" {
		owner = fmt.Sprintf("%s (%s)", u.Name, u.HeadRole)
	}
	line("Owner", owner)
	line("Category", p.Category.Title())
	line("Created", p.CreatedAt.Format("2006-01-02"))
	line("Stats", fmt.Sprintf("%d views, %d downloads, %d stars", p.Views, p.Downloads, p.Stars))
	if p.Href != "" {
		line("Page", p.Href)
	}

	rec := p.Recommended
	size := fmt.Sprintf("%d bytes", rec.FileSize)
	if m.humanSizes {
		size = units.HumanSize(float64(rec.FileSize))
	}
	line("Recommended", fmt.Sprintf("%s [%s] %s", rec.Name, channelStyle(rec.Channel).Render(rec.Channel.Name), size))

	if api, ok := rec.Depends(ore.SpongeAPIPluginID); ok {
		line("SpongeAPI", api.Version)
	}

	if len(rec.Dependencies) > 0 {
		deps := make([]string, 0, len(rec.Dependencies))
		for _, d := range rec.Dependencies {
			deps = append(deps, d.PluginID+"@"+d.Version)
		}
		line("Requires", strings.Join(deps, ", "))
	}

	if len(p.Channels) > 0 {
		channels := make([]string, 0, len(p.Channels))
		for _, ch := range p.Channels {
			channels = append(channels, channelStyle(ch).Render(ch.Name))
		}
		line("Channels", strings.Join(channels, " "))
	}

	if len(p.Members) > 0 {
		members := make([]string, 0, len(p.Members))
		for _, u := range p.Members {
			members = append(members, fmt.Sprintf("%s (%s)", u.Name, u.HeadRole))
		}
		line("Members", strings.Join(members, ", "))
	}

	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(p.Description)
	}

	style := detailStyle
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

// renderFooter renders the key help
func (m Model) renderFooter() string {
	actions := "[↑/↓] navigate  [enter] details  [n]ext  [p]revious  [r]eload  [q]uit"
	return footerStyle.Render(actions)
}

// clip shortens s to width runes
func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
