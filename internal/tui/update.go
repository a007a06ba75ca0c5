package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pluginsLoadedMsg:
		// A newer page was requested while this one was in flight
		if msg.offset != m.offset {
			return m, nil
		}

		m.loading = false
		if msg.err != nil {
			// Keep the header on the page that is still shown
			m.offset = m.shownOffset
			m.err = msg.err
			m.errorTime = time.Now()
			slog.Error("failed to load plugins", "offset", msg.offset, "error", msg.err)
			return m, clearErrorCmd()
		}

		m.plugins = msg.plugins
		m.shownOffset = msg.offset
		m.lastUpdate = time.Now()
		m.selectedIdx = 0
		if len(m.plugins) == 0 {
			m.showDetail = false
		}

		return m, nil

	case clearErrorMsg:
		if time.Since(m.errorTime) >= errorDisplayTime {
			m.err = nil
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "r":
		return m.goTo(m.offset)

	case "n", "right":
		if m.loading || !m.hasNextPage() {
			return m, nil
		}
		return m.goTo(m.offset + m.limit)

	case "p", "left":
		if m.loading || m.offset == 0 {
			return m, nil
		}
		prev := m.offset - m.limit
		if prev < 0 {
			prev = 0
		}
		return m.goTo(prev)
	}

	// If no plugins, ignore navigation keys
	if len(m.plugins) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
		return m, nil

	case "down", "j":
		if m.selectedIdx < len(m.plugins)-1 {
			m.selectedIdx++
		}
		return m, nil

	case "home", "g":
		m.selectedIdx = 0
		return m, nil

	case "end", "G":
		m.selectedIdx = len(m.plugins) - 1
		return m, nil

	case "enter":
		m.showDetail = !m.showDetail
		return m, nil

	case "esc":
		m.showDetail = false
		return m, nil
	}

	return m, nil
}

// goTo starts loading the page at offset
func (m Model) goTo(offset int) (tea.Model, tea.Cmd) {
	m.offset = offset
	m.loading = true
	slog.Debug("loading plugin page", "offset", offset, "limit", m.limit)
	return m, loadPluginsCmd(m.ctx, m.search, offset)
}
