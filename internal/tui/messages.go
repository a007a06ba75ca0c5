package tui

import "github.com/steviee/go-ore/internal/ore"

// pluginsLoadedMsg is sent when a page of results has been fetched
type pluginsLoadedMsg struct {
	offset  int
	plugins []ore.Plugin
	err     error
}

// clearErrorMsg is sent to clear the error message
type clearErrorMsg struct{}
