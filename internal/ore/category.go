package ore

import (
	"strconv"
	"strings"
)

// PluginCategory is the category a plugin is listed under.
type PluginCategory int

// Plugin categories known to the Ore API.
const (
	CategoryAdminTools PluginCategory = iota + 1
	CategoryChat
	CategoryDeveloperTools
	CategoryEconomy
	CategoryGameplay
	CategoryGames
	CategoryProtection
	CategoryRolePlaying
	CategoryWorldManagement
	CategoryMiscellaneous
)

type categoryEntry struct {
	category PluginCategory
	code     int
	title    string
	name     string
}

// categoryTable is the wire contract. Codes are never derived from the
// constant values above.
var categoryTable = []categoryEntry{
	{CategoryAdminTools, 0, "Admin Tools", "admin-tools"},
	{CategoryChat, 1, "Chat", "chat"},
	{CategoryDeveloperTools, 2, "Developer Tools", "developer-tools"},
	{CategoryEconomy, 3, "Economy", "economy"},
	{CategoryGameplay, 4, "Gameplay", "gameplay"},
	{CategoryGames, 5, "Games", "games"},
	{CategoryProtection, 6, "Protection", "protection"},
	{CategoryRolePlaying, 7, "Role Playing", "role-playing"},
	{CategoryWorldManagement, 8, "World Management", "world-management"},
	{CategoryMiscellaneous, 9, "Miscellaneous", "miscellaneous"},
}

// Categories returns every category in wire-code order.
func Categories() []PluginCategory {
	out := make([]PluginCategory, len(categoryTable))
	for i, e := range categoryTable {
		out[i] = e.category
	}
	return out
}

func (c PluginCategory) entry() (categoryEntry, bool) {
	for _, e := range categoryTable {
		if e.category == c {
			return e, true
		}
	}
	return categoryEntry{}, false
}

// Wire returns the category's wire code. It returns -1 for a value that is
// not one of the declared categories.
func (c PluginCategory) Wire() int {
	if e, ok := c.entry(); ok {
		return e.code
	}
	return -1
}

// Title returns the category's display title as used by the API.
func (c PluginCategory) Title() string {
	if e, ok := c.entry(); ok {
		return e.title
	}
	return ""
}

// Name returns the kebab-case name used on the command line.
func (c PluginCategory) Name() string {
	if e, ok := c.entry(); ok {
		return e.name
	}
	return ""
}

// String implements fmt.Stringer.
func (c PluginCategory) String() string {
	if title := c.Title(); title != "" {
		return title
	}
	return "PluginCategory(" + strconv.Itoa(int(c)) + ")"
}

// CategoryFromWire maps a wire code back to its category.
func CategoryFromWire(code int) (PluginCategory, error) {
	for _, e := range categoryTable {
		if e.code == code {
			return e.category, nil
		}
	}
	return 0, &UnknownCategoryCodeError{Code: code}
}

// CategoryFromTitle maps a display title back to its category. Matching is
// exact.
func CategoryFromTitle(title string) (PluginCategory, error) {
	for _, e := range categoryTable {
		if e.title == title {
			return e.category, nil
		}
	}
	return 0, &UnknownCategoryTitleError{Title: title}
}

// ParseCategoryName accepts a kebab-case name or a display title, ignoring
// case.
func ParseCategoryName(s string) (PluginCategory, error) {
	s = strings.TrimSpace(s)
	for _, e := range categoryTable {
		if strings.EqualFold(e.name, s) || strings.EqualFold(e.title, s) {
			return e.category, nil
		}
	}
	return 0, &UnknownCategoryTitleError{Title: s}
}
