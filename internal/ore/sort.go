package ore

import (
	"strconv"
	"strings"
)

// SortType is the order in which search results are returned.
type SortType int

// Sort orders known to the Ore API.
const (
	SortRecentlyUpdated SortType = iota + 1
	SortMostStars
	SortMostDownloads
	SortMostViews
	SortNewest
)

// DefaultSort is the order the API applies when none is requested.
const DefaultSort = SortRecentlyUpdated

type sortEntry struct {
	sort SortType
	code int
	name string
}

// sortTable is the wire contract. RecentlyUpdated is code 4 even though it
// is declared first.
var sortTable = []sortEntry{
	{SortMostStars, 0, "most-stars"},
	{SortMostDownloads, 1, "most-downloads"},
	{SortMostViews, 2, "most-views"},
	{SortNewest, 3, "newest"},
	{SortRecentlyUpdated, 4, "recently-updated"},
}

// SortTypes returns every sort order in wire-code order.
func SortTypes() []SortType {
	out := make([]SortType, len(sortTable))
	for i, e := range sortTable {
		out[i] = e.sort
	}
	return out
}

func (s SortType) entry() (sortEntry, bool) {
	for _, e := range sortTable {
		if e.sort == s {
			return e, true
		}
	}
	return sortEntry{}, false
}

// Wire returns the sort order's wire code, or -1 for an undeclared value.
func (s SortType) Wire() int {
	if e, ok := s.entry(); ok {
		return e.code
	}
	return -1
}

// Name returns the kebab-case name used on the command line.
func (s SortType) Name() string {
	if e, ok := s.entry(); ok {
		return e.name
	}
	return ""
}

// String implements fmt.Stringer.
func (s SortType) String() string {
	if name := s.Name(); name != "" {
		return name
	}
	return "SortType(" + strconv.Itoa(int(s)) + ")"
}

// SortFromWire maps a wire code back to its sort order.
func SortFromWire(code int) (SortType, error) {
	for _, e := range sortTable {
		if e.code == code {
			return e.sort, nil
		}
	}
	return 0, &UnknownSortCodeError{Code: code}
}

// ParseSortName maps a kebab-case name (case-insensitive) to a sort order.
func ParseSortName(name string) (SortType, error) {
	name = strings.TrimSpace(name)
	for _, e := range sortTable {
		if strings.EqualFold(e.name, name) {
			return e.sort, nil
		}
	}
	return 0, &UnknownSortNameError{Name: name}
}
