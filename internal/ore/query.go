package ore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the number of results requested when none is set.
	DefaultLimit = 25

	// DefaultOffset is the result offset used when none is set.
	DefaultOffset = 0
)

// Query parameter names understood by the projects endpoint.
const (
	paramCategories = "categories"
	paramSort       = "sort"
	paramLimit      = "limit"
	paramOffset     = "offset"
	paramQuery      = "q"
)

// SearchQuery accumulates search filters and renders them into query
// parameters. Setters return the query for chaining; the first invalid
// value is remembered and reported by Err, Params and Execute.
//
// A SearchQuery is single use: Execute consumes it and a second call
// returns ErrAlreadyExecuted. It is not safe for concurrent use.
type SearchQuery struct {
	client *Client

	categories []PluginCategory
	sort       SortType
	sortSet    bool
	query      string
	limit      int
	offset     int

	err      error
	executed bool
}

// NewSearchQuery creates a query for term with default settings and no
// client attached. Such a query can render Params but not Execute.
func NewSearchQuery(term string) *SearchQuery {
	return &SearchQuery{
		query:  term,
		limit:  DefaultLimit,
		offset: DefaultOffset,
	}
}

// SetCategories replaces the category filter. Duplicates are dropped and
// the first occurrence keeps its position. No categories means no filter.
func (q *SearchQuery) SetCategories(categories ...PluginCategory) *SearchQuery {
	seen := make(map[PluginCategory]bool, len(categories))
	filtered := make([]PluginCategory, 0, len(categories))

	for _, c := range categories {
		if c.Wire() < 0 {
			q.fail(fmt.Errorf("%w: undeclared category %d", ErrInvalidQuery, int(c)))
			continue
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		filtered = append(filtered, c)
	}

	q.categories = filtered
	return q
}

// SetSort replaces the sort order.
func (q *SearchQuery) SetSort(sort SortType) *SearchQuery {
	if sort.Wire() < 0 {
		q.fail(fmt.Errorf("%w: undeclared sort %d", ErrInvalidQuery, int(sort)))
		return q
	}

	q.sort = sort
	q.sortSet = true
	return q
}

// SetLimit sets the maximum number of results. It must be at least 1.
func (q *SearchQuery) SetLimit(limit int) *SearchQuery {
	if limit < 1 {
		q.fail(&InvalidLimitError{Limit: limit})
		return q
	}

	q.limit = limit
	return q
}

// SetOffset sets how many results to skip. It must not be negative.
func (q *SearchQuery) SetOffset(offset int) *SearchQuery {
	if offset < 0 {
		q.fail(&InvalidOffsetError{Offset: offset})
		return q
	}

	q.offset = offset
	return q
}

func (q *SearchQuery) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

// Err returns the first invalid setting, if any.
func (q *SearchQuery) Err() error {
	return q.err
}

// Categories returns a copy of the category filter.
func (q *SearchQuery) Categories() []PluginCategory {
	return append([]PluginCategory(nil), q.categories...)
}

// Sort returns the effective sort order.
func (q *SearchQuery) Sort() SortType {
	if q.sortSet {
		return q.sort
	}
	return DefaultSort
}

// Term returns the free-text search term.
func (q *SearchQuery) Term() string {
	return q.query
}

// Limit returns the result limit.
func (q *SearchQuery) Limit() int {
	return q.limit
}

// Offset returns the result offset.
func (q *SearchQuery) Offset() int {
	return q.offset
}

// Params renders the canonical query parameters. The categories parameter
// is omitted when no category is selected and sort is omitted unless it
// was set explicitly.
func (q *SearchQuery) Params() (url.Values, error) {
	if q.err != nil {
		return nil, q.err
	}

	params := url.Values{}

	if len(q.categories) > 0 {
		codes := make([]string, len(q.categories))
		for i, c := range q.categories {
			codes[i] = strconv.Itoa(c.Wire())
		}
		params.Set(paramCategories, strings.Join(codes, ","))
	}

	if q.sortSet {
		params.Set(paramSort, strconv.Itoa(q.sort.Wire()))
	}

	params.Set(paramLimit, strconv.Itoa(q.limit))
	params.Set(paramOffset, strconv.Itoa(q.offset))
	params.Set(paramQuery, q.query)

	return params, nil
}

// Execute sends the search and decodes the response. It consumes the
// query: invalid settings are reported without contacting the API, and any
// later call returns ErrAlreadyExecuted.
func (q *SearchQuery) Execute(ctx context.Context) ([]Plugin, error) {
	if q.executed {
		return nil, ErrAlreadyExecuted
	}
	q.executed = true

	params, err := q.Params()
	if err != nil {
		return nil, err
	}

	if q.client == nil {
		return nil, errors.New("search query has no client")
	}

	slog.Debug("searching Ore",
		"query", q.query,
		"categories", len(q.categories),
		"sort", q.Sort().String(),
		"limit", q.limit,
		"offset", q.offset)

	body, err := q.client.transport.Get(ctx, ProjectsPath, params)
	if err != nil {
		return nil, err
	}

	plugins, err := q.client.decoder.DecodeJSON(body)
	if err != nil {
		return nil, err
	}

	slog.Debug("search completed", "plugins", len(plugins))

	return plugins, nil
}
