package ore

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchQuery_Defaults(t *testing.T) {
	q := NewSearchQuery("worldedit")

	assert.Equal(t, "worldedit", q.Term())
	assert.Equal(t, DefaultLimit, q.Limit())
	assert.Equal(t, DefaultOffset, q.Offset())
	assert.Equal(t, SortRecentlyUpdated, q.Sort())
	assert.Empty(t, q.Categories())
	assert.NoError(t, q.Err())
}

func TestSearchQuery_Params(t *testing.T) {
	tests := []struct {
		name  string
		build func() *SearchQuery
		want  url.Values
	}{
		{
			name: "all filters",
			build: func() *SearchQuery {
				return NewSearchQuery("foo").
					SetCategories(CategoryChat, CategoryEconomy).
					SetSort(SortNewest).
					SetLimit(10).
					SetOffset(5)
			},
			want: url.Values{
				"categories": {"1,3"},
				"sort":       {"3"},
				"limit":      {"10"},
				"offset":     {"5"},
				"q":          {"foo"},
			},
		},
		{
			name: "defaults omit categories and sort",
			build: func() *SearchQuery {
				return NewSearchQuery("foo")
			},
			want: url.Values{
				"limit":  {"25"},
				"offset": {"0"},
				"q":      {"foo"},
			},
		},
		{
			name: "empty category set clears the filter",
			build: func() *SearchQuery {
				return NewSearchQuery("foo").
					SetCategories(CategoryChat).
					SetCategories()
			},
			want: url.Values{
				"limit":  {"25"},
				"offset": {"0"},
				"q":      {"foo"},
			},
		},
		{
			name: "categories keep insertion order",
			build: func() *SearchQuery {
				return NewSearchQuery("").
					SetCategories(CategoryMiscellaneous, CategoryAdminTools, CategoryGames)
			},
			want: url.Values{
				"categories": {"9,0,5"},
				"limit":      {"25"},
				"offset":     {"0"},
				"q":          {""},
			},
		},
		{
			name: "duplicate categories are dropped",
			build: func() *SearchQuery {
				return NewSearchQuery("x").
					SetCategories(CategoryChat, CategoryChat, CategoryEconomy, CategoryChat)
			},
			want: url.Values{
				"categories": {"1,3"},
				"limit":      {"25"},
				"offset":     {"0"},
				"q":          {"x"},
			},
		},
		{
			name: "explicit default sort is rendered",
			build: func() *SearchQuery {
				return NewSearchQuery("x").SetSort(SortRecentlyUpdated)
			},
			want: url.Values{
				"sort":   {"4"},
				"limit":  {"25"},
				"offset": {"0"},
				"q":      {"x"},
			},
		},
		{
			name: "free text is passed through raw",
			build: func() *SearchQuery {
				return NewSearchQuery("nucleus & friends?")
			},
			want: url.Values{
				"limit":  {"25"},
				"offset": {"0"},
				"q":      {"nucleus & friends?"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := tt.build().Params()
			require.NoError(t, err)
			assert.Equal(t, tt.want, params)
		})
	}
}

func TestSearchQuery_ParamsEncodeIsStable(t *testing.T) {
	build := func() *SearchQuery {
		return NewSearchQuery("foo").
			SetCategories(CategoryChat, CategoryEconomy).
			SetSort(SortNewest).
			SetLimit(10).
			SetOffset(5)
	}

	first, err := build().Params()
	require.NoError(t, err)
	second, err := build().Params()
	require.NoError(t, err)

	assert.Equal(t, first.Encode(), second.Encode())
	assert.Equal(t, "categories=1%2C3&limit=10&offset=5&q=foo&sort=3", first.Encode())
}

func TestSearchQuery_InvalidValues(t *testing.T) {
	t.Run("zero limit", func(t *testing.T) {
		q := NewSearchQuery("x").SetLimit(0)

		var limitErr *InvalidLimitError
		require.ErrorAs(t, q.Err(), &limitErr)
		assert.Equal(t, 0, limitErr.Limit)
		assert.ErrorIs(t, q.Err(), ErrInvalidQuery)
		assert.Equal(t, DefaultLimit, q.Limit())
	})

	t.Run("negative offset", func(t *testing.T) {
		q := NewSearchQuery("x").SetOffset(-1)

		var offsetErr *InvalidOffsetError
		require.ErrorAs(t, q.Err(), &offsetErr)
		assert.Equal(t, -1, offsetErr.Offset)
		assert.ErrorIs(t, q.Err(), ErrInvalidQuery)
	})

	t.Run("first error wins", func(t *testing.T) {
		q := NewSearchQuery("x").SetOffset(-3).SetLimit(-7)

		var offsetErr *InvalidOffsetError
		assert.ErrorAs(t, q.Err(), &offsetErr)
	})

	t.Run("undeclared sort", func(t *testing.T) {
		q := NewSearchQuery("x").SetSort(SortType(42))
		assert.ErrorIs(t, q.Err(), ErrInvalidQuery)
	})

	t.Run("undeclared category", func(t *testing.T) {
		q := NewSearchQuery("x").SetCategories(CategoryChat, PluginCategory(77))
		assert.ErrorIs(t, q.Err(), ErrInvalidQuery)
	})

	t.Run("params reports the error", func(t *testing.T) {
		params, err := NewSearchQuery("x").SetLimit(0).Params()
		assert.Nil(t, params)
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})
}

func TestSearchQuery_Categories_ReturnsCopy(t *testing.T) {
	q := NewSearchQuery("x").SetCategories(CategoryChat)

	got := q.Categories()
	got[0] = CategoryGames

	assert.Equal(t, []PluginCategory{CategoryChat}, q.Categories())
}

func TestSearchQuery_Execute_InvalidQueryNeverHitsTransport(t *testing.T) {
	transport := &fakeTransport{body: []byte(`[]`)}
	client := NewClient(&Config{Transport: transport})

	_, err := client.Search("x").SetLimit(0).Execute(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Zero(t, transport.calls)
}

func TestSearchQuery_Execute_OneShot(t *testing.T) {
	transport := &fakeTransport{body: []byte(`[]`)}
	client := NewClient(&Config{Transport: transport})
	q := client.Search("x")

	plugins, err := q.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plugins)

	_, err = q.Execute(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyExecuted)
	assert.Equal(t, 1, transport.calls)
}

func TestSearchQuery_Execute_WithoutClient(t *testing.T) {
	_, err := NewSearchQuery("x").Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no client")
}

func TestSearchQuery_Execute_PassesParams(t *testing.T) {
	transport := &fakeTransport{body: []byte(`[]`)}
	client := NewClient(&Config{Transport: transport})

	_, err := client.Search("foo").
		SetCategories(CategoryChat, CategoryEconomy).
		SetSort(SortNewest).
		SetLimit(10).
		SetOffset(5).
		Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ProjectsPath, transport.path)
	assert.Equal(t, "1,3", transport.query.Get("categories"))
	assert.Equal(t, "3", transport.query.Get("sort"))
	assert.Equal(t, "10", transport.query.Get("limit"))
	assert.Equal(t, "5", transport.query.Get("offset"))
	assert.Equal(t, "foo", transport.query.Get("q"))
}

// fakeTransport records the last request and replays a canned answer.
type fakeTransport struct {
	body  []byte
	err   error
	calls int
	path  string
	query url.Values
}

func (f *fakeTransport) Get(_ context.Context, path string, query url.Values) ([]byte, error) {
	f.calls++
	f.path = path
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}
