package ore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name            string
		config          *Config
		expectedURL     string
		expectedUA      string
		expectedTimeout time.Duration
	}{
		{
			name:            "nil config uses defaults",
			config:          nil,
			expectedURL:     DefaultBaseURL,
			expectedUA:      UserAgent,
			expectedTimeout: DefaultTimeout,
		},
		{
			name: "custom config",
			config: &Config{
				BaseURL:   "https://custom.api.com",
				Timeout:   10 * time.Second,
				UserAgent: "custom-agent",
			},
			expectedURL:     "https://custom.api.com",
			expectedUA:      "custom-agent",
			expectedTimeout: 10 * time.Second,
		},
		{
			name: "partial config uses defaults",
			config: &Config{
				BaseURL: "https://custom.api.com",
			},
			expectedURL:     "https://custom.api.com",
			expectedUA:      UserAgent,
			expectedTimeout: DefaultTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.config)

			require.NotNil(t, client)
			require.NotNil(t, client.Decoder())

			tr, ok := client.transport.(*HTTPTransport)
			require.True(t, ok)
			assert.Equal(t, tt.expectedURL, tr.baseURL)
			assert.Equal(t, tt.expectedUA, tr.userAgent)
			assert.Equal(t, tt.expectedTimeout, tr.httpClient.Timeout)
		})
	}
}

func TestNewClient_CustomTransport(t *testing.T) {
	transport := &fakeTransport{body: []byte(`[]`)}
	client := NewClient(&Config{Transport: transport})

	assert.Same(t, transport, client.transport)
}

func TestClient_Search_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.Equal(t, "1,3", r.URL.Query().Get("categories"))
		assert.Equal(t, "3", r.URL.Query().Get("sort"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "5", r.URL.Query().Get("offset"))
		assert.Equal(t, "foo", r.URL.Query().Get("q"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("[" + samplePluginJSON + "]"))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL + "/api"})

	plugins, err := client.Search("foo").
		SetCategories(CategoryChat, CategoryEconomy).
		SetSort(SortNewest).
		SetLimit(10).
		SetOffset(5).
		Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, plugins, 1)
	assert.Equal(t, "nucleus", plugins[0].PluginID)
	assert.Equal(t, CategoryAdminTools, plugins[0].Category)
}

func TestClient_Search_ErrorHandling(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		responseBody  string
		expectedError error
	}{
		{
			name:          "not found",
			statusCode:    http.StatusNotFound,
			responseBody:  `not found`,
			expectedError: ErrNotFound,
		},
		{
			name:          "rate limit",
			statusCode:    http.StatusTooManyRequests,
			responseBody:  `too many requests`,
			expectedError: ErrRateLimitExceeded,
		},
		{
			name:          "malformed body",
			statusCode:    http.StatusOK,
			responseBody:  `invalid json`,
			expectedError: ErrDecode,
		},
		{
			name:          "unknown category",
			statusCode:    http.StatusOK,
			responseBody:  `[{"pluginId":"x","createdAt":"2019-01-05T10:00:00Z","name":"x","owner":"x","description":"","href":"/x","members":[],"channels":[],"recommended":{"id":1,"createdAt":"2019-01-05T10:00:00Z","name":"1.0","dependencies":[],"pluginId":"x","channel":{"name":"Release","color":"#009600"},"fileSize":1},"category":{"title":"Mods"},"views":0,"downloads":0,"stars":0}]`,
			expectedError: ErrUnknownWireValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := NewClient(&Config{BaseURL: server.URL})

			plugins, err := client.Search("test").Execute(context.Background())

			assert.Nil(t, plugins)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestClient_Search_TransportErrorSurfacesUnchanged(t *testing.T) {
	want := &TransportError{URL: "http://ore.invalid/projects", Err: errors.New("connection refused")}
	client := NewClient(&Config{Transport: &fakeTransport{err: want}})

	_, err := client.Search("x").Execute(context.Background())

	var got *TransportError
	require.ErrorAs(t, err, &got)
	assert.Same(t, want, got)
}

func TestClient_IndependentSearches(t *testing.T) {
	transport := &fakeTransport{body: []byte(`[]`)}
	client := NewClient(&Config{Transport: transport})

	a := client.Search("a").SetLimit(5)
	b := client.Search("b")

	assert.Equal(t, 5, a.Limit())
	assert.Equal(t, DefaultLimit, b.Limit())

	_, err := a.Execute(context.Background())
	require.NoError(t, err)
	_, err = b.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", transport.query.Get("q"))
}
