// Package ore is a read-only client for the Ore plugin repository search
// API. It builds canonical search queries, fetches the projects endpoint
// and decodes the result into typed plugin entities.
package ore

import (
	"log/slog"
	"net/http"
	"time"
)

// ProjectsPath is the search endpoint, relative to the base URL.
const ProjectsPath = "/projects"

// Client is an Ore API client. It holds no per-search state, so one Client
// may back any number of concurrent searches as long as each search uses
// its own SearchQuery.
type Client struct {
	transport Transport
	decoder   *Decoder
}

// Config holds client configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client

	// Transport replaces the HTTP transport entirely. BaseURL, Timeout,
	// UserAgent and HTTPClient are ignored when it is set.
	Transport Transport

	// DateParser reads timestamps. Defaults to DefaultDateParser.
	DateParser DateParser
}

// NewClient creates a new Ore API client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	if config.UserAgent == "" {
		config.UserAgent = UserAgent
	}

	transport := config.Transport
	if transport == nil {
		httpClient := config.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: config.Timeout}
		}
		transport = NewHTTPTransport(config.BaseURL, httpClient, config.UserAgent)
	}

	slog.Debug("creating Ore API client",
		"base_url", config.BaseURL,
		"timeout", config.Timeout,
		"custom_transport", config.Transport != nil)

	return &Client{
		transport: transport,
		decoder:   NewDecoder(config.DateParser),
	}
}

// Search starts a new search for term with default settings.
func (c *Client) Search(term string) *SearchQuery {
	q := NewSearchQuery(term)
	q.client = c
	return q
}

// Decoder returns the decoder the client uses for responses.
func (c *Client) Decoder() *Decoder {
	return c.decoder
}
