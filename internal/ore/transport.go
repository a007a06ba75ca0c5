package ore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the default Ore API base URL.
	DefaultBaseURL = "https://ore.spongepowered.org/api"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string sent with API requests.
	UserAgent = "go-ore/dev (https://github.com/steviee/go-ore)"

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 16 << 20

	// maxErrorBody caps how much of an error body ends up in an error message.
	maxErrorBody = 512
)

// Transport performs GET requests against the API. Implementations return
// the raw response body, or a *TransportError for network failures and
// non-success statuses.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// HTTPTransport is the default Transport backed by net/http.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewHTTPTransport creates a transport rooted at baseURL. A nil client gets
// one with DefaultTimeout.
func NewHTTPTransport(baseURL string, httpClient *http.Client, userAgent string) *HTTPTransport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if userAgent == "" {
		userAgent = UserAgent
	}

	return &HTTPTransport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Get issues GET baseURL+path?query and returns the body of a 2xx response.
func (t *HTTPTransport) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := t.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")

	slog.Debug("ore API request",
		"method", http.MethodGet,
		"url", target)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	slog.Debug("ore API response",
		"url", target,
		"status", resp.StatusCode)

	if err := checkResponse(target, resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > MaxResponseSize {
		return nil, &TransportError{URL: target, Err: fmt.Errorf("response body exceeds %d bytes", MaxResponseSize)}
	}

	return body, nil
}

// checkResponse turns a non-2xx response into a *TransportError carrying a
// snippet of the body.
func checkResponse(target string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(snippet))
	if msg == "" {
		msg = resp.Status
	}

	return &TransportError{
		URL:        target,
		StatusCode: resp.StatusCode,
		Err:        errors.New(msg),
	}
}
