package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotSetAuth is returned by New without an API token.
	ErrNotSetAuth = errors.New("todoist API token not set")

	// ErrHTTPFailure matches every *HTTPError.
	ErrHTTPFailure = errors.New("todoist request failed")
)

const (
	// DefaultBaseURL is the REST v2 endpoint.
	DefaultBaseURL = "https://api.todoist.com/rest/v2"

	// DefaultTimeout applies when no HTTP client is supplied.
	DefaultTimeout = 30 * time.Second
)

// HTTPError is a non-2xx response.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("todoist %s %s: unexpected status code: %d, body: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Unwrap lets errors.Is(err, ErrHTTPFailure) match.
func (e *HTTPError) Unwrap() error {
	return ErrHTTPFailure
}

// Client is a client for the Todoist REST API using bearer token authentication.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// Option is a function that configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	token      string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// WithAPIKey sets the API token for the client.
func WithAPIKey(token string) Option {
	return func(opts *clientOptions) {
		opts.token = token
	}
}

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(opts *clientOptions) {
		opts.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *clientOptions) {
		opts.httpClient = client
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(opts *clientOptions) {
		opts.timeout = d
	}
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	options := &clientOptions{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.token == "" {
		return nil, ErrNotSetAuth
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		token:      options.token,
		baseURL:    strings.TrimSuffix(options.baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// do sends one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
