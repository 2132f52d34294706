// Package api wraps net/http for talking to the task REST backend: a fixed
// base URL, default JSON headers, a request timeout and request/response
// interceptors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response body is buffered.
const maxBodySize = 8 << 20

// RequestInterceptor runs before a request is sent. Returning an error
// aborts the request.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor runs after every round-trip, successful or not. It
// may replace the response or the error.
type ResponseInterceptor func(resp *Response, err error) (*Response, error)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Method     string
	Path       string
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return fmt.Errorf("decode response: empty body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Body != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Client issues JSON requests against a base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	headers    http.Header
	logger     *log.Logger

	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client. Its Timeout is overridden
// by the client timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used by the error-logging interceptor.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestInterceptor registers a request interceptor.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(c *Client) {
		c.requestInterceptors = append(c.requestInterceptors, i)
	}
}

// WithResponseInterceptor registers a response interceptor. It runs after
// the built-in error logger.
func WithResponseInterceptor(i ResponseInterceptor) Option {
	return func(c *Client) {
		c.responseInterceptors = append(c.responseInterceptors, i)
	}
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", baseURL)
	}

	c := &Client{
		baseURL: parsed,
		timeout: DefaultTimeout,
		headers: http.Header{},
	}
	c.headers.Set("Content-Type", "application/json")
	c.headers.Set("Accept", "application/json")

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = log.Default()
	}

	hc := http.Client{}
	if c.httpClient != nil {
		hc = *c.httpClient
	}
	hc.Timeout = c.timeout
	c.httpClient = &hc

	c.responseInterceptors = append([]ResponseInterceptor{c.logErrors}, c.responseInterceptors...)
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Timeout returns the request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, p string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, p, nil)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, p string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, p, body)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, p string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, p, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, p string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, p, nil)
}

// Do sends a request and runs the interceptor chains around it.
func (c *Client) Do(ctx context.Context, method, p string, body any) (*Response, error) {
	resp, err := c.roundTrip(ctx, method, p, body)
	for _, intercept := range c.responseInterceptors {
		resp, err = intercept(resp, err)
	}
	return resp, err
}

func (c *Client) roundTrip(ctx context.Context, method, p string, body any) (*Response, error) {
	req, err := c.newRequest(ctx, method, p, body)
	if err != nil {
		return nil, err
	}
	for _, intercept := range c.requestInterceptors {
		if err := intercept(req); err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, p, err)
		}
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, p, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, p, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
		Method:     method,
		Path:       p,
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return resp, &APIError{
			StatusCode: httpResp.StatusCode,
			Method:     method,
			Path:       p,
			Body:       string(bytes.TrimSpace(data)),
		}
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, p string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := *c.baseURL
	u.Path = path.Join("/", c.baseURL.Path, p)
	u.RawPath = ""

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return req, nil
}

// logErrors is the default response interceptor: it logs failures and
// passes them through unchanged.
func (c *Client) logErrors(resp *Response, err error) (*Response, error) {
	if err == nil {
		return resp, nil
	}
	if apiErr, ok := err.(*APIError); ok {
		c.logger.Error("API Error", "method", apiErr.Method, "path", apiErr.Path, "status", apiErr.StatusCode, "body", apiErr.Body)
		return resp, err
	}
	c.logger.Error("API Error", "err", err)
	return resp, err
}
