package httpclient

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
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Settings is the immutable transport configuration shared by every request.
// Build it once at startup with NewSettings and pass it by value.
type Settings struct {
	baseURL string
	headers http.Header
}

// NewSettings validates baseURL and freezes the default headers. The JSON
// content type is always present.
func NewSettings(baseURL string, headers map[string]string) (Settings, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Settings{}, fmt.Errorf("base URL must be absolute: %q", baseURL)
	}

	h := make(http.Header, len(headers)+1)
	for k, v := range headers {
		h.Set(k, v)
	}
	h.Set("Content-Type", "application/json")

	return Settings{baseURL: baseURL, headers: h}, nil
}

func (s Settings) BaseURL() string {
	return s.baseURL
}

// Headers returns a copy of the default headers.
func (s Settings) Headers() http.Header {
	return s.headers.Clone()
}

// Response is a successful (2xx) reply.
type Response struct {
	StatusCode int
	Body       []byte
}

// StatusError is returned for any reply outside 2xx.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("unexpected response: %s", e.Status)
	}
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("unexpected response: %s: %s", e.Status, body)
}

// StatusCode extracts the HTTP status carried by err. Transport failures
// carry none.
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

// Client is the single channel to the dishes service. It adds no retries,
// timeouts or auth on top of the transport it wraps.
type Client struct {
	settings Settings
	http     HTTPClient
}

func NewClient(settings Settings, client HTTPClient) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		settings: settings,
		http:     client,
	}
}

func (c *Client) Settings() Settings {
	return c.settings
}

// PostJSON marshals body and posts it to path under the base URL.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error encoding request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(data))
}

// Head sends a bodiless HEAD request to path under the base URL.
func (c *Client) Head(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodHead, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*Response, error) {
	endpoint, err := url.JoinPath(c.settings.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("error building URL for %q: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header = c.settings.Headers()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending %s %s: %w", method, endpoint, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			return
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       respBody,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}
