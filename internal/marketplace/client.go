// Package marketplace is the HTTP gateway to the remote car marketplace
// backend. It implements domain.ListingGateway and domain.AccountGateway.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/msomdec/buycars/internal/domain"
)

const maxResponseSize = 10 << 20 // 10MB

// Client calls the marketplace REST API rooted at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var (
	_ domain.ListingGateway = (*Client)(nil)
	_ domain.AccountGateway = (*Client)(nil)
)

// New creates a Client for baseURL. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the backend root every request is sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes a successful body into out (if non-nil).
// The bearer token is attached whenever it is non-empty.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", domain.ErrUpstream, path, err)
	}

	if msg := errorMessage(data); msg != "" {
		return &domain.RemoteError{Status: resp.StatusCode, Message: msg}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s returned status %d", domain.ErrUpstream, method, path, resp.StatusCode)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", domain.ErrUpstream, path, err)
	}
	return nil
}

func pathEscape(segment string) string {
	return url.PathEscape(segment)
}
