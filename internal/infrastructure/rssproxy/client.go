package rssproxy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/peachstatevotes/election-data-api/internal/core/domain/news"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
)

// Client speaks the proxy envelope to an external RSS-to-JSON deployment
// (GET {base}?url=<encoded feed url>).
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{baseURL: baseURL, client: client}
}

var _ ports.FeedProxy = (*Client)(nil)

// Fetch implements ports.FeedProxy against the remote deployment.
func (c *Client) Fetch(ctx context.Context, feedURL string) (*news.ProxyResponse, error) {
	reqURL := c.baseURL + "?url=" + url.QueryEscape(feedURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building proxy request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling RSS proxy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("RSS proxy error: HTTP %d", resp.StatusCode)
	}

	var envelope news.ProxyResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding proxy response: %w", err)
	}
	return &envelope, nil
}
