// Package rssproxy converts remote RSS/Atom feeds into the structured
// {status, items} envelope the news service consumes. Fetcher does the
// conversion in-process; Client delegates to an external deployment of the
// same contract.
package rssproxy

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/peachstatevotes/election-data-api/internal/core/domain/news"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// Some aggregators refuse requests without a browser-like user agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// maxFeedBytes caps how much of a feed body is read; anything larger is a
// misbehaving endpoint, not a news feed.
const maxFeedBytes = 10 << 20

// Fetcher fetches and parses feeds in-process.
type Fetcher struct {
	client *http.Client
	parser *gofeed.Parser
	logger *logrus.Logger
}

// NewFetcher builds a Fetcher with a transport tuned for polling many small
// remote feeds.
func NewFetcher(timeout time.Duration, logger *logrus.Logger) *Fetcher {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout, Transport: transport},
		parser: gofeed.NewParser(),
		logger: logger,
	}
}

var _ ports.FeedProxy = (*Fetcher)(nil)

// Fetch retrieves and parses one feed. Failures are reported inside the
// envelope ({status: "error", message}) rather than as a Go error, matching
// the external proxy contract; the returned error is reserved for transport
// problems reaching a remote proxy, which cannot happen in-process.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (*news.ProxyResponse, error) {
	f.logger.WithField("url", feedURL).Debug("fetching RSS feed")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return errorResponse(err.Error()), nil
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return errorResponse(err.Error()), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return errorResponse(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status)), nil
	}

	parsed, err := f.parser.Parse(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return errorResponse("feed parsing failed: " + err.Error()), nil
	}

	items := make([]news.ProxyItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		author := ""
		if item.Author != nil {
			author = item.Author.Name
		}
		items = append(items, news.ProxyItem{
			Title:       item.Title,
			Link:        item.Link,
			PubDate:     item.Published,
			Author:      author,
			Description: item.Description,
			// The universal parser drops the RSS <source> element; consumers
			// fall back to author and then to the configured feed name.
		})
	}

	return &news.ProxyResponse{
		Status: "ok",
		Items:  items,
		Feed: &news.ProxyFeedInfo{
			Title:       parsed.Title,
			Description: parsed.Description,
			Link:        parsed.Link,
		},
	}, nil
}

func errorResponse(message string) *news.ProxyResponse {
	return &news.ProxyResponse{Status: "error", Message: message}
}
