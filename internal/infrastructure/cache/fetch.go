package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"context"

	"github.com/peachstatevotes/election-data-api/internal/core/ports"
)

// FetchError reports a non-successful HTTP status from an upstream fetch.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Status)
}

// FetchJSON is the fetch-through-cache primitive: check the store, and on a
// miss perform one GET, decode the body and populate the store before
// returning. Concurrent misses on the same key each issue their own request;
// the upstream documents are read-only and idempotent, so the duplicate
// fetch costs bandwidth, not correctness.
func FetchJSON[T any](ctx context.Context, s *Store, client *http.Client, url, cacheKey string, opts ports.CacheOptions) (T, error) {
	if cached, ok := Get[T](ctx, s, cacheKey, opts); ok {
		return cached, nil
	}

	var v T
	s.logger.WithField("key", cacheKey).Info("fetching fresh data")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return v, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return v, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return v, &FetchError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decoding %s: %w", url, err)
	}

	Set(ctx, s, cacheKey, v, opts)
	return v, nil
}
