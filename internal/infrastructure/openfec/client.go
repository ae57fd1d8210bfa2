// Package openfec wraps the Federal Election Commission API for federal
// campaign-finance lookups (US Senate and US House races).
package openfec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/peachstatevotes/election-data-api/internal/core/domain/finance"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	"github.com/peachstatevotes/election-data-api/internal/infrastructure/cache"
	"github.com/sirupsen/logrus"
)

const cacheKeyPrefix = "openfec-"

// resultsEnvelope is the {results: [...]} wrapper every FEC endpoint uses.
type resultsEnvelope[T any] struct {
	Results []T `json:"results"`
}

// Client queries the FEC search and totals endpoints. Responses are cached
// in memory only — they are volatile third-party payloads that should not
// bloat the shared durable storage — keyed by (endpoint, parameter set).
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	store   *cache.Store
	apiTTL  time.Duration
	logger  *logrus.Logger
}

func NewClient(baseURL, apiKey string, client *http.Client, store *cache.Store, apiTTL time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		store:   store,
		apiTTL:  apiTTL,
		logger:  logger,
	}
}

var _ ports.FederalFinance = (*Client)(nil)

func (c *Client) opts() ports.CacheOptions {
	return ports.CacheOptions{Duration: c.apiTTL, Storage: ports.CacheMemory}
}

// cacheKey builds a deterministic key from the endpoint and its parameters.
func cacheKey(endpoint string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	key := cacheKeyPrefix + endpoint + "?"
	for i, k := range keys {
		if i > 0 {
			key += "&"
		}
		key += k + "=" + params.Get(k)
	}
	return key
}

// fetch performs one authenticated GET against the FEC API, reading through
// the memory cache. The API credential is appended at request time and never
// becomes part of the cache key.
func fetch[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (T, error) {
	key := cacheKey(endpoint, params)
	if cached, ok := cache.Get[T](ctx, c.store, key, c.opts()); ok {
		return cached, nil
	}

	var v T
	q := url.Values{}
	for k, vals := range params {
		q[k] = vals
	}
	q.Set("api_key", c.apiKey)

	reqURL := c.baseURL + endpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return v, fmt.Errorf("building FEC request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return v, fmt.Errorf("querying FEC %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return v, fmt.Errorf("FEC API error on %s: %s", endpoint, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decoding FEC response from %s: %w", endpoint, err)
	}

	cache.Set(ctx, c.store, key, v, c.opts())
	return v, nil
}

// SearchCandidates looks up registered candidates by name, state and office
// ("S" for Senate, "H" for House). Empty name or office are omitted.
func (c *Client) SearchCandidates(ctx context.Context, name, state, office string) ([]finance.FECCandidate, error) {
	params := url.Values{}
	params.Set("state", state)
	params.Set("per_page", "20")
	if name != "" {
		params.Set("name", name)
	}
	if office != "" {
		params.Set("office", office)
	}

	env, err := fetch[resultsEnvelope[finance.FECCandidate]](ctx, c, "/candidates/search/", params)
	if err != nil {
		return nil, err
	}
	return env.Results, nil
}

// GetCandidateByID fetches one candidate record; nil when the id is unknown.
func (c *Client) GetCandidateByID(ctx context.Context, candidateID string) (*finance.FECCandidate, error) {
	env, err := fetch[resultsEnvelope[finance.FECCandidate]](ctx, c, "/candidate/"+candidateID+"/", url.Values{})
	if err != nil {
		return nil, err
	}
	if len(env.Results) == 0 {
		return nil, nil
	}
	return &env.Results[0], nil
}

// GetCandidateTotals fetches the totals-by-cycle record for a candidate.
// A nil record means no filing exists for the cycle.
func (c *Client) GetCandidateTotals(ctx context.Context, candidateID string, cycle int) (*finance.FECTotals, error) {
	params := url.Values{}
	params.Set("cycle", fmt.Sprintf("%d", cycle))
	params.Set("sort_hide_null", "false")

	env, err := fetch[resultsEnvelope[finance.FECTotals]](ctx, c, "/candidate/"+candidateID+"/totals/", params)
	if err != nil {
		return nil, err
	}
	if len(env.Results) == 0 {
		return nil, nil
	}
	return &env.Results[0], nil
}

// GetFinancialSummary normalizes the candidate's totals into the shared
// summary shape. Errors and missing filings both yield (nil, nil): a missing
// federal filing is a routine condition for unannounced candidates, not an
// application error. The cause is logged for operators.
func (c *Client) GetFinancialSummary(ctx context.Context, candidateID, candidateName string, cycle int) (*finance.Summary, error) {
	totals, err := c.GetCandidateTotals(ctx, candidateID, cycle)
	if err != nil {
		c.logger.WithFields(logrus.Fields{"candidate_id": candidateID, "cycle": cycle}).WithError(err).Error("error fetching FEC totals")
		return nil, nil
	}
	if totals == nil {
		return nil, nil
	}

	lastUpdated := totals.CoverageEndDate
	if lastUpdated == "" {
		lastUpdated = time.Now().UTC().Format(time.RFC3339)
	}

	return &finance.Summary{
		CandidateID:   candidateID,
		CandidateName: candidateName,
		TotalRaised:   totals.Receipts,
		TotalSpent:    totals.Disbursements,
		CashOnHand:    totals.CashOnHandEndPeriod,
		LastUpdated:   lastUpdated,
		Source:        finance.SourceOpenFEC,
		CycleYear:     cycle,
		FilingPeriod:  totals.CoverageEndDate,
	}, nil
}

// HouseCandidates lists US House candidates for a district.
func (c *Client) HouseCandidates(ctx context.Context, state, district string, cycle int) ([]finance.FECCandidate, error) {
	params := url.Values{}
	params.Set("state", state)
	params.Set("district", district)
	params.Set("office", "H")
	params.Set("cycle", fmt.Sprintf("%d", cycle))
	params.Set("per_page", "50")

	env, err := fetch[resultsEnvelope[finance.FECCandidate]](ctx, c, "/candidates/search/", params)
	if err != nil {
		return nil, err
	}
	return env.Results, nil
}

// SenateCandidates lists US Senate candidates for a state.
func (c *Client) SenateCandidates(ctx context.Context, state string, cycle int) ([]finance.FECCandidate, error) {
	params := url.Values{}
	params.Set("state", state)
	params.Set("office", "S")
	params.Set("cycle", fmt.Sprintf("%d", cycle))
	params.Set("per_page", "50")

	env, err := fetch[resultsEnvelope[finance.FECCandidate]](ctx, c, "/candidates/search/", params)
	if err != nil {
		return nil, err
	}
	return env.Results, nil
}

// ClearCache drops every cached FEC response.
func (c *Client) ClearCache(ctx context.Context) {
	c.store.ClearByPrefix(ctx, cacheKeyPrefix, c.opts())
	c.logger.Info("OpenFEC cache cleared")
}
