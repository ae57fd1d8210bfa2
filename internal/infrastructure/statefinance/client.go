// Package statefinance reads the consolidated Georgia campaign-finance
// document scraped into the election data repository. It covers every race
// the FEC does not: statewide offices and the state legislature.
package statefinance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/peachstatevotes/election-data-api/internal/core/domain/finance"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	"github.com/peachstatevotes/election-data-api/internal/infrastructure/cache"
	"github.com/sirupsen/logrus"
)

const (
	cacheKeyPrefix = "transparency-"
	documentKey    = cacheKeyPrefix + "state-financials"
	documentPath   = "/financials/state-financials.json"
)

// Client fetches the consolidated state financials document and derives
// per-candidate summaries from it.
type Client struct {
	baseURL string
	client  *http.Client
	store   *cache.Store
	apiTTL  time.Duration
	logger  *logrus.Logger
}

func NewClient(baseURL string, client *http.Client, store *cache.Store, apiTTL time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  client,
		store:   store,
		apiTTL:  apiTTL,
		logger:  logger,
	}
}

var _ ports.StateFinance = (*Client)(nil)

func (c *Client) opts() ports.CacheOptions {
	return ports.CacheOptions{Duration: c.apiTTL, Storage: ports.CacheMemory}
}

// document returns the consolidated filings document, preferring a fresh
// fetch but deliberately falling back to a stale cached copy when the
// refresh fails — old filing figures beat none at all.
func (c *Client) document(ctx context.Context) (*finance.StateFinancials, error) {
	doc, err := cache.FetchJSON[finance.StateFinancials](ctx, c.store, c.client, c.baseURL+documentPath, documentKey, c.opts())
	if err == nil {
		return &doc, nil
	}

	stale := c.opts()
	stale.Duration = cache.NoExpiry
	if cached, ok := cache.Get[finance.StateFinancials](ctx, c.store, documentKey, stale); ok {
		c.logger.WithError(err).Warn("state financials refresh failed, using stale document")
		return &cached, nil
	}
	return nil, fmt.Errorf("fetching state financials: %w", err)
}

// NormalizeID converts the hyphenated id convention used by the candidate
// dataset to the underscored convention used by the financials scrape.
// Lookups try the exact id first and this variant second.
func NormalizeID(candidateID string) string {
	return strings.ReplaceAll(candidateID, "-", "_")
}

// GetFinancialSummary derives the summary for one candidate. An absent
// candidate yields (nil, nil) with a warning log: candidates who have not
// filed yet are a normal state, not a failure.
func (c *Client) GetFinancialSummary(ctx context.Context, candidateID, candidateName string) (*finance.Summary, error) {
	doc, err := c.document(ctx)
	if err != nil {
		c.logger.WithField("candidate_id", candidateID).WithError(err).Error("error loading state financials")
		return nil, nil
	}

	filing, ok := doc.Candidates[candidateID]
	if !ok {
		filing, ok = doc.Candidates[NormalizeID(candidateID)]
	}
	if !ok {
		c.logger.WithField("candidate_id", candidateID).Warn("no state financial data for candidate")
		return nil, nil
	}

	contributions := parseCurrency(filing.Contributions)
	loans := parseCurrency(filing.Loans)
	expenditures := parseCurrency(filing.Expenditures)

	raised := contributions + loans
	cash := raised - expenditures
	// Filing lag can report more spending than receipts; never show
	// negative cash on hand.
	if cash < 0 {
		cash = 0
	}

	name := candidateName
	if name == "" {
		name = filing.Name
	}

	return &finance.Summary{
		CandidateID:   candidateID,
		CandidateName: name,
		TotalRaised:   raised,
		TotalSpent:    expenditures,
		CashOnHand:    cash,
		LastUpdated:   doc.LastUpdated,
		Source:        finance.SourceTransparencyUSA,
	}, nil
}

// ClearCache drops the cached financials document.
func (c *Client) ClearCache(ctx context.Context) {
	c.store.ClearByPrefix(ctx, cacheKeyPrefix, c.opts())
	c.logger.Info("state finance cache cleared")
}

// parseCurrency reads scraped display strings like "$1,234,567.89".
// Unparseable values read as zero.
func parseCurrency(s string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
