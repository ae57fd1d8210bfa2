package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peachstatevotes/election-data-api/internal/core/domain/election"
	"github.com/peachstatevotes/election-data-api/internal/core/domain/finance"
	"github.com/peachstatevotes/election-data-api/internal/core/domain/news"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDatasetService struct {
	candidates     *election.CandidatesResponse
	races          *election.RacesResponse
	categories     *election.CategoriesResponse
	feeds          *news.FeedConfig
	featured       *news.FeaturedArticlesResponse
	metadata       *election.Metadata
	err            error
	clearCacheHits int
}

func (m *mockDatasetService) GetAllCandidates(ctx context.Context) (*election.CandidatesResponse, error) {
	return m.candidates, m.err
}

func (m *mockDatasetService) GetCandidatesByRace(ctx context.Context, raceFilter string) (*election.CandidatesResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]election.Candidate, 0)
	for _, c := range m.candidates.Candidates {
		if c.Race == raceFilter {
			filtered = append(filtered, c)
		}
	}
	return &election.CandidatesResponse{Candidates: filtered}, nil
}

func (m *mockDatasetService) GetAllRaces(ctx context.Context) (*election.RacesResponse, error) {
	return m.races, m.err
}

func (m *mockDatasetService) GetRaceByID(ctx context.Context, raceID string) (*election.Race, error) {
	if m.err != nil {
		return nil, m.err
	}
	race, ok := m.races.Races[raceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", election.ErrRaceNotFound, raceID)
	}
	return &race, nil
}

func (m *mockDatasetService) GetCategories(ctx context.Context) (*election.CategoriesResponse, error) {
	return m.categories, m.err
}

func (m *mockDatasetService) GetRSSFeeds(ctx context.Context) (*news.FeedConfig, error) {
	return m.feeds, m.err
}

func (m *mockDatasetService) GetFeaturedArticles(ctx context.Context) (*news.FeaturedArticlesResponse, error) {
	return m.featured, m.err
}

func (m *mockDatasetService) GetLastUpdated(ctx context.Context) (*election.Metadata, error) {
	return m.metadata, m.err
}

func (m *mockDatasetService) ClearCache(ctx context.Context) { m.clearCacheHits++ }

type mockFinanceService struct {
	summary        *finance.Summary
	clearCacheHits int
}

func (m *mockFinanceService) GetCandidateFinancials(ctx context.Context, candidate election.Candidate) (*finance.Summary, error) {
	return m.summary, nil
}

func (m *mockFinanceService) GetRaceFinancials(ctx context.Context, raceFilter string, candidates []election.Candidate) (*finance.RaceSummary, error) {
	return &finance.RaceSummary{RaceID: raceFilter, IsUnopposed: len(candidates) <= 1}, nil
}

func (m *mockFinanceService) IsRaceUnopposed(ctx context.Context, raceFilter string, candidates []election.Candidate) (bool, error) {
	return len(candidates) <= 1, nil
}

func (m *mockFinanceService) ClearCache(ctx context.Context) { m.clearCacheHits++ }

type mockNewsService struct {
	articles       []news.Article
	clearCacheHits int
}

func (m *mockNewsService) FetchFeed(ctx context.Context, feed news.Feed) []news.Article {
	return m.articles
}

func (m *mockNewsService) FetchMultipleFeeds(ctx context.Context, feeds []news.Feed, limit int) []news.Article {
	return m.articles
}

func (m *mockNewsService) FetchByCategory(ctx context.Context, feeds []news.Feed, category string, limit int) []news.Article {
	return m.articles
}

func (m *mockNewsService) FetchByRaceFilter(ctx context.Context, feeds []news.Feed, raceFilter string, limit int) []news.Article {
	return m.articles
}

func (m *mockNewsService) FetchByRaceTags(ctx context.Context, feeds []news.Feed, tags []string, limit int) []news.Article {
	return m.articles
}

func (m *mockNewsService) FetchByCandidateID(ctx context.Context, feeds []news.Feed, candidateID string, limit int) []news.Article {
	return m.articles
}

func (m *mockNewsService) ClearCache(ctx context.Context) { m.clearCacheHits++ }

type mockFeedProxy struct {
	resp *news.ProxyResponse
	err  error
}

func (m *mockFeedProxy) Fetch(ctx context.Context, feedURL string) (*news.ProxyResponse, error) {
	return m.resp, m.err
}

type failingChecker struct{ name string }

func (f *failingChecker) Name() string                    { return f.name }
func (f *failingChecker) Check(ctx context.Context) error { return errors.New("down") }

type passingChecker struct{ name string }

func (p *passingChecker) Name() string                    { return p.name }
func (p *passingChecker) Check(ctx context.Context) error { return nil }

func defaultDataset() *mockDatasetService {
	return &mockDatasetService{
		candidates: &election.CandidatesResponse{Candidates: []election.Candidate{
			{ID: "jane-doe", Name: "Jane Doe", Race: "governor"},
			{ID: "john-roe", Name: "John Roe", Race: "us_senate"},
		}},
		races: &election.RacesResponse{Races: map[string]election.Race{
			"governor": {ID: "governor", Title: "Governor", RaceFilter: "governor"},
		}},
		categories: &election.CategoriesResponse{Categories: map[string]election.Category{
			"statewide": {ID: "statewide", Title: "Statewide Offices"},
		}},
		feeds:    &news.FeedConfig{Feeds: []news.Feed{{ID: "ajc", Name: "AJC", URL: "https://ajc.test/rss"}}},
		featured: &news.FeaturedArticlesResponse{Articles: []news.FeaturedArticle{{ID: "f1", Title: "Featured"}}},
		metadata: &election.Metadata{LastUpdated: "2026-08-15T00:00:00Z"},
	}
}

type testServerDeps struct {
	dataset *mockDatasetService
	finance *mockFinanceService
	news    *mockNewsService
	proxy   *mockFeedProxy
	health  []ports.HealthChecker
}

func newTestServer(t *testing.T, deps testServerDeps) *Server {
	t.Helper()
	if deps.dataset == nil {
		deps.dataset = defaultDataset()
	}
	if deps.finance == nil {
		deps.finance = &mockFinanceService{}
	}
	if deps.news == nil {
		deps.news = &mockNewsService{}
	}
	if deps.proxy == nil {
		deps.proxy = &mockFeedProxy{resp: &news.ProxyResponse{Status: "ok"}}
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewServer(&ServerConfig{
		Host:           "127.0.0.1",
		Port:           "0",
		AllowedOrigins: []string{"*"},
	}, logger, ServerDeps{
		DatasetService: deps.dataset,
		FinanceService: deps.finance,
		NewsService:    deps.news,
		FeedProxy:      deps.proxy,
		HealthCheckers: deps.health,
	})
}

func doRequest(t *testing.T, server *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)
	return rec
}

func TestListCandidates(t *testing.T) {
	server := newTestServer(t, testServerDeps{})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/candidates")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp election.CandidatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Candidates, 2)
}

func TestListCandidatesByRace(t *testing.T) {
	server := newTestServer(t, testServerDeps{})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/candidates?race=governor")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp election.CandidatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "jane-doe", resp.Candidates[0].ID)
}

func TestListCandidatesUpstreamFailure(t *testing.T) {
	dataset := defaultDataset()
	dataset.err = errors.New("upstream unavailable")
	server := newTestServer(t, testServerDeps{dataset: dataset})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/candidates")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetRace(t *testing.T) {
	server := newTestServer(t, testServerDeps{})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/races/governor")
	require.Equal(t, http.StatusOK, rec.Code)

	var race election.Race
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &race))
	assert.Equal(t, "Governor", race.Title)

	rec = doRequest(t, server, http.MethodGet, "/api/v1/races/mayor")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoriesRouteNotShadowedByRaceID(t *testing.T) {
	server := newTestServer(t, testServerDeps{})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/races/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp election.CategoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Categories, "statewide")
}

func TestListNews(t *testing.T) {
	newsSvc := &mockNewsService{articles: []news.Article{{Title: "Headline", Link: "l"}}}
	server := newTestServer(t, testServerDeps{news: newsSvc})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/news?race=governor")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Articles []news.Article `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Articles, 1)
	assert.Equal(t, "Headline", body.Articles[0].Title)
}

func TestFetchRSSRequiresURL(t *testing.T) {
	server := newTestServer(t, testServerDeps{})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/news/fetch-rss")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope news.ProxyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "error", envelope.Status)
}

func TestFetchRSSErrorEnvelope(t *testing.T) {
	proxy := &mockFeedProxy{resp: &news.ProxyResponse{Status: "error", Message: "parse failed"}}
	server := newTestServer(t, testServerDeps{proxy: proxy})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/news/fetch-rss?url=https%3A%2F%2Fexample.com%2Frss")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetCandidateFinancials(t *testing.T) {
	financeSvc := &mockFinanceService{summary: &finance.Summary{CandidateID: "jane-doe", TotalRaised: 1_500_000}}
	server := newTestServer(t, testServerDeps{finance: financeSvc})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/financials/candidate/jane-doe")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Summary *finance.Summary `json:"summary"`
		Display string           `json:"display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Summary)
	assert.Contains(t, body.Display, "$1.5M")

	rec = doRequest(t, server, http.MethodGet, "/api/v1/financials/candidate/nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRaceFinancials(t *testing.T) {
	server := newTestServer(t, testServerDeps{})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/financials/race/governor")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary finance.RaceSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "governor", summary.RaceID)
	assert.True(t, summary.IsUnopposed)
}

func TestGetLastUpdated(t *testing.T) {
	server := newTestServer(t, testServerDeps{})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/metadata/last-updated")
	require.Equal(t, http.StatusOK, rec.Code)

	var meta election.Metadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, "2026-08-15T00:00:00Z", meta.LastUpdated)
}

func TestClearCacheClearsAllServices(t *testing.T) {
	dataset := defaultDataset()
	financeSvc := &mockFinanceService{}
	newsSvc := &mockNewsService{}
	server := newTestServer(t, testServerDeps{dataset: dataset, finance: financeSvc, news: newsSvc})

	rec := doRequest(t, server, http.MethodPost, "/api/v1/cache/clear")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, dataset.clearCacheHits)
	assert.Equal(t, 1, financeSvc.clearCacheHits)
	assert.Equal(t, 1, newsSvc.clearCacheHits)
}

func TestHealthCheckStatuses(t *testing.T) {
	server := newTestServer(t, testServerDeps{health: []ports.HealthChecker{&passingChecker{name: "redis"}}})
	rec := doRequest(t, server, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	server = newTestServer(t, testServerDeps{health: []ports.HealthChecker{
		&passingChecker{name: "redis"},
		&failingChecker{name: "dataset"},
	}})
	rec = doRequest(t, server, http.MethodGet, "/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "unhealthy", body.Dependencies["dataset"])
	assert.Equal(t, "healthy", body.Dependencies["redis"])
}
