package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/peachstatevotes/election-data-api/internal/core/domain/election"
	"github.com/peachstatevotes/election-data-api/internal/core/domain/news"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	"github.com/peachstatevotes/election-data-api/internal/infrastructure/cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Cache keys owned by the dataset service. Prefixed keys allow bulk
// invalidation without touching other namespaces.
const (
	keyCandidatesIndex  = "candidates-index"
	keyCandidatePrefix  = "candidate-"
	keyRacesIndex       = "races-index"
	keyRacePrefix       = "race-"
	keyRaceCategories   = "race-categories"
	keyRSSFeeds         = "rss-feeds"
	keyFeaturedArticles = "featured-articles"
	keyLastUpdated      = "last-updated"
)

// DatasetService reads the static election dataset from the content-delivery
// base URL through the durable cache. Collection fetches expand an index
// document in parallel with an all-or-fail join: a partial dataset is
// unusable, so any single document failure aborts the whole fetch.
type DatasetService struct {
	store   *cache.Store
	client  *http.Client
	baseURL string
	dataTTL time.Duration
	logger  *logrus.Logger
}

func NewDatasetService(store *cache.Store, client *http.Client, baseURL string, dataTTL time.Duration, logger *logrus.Logger) *DatasetService {
	return &DatasetService{
		store:   store,
		client:  client,
		baseURL: baseURL,
		dataTTL: dataTTL,
		logger:  logger,
	}
}

var _ ports.DatasetService = (*DatasetService)(nil)

func (s *DatasetService) opts() ports.CacheOptions {
	return ports.CacheOptions{Duration: s.dataTTL, Storage: ports.CacheDurable}
}

func (s *DatasetService) url(path string) string {
	return s.baseURL + path
}

// GetAllCandidates fetches the candidate index and every referenced document
// in parallel. Each document is cached under its own key, so a single-item
// change upstream does not invalidate the rest of the collection.
func (s *DatasetService) GetAllCandidates(ctx context.Context) (*election.CandidatesResponse, error) {
	index, err := cache.FetchJSON[[]election.IndexEntry](ctx, s.store, s.client, s.url("/candidates/index.json"), keyCandidatesIndex, s.opts())
	if err != nil {
		return nil, fmt.Errorf("fetching candidate index: %w", err)
	}

	candidates := make([]election.Candidate, len(index))
	g, gctx := errgroup.WithContext(ctx)
	for i, ent := range index {
		i, ent := i, ent
		g.Go(func() error {
			c, err := cache.FetchJSON[election.Candidate](gctx, s.store, s.client, s.url("/candidates/"+ent.Filename), keyCandidatePrefix+ent.ID, s.opts())
			if err != nil {
				return fmt.Errorf("fetching candidate %s: %w", ent.ID, err)
			}
			candidates[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &election.CandidatesResponse{
		Candidates:  candidates,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// GetCandidatesByRace filters the full candidate set on an exact raceFilter
// match; the dataset has no filtered endpoint.
func (s *DatasetService) GetCandidatesByRace(ctx context.Context, raceFilter string) (*election.CandidatesResponse, error) {
	all, err := s.GetAllCandidates(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]election.Candidate, 0, len(all.Candidates))
	for _, c := range all.Candidates {
		if c.Race == raceFilter {
			filtered = append(filtered, c)
		}
	}

	return &election.CandidatesResponse{
		Candidates:  filtered,
		LastUpdated: all.LastUpdated,
	}, nil
}

// GetAllRaces expands the race index into a map keyed by race id.
func (s *DatasetService) GetAllRaces(ctx context.Context) (*election.RacesResponse, error) {
	index, err := cache.FetchJSON[[]election.IndexEntry](ctx, s.store, s.client, s.url("/races/index.json"), keyRacesIndex, s.opts())
	if err != nil {
		return nil, fmt.Errorf("fetching race index: %w", err)
	}

	fetched := make([]election.Race, len(index))
	g, gctx := errgroup.WithContext(ctx)
	for i, ent := range index {
		i, ent := i, ent
		g.Go(func() error {
			r, err := cache.FetchJSON[election.Race](gctx, s.store, s.client, s.url("/races/"+ent.Filename), keyRacePrefix+ent.ID, s.opts())
			if err != nil {
				return fmt.Errorf("fetching race %s: %w", ent.ID, err)
			}
			fetched[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	races := make(map[string]election.Race, len(index))
	for i, ent := range index {
		races[ent.ID] = fetched[i]
	}

	return &election.RacesResponse{
		Races:       races,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// GetRaceByID looks a race up in the full race map.
func (s *DatasetService) GetRaceByID(ctx context.Context, raceID string) (*election.Race, error) {
	all, err := s.GetAllRaces(ctx)
	if err != nil {
		return nil, err
	}
	race, ok := all.Races[raceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", election.ErrRaceNotFound, raceID)
	}
	return &race, nil
}

func (s *DatasetService) GetCategories(ctx context.Context) (*election.CategoriesResponse, error) {
	resp, err := cache.FetchJSON[election.CategoriesResponse](ctx, s.store, s.client, s.url("/races/raceCategories.json"), keyRaceCategories, s.opts())
	if err != nil {
		return nil, fmt.Errorf("fetching race categories: %w", err)
	}
	return &resp, nil
}

func (s *DatasetService) GetRSSFeeds(ctx context.Context) (*news.FeedConfig, error) {
	cfg, err := cache.FetchJSON[news.FeedConfig](ctx, s.store, s.client, s.url("/news/rss-feeds.json"), keyRSSFeeds, s.opts())
	if err != nil {
		return nil, fmt.Errorf("fetching feed config: %w", err)
	}
	return &cfg, nil
}

func (s *DatasetService) GetFeaturedArticles(ctx context.Context) (*news.FeaturedArticlesResponse, error) {
	resp, err := cache.FetchJSON[news.FeaturedArticlesResponse](ctx, s.store, s.client, s.url("/news/featured-articles.json"), keyFeaturedArticles, s.opts())
	if err != nil {
		return nil, fmt.Errorf("fetching featured articles: %w", err)
	}
	return &resp, nil
}

func (s *DatasetService) GetLastUpdated(ctx context.Context) (*election.Metadata, error) {
	meta, err := cache.FetchJSON[election.Metadata](ctx, s.store, s.client, s.url("/metadata/last-updated.json"), keyLastUpdated, s.opts())
	if err != nil {
		return nil, fmt.Errorf("fetching metadata: %w", err)
	}
	return &meta, nil
}

// ClearCache purges every namespace this service writes.
func (s *DatasetService) ClearCache(ctx context.Context) {
	opts := s.opts()
	s.store.ClearByPrefix(ctx, keyCandidatePrefix, opts)
	s.store.ClearByPrefix(ctx, keyRacePrefix, opts)
	for _, key := range []string{keyCandidatesIndex, keyRacesIndex, keyRaceCategories, keyRSSFeeds, keyFeaturedArticles, keyLastUpdated} {
		s.store.Remove(ctx, key, opts)
	}
	s.logger.Info("dataset cache cleared")
}
