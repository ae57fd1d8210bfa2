package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/peachstatevotes/election-data-api/internal/core/domain/news"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	"github.com/peachstatevotes/election-data-api/internal/infrastructure/cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

const rssKeyPrefix = "rss-"

// feedTagAll marks general-interest feeds that match every race filter.
const feedTagAll = "all"

// Google News appends " - Source Name" to item titles.
var sourceSuffixRe = regexp.MustCompile(`\s-\s[^-]+$`)

// NewsService merges configured feeds into deduplicated article lists.
// Headlines are best-effort: every failure path degrades to stale cache and
// then to an empty list, never to an error the caller has to handle.
type NewsService struct {
	store  *cache.Store
	proxy  ports.FeedProxy
	rssTTL time.Duration
	logger *logrus.Logger
}

func NewNewsService(store *cache.Store, proxy ports.FeedProxy, rssTTL time.Duration, logger *logrus.Logger) *NewsService {
	return &NewsService{
		store:  store,
		proxy:  proxy,
		rssTTL: rssTTL,
		logger: logger,
	}
}

var _ ports.NewsService = (*NewsService)(nil)

func (s *NewsService) opts() ports.CacheOptions {
	return ports.CacheOptions{Duration: s.rssTTL, Storage: ports.CacheDurable}
}

// FetchFeed returns the articles of one feed, from cache when fresh. On any
// fetch or parse failure it serves the last cached value regardless of age —
// the one place in the system where an expired entry is deliberately
// surfaced — and an empty list when no cached value exists.
func (s *NewsService) FetchFeed(ctx context.Context, feed news.Feed) []news.Article {
	key := rssKeyPrefix + feed.ID

	if cached, ok := cache.Get[[]news.Article](ctx, s.store, key, s.opts()); ok {
		return cached
	}

	articles, err := s.refreshFeed(ctx, feed, key)
	if err == nil {
		return articles
	}
	s.logger.WithField("feed", feed.Name).WithError(err).Error("error fetching feed")

	stale := s.opts()
	stale.Duration = cache.NoExpiry
	if cached, ok := cache.Get[[]news.Article](ctx, s.store, key, stale); ok {
		s.logger.WithField("feed", feed.Name).Info("using stale cache for feed")
		return cached
	}
	return []news.Article{}
}

func (s *NewsService) refreshFeed(ctx context.Context, feed news.Feed, key string) ([]news.Article, error) {
	s.logger.WithField("feed", feed.Name).Info("fetching feed via proxy")

	resp, err := s.proxy.Fetch(ctx, feed.URL)
	if err != nil {
		return nil, err
	}
	if resp.Status != "ok" {
		return nil, &news.UpstreamError{Feed: feed.Name, Message: resp.Message}
	}

	articles := make([]news.Article, 0, len(resp.Items))
	for _, item := range resp.Items {
		source := item.Source
		if source == "" {
			source = item.Author
		}
		if source == "" {
			source = feed.Name
		}
		articles = append(articles, news.Article{
			Title:       cleanSourceSuffix(item.Title),
			Link:        item.Link,
			PubDate:     item.PubDate,
			Source:      source,
			Description: stripHTML(item.Description),
		})
	}

	// An empty result set is more often a transient aggregator hiccup than
	// real silence; keep the previous cache entry in that case.
	if len(articles) > 0 {
		cache.Set(ctx, s.store, key, articles, s.opts())
	}
	return articles, nil
}

// FetchMultipleFeeds fetches all feeds concurrently with a fault-tolerant
// join — one feed's failure never aborts the batch — then merges: newest
// first, deduplicated by exact title (first occurrence wins), truncated to
// limit (0 or negative means unlimited).
func (s *NewsService) FetchMultipleFeeds(ctx context.Context, feeds []news.Feed, limit int) []news.Article {
	results := make([][]news.Article, len(feeds))
	var wg sync.WaitGroup
	for i, feed := range feeds {
		i, feed := i, feed
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.FetchFeed(ctx, feed)
		}()
	}
	wg.Wait()

	var all []news.Article
	for _, articles := range results {
		all = append(all, articles...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return parsePubDate(all[i].PubDate).After(parsePubDate(all[j].PubDate))
	})

	all = dedupeByTitle(all)

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// FetchByCategory aggregates the feeds configured for one category.
func (s *NewsService) FetchByCategory(ctx context.Context, feeds []news.Feed, category string, limit int) []news.Article {
	var matching []news.Feed
	for _, f := range feeds {
		if f.Category == category {
			matching = append(matching, f)
		}
	}
	return s.FetchMultipleFeeds(ctx, matching, limit)
}

// FetchByRaceFilter aggregates feeds for one contest: feeds whose RaceFilter
// matches exactly, plus general-interest feeds tagged "all".
func (s *NewsService) FetchByRaceFilter(ctx context.Context, feeds []news.Feed, raceFilter string, limit int) []news.Article {
	var matching []news.Feed
	for _, f := range feeds {
		if f.RaceFilter == raceFilter || hasTag(f.RaceTags, feedTagAll) {
			matching = append(matching, f)
		}
	}
	return s.FetchMultipleFeeds(ctx, matching, limit)
}

// FetchByRaceTags aggregates feeds for a category view: feeds tagged "all",
// or whose tag set intersects the given tags.
func (s *NewsService) FetchByRaceTags(ctx context.Context, feeds []news.Feed, tags []string, limit int) []news.Article {
	var matching []news.Feed
	for _, f := range feeds {
		if hasTag(f.RaceTags, feedTagAll) || intersects(f.RaceTags, tags) {
			matching = append(matching, f)
		}
	}
	return s.FetchMultipleFeeds(ctx, matching, limit)
}

// FetchByCandidateID aggregates feeds associated with one candidate.
func (s *NewsService) FetchByCandidateID(ctx context.Context, feeds []news.Feed, candidateID string, limit int) []news.Article {
	var matching []news.Feed
	for _, f := range feeds {
		if f.CandidateID == candidateID {
			matching = append(matching, f)
		}
	}
	return s.FetchMultipleFeeds(ctx, matching, limit)
}

// ClearCache drops every cached feed.
func (s *NewsService) ClearCache(ctx context.Context) {
	s.store.ClearByPrefix(ctx, rssKeyPrefix, s.opts())
	s.logger.Info("RSS cache cleared")
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, t := range a {
		if hasTag(b, t) {
			return true
		}
	}
	return false
}

func dedupeByTitle(articles []news.Article) []news.Article {
	seen := make(map[string]struct{}, len(articles))
	out := articles[:0]
	for _, a := range articles {
		if _, dup := seen[a.Title]; dup {
			continue
		}
		seen[a.Title] = struct{}{}
		out = append(out, a)
	}
	return out
}

// cleanSourceSuffix strips the trailing " - Source Name" Google News appends
// to item titles.
func cleanSourceSuffix(title string) string {
	return strings.TrimSpace(sourceSuffixRe.ReplaceAllString(title, ""))
}

// pubDateLayouts covers the formats feeds actually emit.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
}

// parsePubDate is lenient: unparseable dates sort last rather than failing
// the merge.
func parsePubDate(s string) time.Time {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// stripHTML reduces item descriptions to their text content.
func stripHTML(s string) string {
	if s == "" || !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}
