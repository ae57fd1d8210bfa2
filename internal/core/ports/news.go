package ports

import (
	"context"

	"github.com/peachstatevotes/election-data-api/internal/core/domain/news"
)

// FeedProxy turns a remote feed URL into the structured {status, items}
// envelope. Implementations may parse feeds in-process or delegate to an
// external RSS-to-JSON deployment.
type FeedProxy interface {
	Fetch(ctx context.Context, feedURL string) (*news.ProxyResponse, error)
}

// NewsService aggregates configured feeds into merged, deduplicated article
// lists. It never returns an error: per-feed failures fall back to stale
// cache, then to an empty list — headlines are best-effort by design.
type NewsService interface {
	FetchFeed(ctx context.Context, feed news.Feed) []news.Article
	FetchMultipleFeeds(ctx context.Context, feeds []news.Feed, limit int) []news.Article
	FetchByCategory(ctx context.Context, feeds []news.Feed, category string, limit int) []news.Article
	// FetchByRaceFilter matches feeds whose RaceFilter equals raceFilter,
	// plus feeds tagged "all". FetchByRaceTags matches feeds tagged "all" or
	// whose tag set intersects tags.
	FetchByRaceFilter(ctx context.Context, feeds []news.Feed, raceFilter string, limit int) []news.Article
	FetchByRaceTags(ctx context.Context, feeds []news.Feed, tags []string, limit int) []news.Article
	FetchByCandidateID(ctx context.Context, feeds []news.Feed, candidateID string, limit int) []news.Article
	ClearCache(ctx context.Context)
}
