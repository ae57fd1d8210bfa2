package ports

import (
	"context"

	"github.com/peachstatevotes/election-data-api/internal/core/domain/election"
	"github.com/peachstatevotes/election-data-api/internal/core/domain/news"
)

// DatasetService reads the static election dataset published on the content
// delivery endpoint. Errors propagate to the caller: a partial dataset is
// considered unusable, so there is no silent fallback at this layer.
type DatasetService interface {
	GetAllCandidates(ctx context.Context) (*election.CandidatesResponse, error)
	GetCandidatesByRace(ctx context.Context, raceFilter string) (*election.CandidatesResponse, error)
	GetAllRaces(ctx context.Context) (*election.RacesResponse, error)
	GetRaceByID(ctx context.Context, raceID string) (*election.Race, error)
	GetCategories(ctx context.Context) (*election.CategoriesResponse, error)
	GetRSSFeeds(ctx context.Context) (*news.FeedConfig, error)
	GetFeaturedArticles(ctx context.Context) (*news.FeaturedArticlesResponse, error)
	GetLastUpdated(ctx context.Context) (*election.Metadata, error)
	ClearCache(ctx context.Context)
}
