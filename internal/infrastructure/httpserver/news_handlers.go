package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/peachstatevotes/election-data-api/internal/core/domain/news"
)

// listNews aggregates configured feeds. Exactly one of the candidate / race /
// tags / category query parameters selects the filtering mode; with none the
// whole feed set is merged. News aggregation never fails: degraded upstreams
// yield fewer (or zero) articles, not an error response.
func (s *Server) listNews(c echo.Context) error {
	ctx := c.Request().Context()

	feedConfig, err := s.datasetSvc.GetRSSFeeds(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	var articles []news.Article
	switch {
	case c.QueryParam("candidate") != "":
		articles = s.newsSvc.FetchByCandidateID(ctx, feedConfig.Feeds, c.QueryParam("candidate"), limit)
	case c.QueryParam("race") != "":
		articles = s.newsSvc.FetchByRaceFilter(ctx, feedConfig.Feeds, c.QueryParam("race"), limit)
	case c.QueryParam("tags") != "":
		tags := strings.Split(c.QueryParam("tags"), ",")
		articles = s.newsSvc.FetchByRaceTags(ctx, feedConfig.Feeds, tags, limit)
	case c.QueryParam("category") != "":
		articles = s.newsSvc.FetchByCategory(ctx, feedConfig.Feeds, c.QueryParam("category"), limit)
	default:
		articles = s.newsSvc.FetchMultipleFeeds(ctx, feedConfig.Feeds, limit)
	}

	return c.JSON(http.StatusOK, map[string]any{"articles": articles})
}

func (s *Server) getFeedConfig(c echo.Context) error {
	feedConfig, err := s.datasetSvc.GetRSSFeeds(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, feedConfig)
}

func (s *Server) getFeaturedArticles(c echo.Context) error {
	resp, err := s.datasetSvc.GetFeaturedArticles(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// fetchRSS exposes the RSS-to-JSON conversion directly, mirroring the
// envelope contract of the standalone proxy deployments.
func (s *Server) fetchRSS(c echo.Context) error {
	feedURL := c.QueryParam("url")
	if feedURL == "" {
		return c.JSON(http.StatusBadRequest, news.ProxyResponse{
			Status:  "error",
			Message: `Missing "url" query parameter`,
		})
	}

	envelope, err := s.feedProxy.Fetch(c.Request().Context(), feedURL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, news.ProxyResponse{
			Status:  "error",
			Message: err.Error(),
		})
	}
	if envelope.Status != "ok" {
		return c.JSON(http.StatusInternalServerError, envelope)
	}
	return c.JSON(http.StatusOK, envelope)
}
