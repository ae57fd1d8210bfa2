package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/peachstatevotes/election-data-api/internal/application/services"
)

// getCandidateFinancials returns the normalized summary for one candidate.
// A candidate with no resolvable filings gets a 200 with a null summary:
// "no data yet" is a routine state, not an error.
func (s *Server) getCandidateFinancials(c echo.Context) error {
	ctx := c.Request().Context()
	candidateID := c.Param("id")

	all, err := s.datasetSvc.GetAllCandidates(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	for _, candidate := range all.Candidates {
		if candidate.ID != candidateID {
			continue
		}
		summary, err := s.financeSvc.GetCandidateFinancials(ctx, candidate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		return c.JSON(http.StatusOK, map[string]any{
			"summary": summary,
			"display": services.FinancialSummaryText(summary),
		})
	}

	return echo.NewHTTPError(http.StatusNotFound, "candidate not found: "+candidateID)
}

func (s *Server) getRaceFinancials(c echo.Context) error {
	ctx := c.Request().Context()
	raceFilter := c.Param("raceFilter")

	candidates, err := s.datasetSvc.GetCandidatesByRace(ctx, raceFilter)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	summary, err := s.financeSvc.GetRaceFinancials(ctx, raceFilter, candidates.Candidates)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}
