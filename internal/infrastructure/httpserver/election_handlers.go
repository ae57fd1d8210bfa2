package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/peachstatevotes/election-data-api/internal/core/domain/election"
)

func (s *Server) listCandidates(c echo.Context) error {
	ctx := c.Request().Context()

	if raceFilter := c.QueryParam("race"); raceFilter != "" {
		resp, err := s.datasetSvc.GetCandidatesByRace(ctx, raceFilter)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		return c.JSON(http.StatusOK, resp)
	}

	resp, err := s.datasetSvc.GetAllCandidates(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) listRaces(c echo.Context) error {
	resp, err := s.datasetSvc.GetAllRaces(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getRace(c echo.Context) error {
	race, err := s.datasetSvc.GetRaceByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, election.ErrRaceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, race)
}

func (s *Server) listCategories(c echo.Context) error {
	resp, err := s.datasetSvc.GetCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getLastUpdated(c echo.Context) error {
	meta, err := s.datasetSvc.GetLastUpdated(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, meta)
}

func (s *Server) clearCache(c echo.Context) error {
	ctx := c.Request().Context()
	s.datasetSvc.ClearCache(ctx)
	s.newsSvc.ClearCache(ctx)
	s.financeSvc.ClearCache(ctx)
	return c.JSON(http.StatusOK, map[string]string{"status": "cache cleared"})
}
