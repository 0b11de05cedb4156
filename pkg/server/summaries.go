package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"benign/pkg/study"
)

const summaryKey = "all"

// GET /api/summary/structure
func (s *Server) handleStructureSummary(c echo.Context) error {
	bundle, err := s.summaries.Do(summaryKey)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bundle.Structural)
}

// GET /api/summary/features
func (s *Server) handleFeatureSummary(c echo.Context) error {
	bundle, err := s.summaries.Do(summaryKey)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bundle.Feature)
}

// GET /api/summary/surprise
func (s *Server) handleSurpriseSummary(c echo.Context) error {
	bundle, err := s.summaries.Do(summaryKey)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bundle.Surprise)
}

// GET /api/summary/ratings
func (s *Server) handleRatingsSummary(c echo.Context) error {
	bundle, err := s.summaries.Do(summaryKey)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bundle.Ratings)
}

// GET /api/report
func (s *Server) handleReport(c echo.Context) error {
	bundle, err := s.summaries.Do(summaryKey)
	if err != nil {
		return err
	}
	report := study.RenderComprehensiveReport(bundle.Structural, bundle.Feature, bundle.Surprise, bundle.Ratings)
	return c.String(http.StatusOK, report)
}
