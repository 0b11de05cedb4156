package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"benign/pkg/study"
)

func (s *Server) handleGetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service":      "Humor Study Results API",
		"status":       "ok",
		"generations":  len(s.Data.Generations),
		"explanations": len(s.Data.Explanations),
		"probes":       len(s.Data.Surprises),
	})
}

// GET /api/jokes?model=&category=&temperature=&valid=&rated=
func (s *Server) handleListJokes(c echo.Context) error {
	model := c.QueryParam("model")
	category := c.QueryParam("category")

	var temperature *float64
	if raw := c.QueryParam("temperature"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid temperature")
		}
		temperature = &t
	}
	var valid, rated *bool
	for param, dst := range map[string]**bool{"valid": &valid, "rated": &rated} {
		if raw := c.QueryParam(param); raw != "" {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid "+param)
			}
			*dst = &b
		}
	}

	matched := make([]study.Generation, 0)
	for _, g := range s.Data.Generations {
		if model != "" && g.Model != model {
			continue
		}
		if category != "" && g.Category != category {
			continue
		}
		if temperature != nil && g.Temperature != *temperature {
			continue
		}
		if valid != nil && g.Structure().Valid != *valid {
			continue
		}
		if rated != nil && (g.Ratings.Funniness != nil) != *rated {
			continue
		}
		matched = append(matched, g)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"count": len(matched),
		"jokes": matched,
	})
}

// GET /api/jokes/:id
func (s *Server) handleGetJoke(c echo.Context) error {
	id := c.Param("id")
	for _, g := range s.Data.Generations {
		if g.ConditionID == id {
			return c.JSON(http.StatusOK, g)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "no joke with id "+id)
}
