// Package server exposes the study's results over a small read-only HTTP
// API: the raw generation records plus the aggregated analyses. It never
// calls a provider; all data comes from files a prior run wrote.
package server

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"benign/pkg/config"
	"benign/pkg/features"
	"benign/pkg/flight"
	"benign/pkg/study"
	"benign/pkg/utils"
)

// Data is the loaded study output the server serves from.
type Data struct {
	Generations  []study.Generation
	Explanations []study.Explanation
	Surprises    []study.Surprise
}

// LoadData reads the most recent result files under the configured
// experiment directories. Missing files leave their slice empty; a server
// over a partial run is still useful.
func LoadData(cfg *config.Config) (*Data, error) {
	data := &Data{}

	if path := utils.Latest(cfg.Paths.PilotDir, "pilot_results", ".json"); path != "" {
		gens, err := utils.Load[[]study.Generation](path)
		if err != nil {
			return nil, err
		}
		data.Generations = gens
		log.Info("loaded generations", "path", path, "count", len(gens))
	}
	if path := utils.Latest(cfg.Paths.ExplanationsDir, "explanations", ".json"); path != "" {
		exps, err := utils.Load[[]study.Explanation](path)
		if err != nil {
			return nil, err
		}
		data.Explanations = exps
		log.Info("loaded explanations", "path", path, "count", len(exps))
	}
	if path := utils.Latest(cfg.Paths.OutputsDir, "surprise_probes", ".json"); path != "" {
		probes, err := utils.Load[[]study.Surprise](path)
		if err != nil {
			return nil, err
		}
		data.Surprises = probes
		log.Info("loaded surprise probes", "path", path, "count", len(probes))
	}
	return data, nil
}

type Server struct {
	Echo  *echo.Echo
	Data  *Data
	Coder *features.Coder

	// summaries are derived from static data, so each is computed once
	// and shared across requests.
	summaries *flight.Cache[string, summaryBundle]
}

type summaryBundle struct {
	Structural study.StructuralSummary
	Feature    study.FeatureSummary
	Surprise   study.SurpriseSummary
	Ratings    study.RatingsSummary
}

func NewServer(data *Data) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	s := &Server{
		Echo:  e,
		Data:  data,
		Coder: features.NewDefaultCoder(),
	}
	s.summaries = flight.NewCache(func(string) (summaryBundle, error) {
		return summaryBundle{
			Structural: study.SummarizeStructure(study.AnalyzeStructure(data.Generations)),
			Feature:    study.SummarizeFeatures(study.AnalyzeExplanations(data.Explanations, s.Coder), features.Kinds()),
			Surprise:   study.SummarizeSurprise(data.Surprises),
			Ratings:    study.SummarizeRatings(data.Generations, data.Surprises),
		}, nil
	})

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)

	api := s.Echo.Group("/api")
	api.GET("/jokes", s.handleListJokes)       // filterable generation records
	api.GET("/jokes/:id", s.handleGetJoke)     // one record by condition id
	api.GET("/summary/structure", s.handleStructureSummary)
	api.GET("/summary/features", s.handleFeatureSummary)
	api.GET("/summary/surprise", s.handleSurpriseSummary)
	api.GET("/summary/ratings", s.handleRatingsSummary)
	api.GET("/report", s.handleReport) // plain-text comprehensive report
}

func (s *Server) Start(addr string) error {
	log.Info("results server listening", "addr", addr)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down results server")
	return s.Echo.Shutdown(ctx)
}
