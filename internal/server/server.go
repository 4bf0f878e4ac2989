package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thinkscotty/adalchemy/internal/auth"
	"github.com/thinkscotty/adalchemy/internal/config"
	"github.com/thinkscotty/adalchemy/internal/creative"
	"github.com/thinkscotty/adalchemy/internal/culture"
	"github.com/thinkscotty/adalchemy/internal/report"
	"github.com/thinkscotty/adalchemy/internal/search"
)

// Culture is the cultural intelligence surface. *culture.Service satisfies it.
type Culture interface {
	Analyze(ctx context.Context, req culture.AnalyzeRequest) culture.Outcome[culture.Analysis]
	Audience(ctx context.Context, segment string) culture.Outcome[culture.AudienceProfile]
	Trends(ctx context.Context, audience string) culture.Outcome[culture.TrendReport]
	Compatibility(ctx context.Context, brandContext, audience string) culture.Outcome[culture.Compatibility]
	PredictPerformance(ctx context.Context, concept, audience, platform string) culture.Outcome[culture.Prediction]
}

// Creative runs generation workflows. *creative.Orchestrator satisfies it.
type Creative interface {
	GenerateVideo(ctx context.Context, req creative.VideoRequest) culture.Outcome[creative.VideoGeneration]
	GenerateImage(ctx context.Context, req creative.ImageRequest) culture.Outcome[creative.ImageGeneration]
	GenerateCampaign(ctx context.Context, req creative.CampaignRequest) culture.Outcome[creative.CampaignStrategy]
	History(ctx context.Context, limit int) ([]creative.Record, error)
}

// Reports builds cultural and creative strategy reports. *report.Generator satisfies it.
type Reports interface {
	CulturalAnalysis(ctx context.Context, req report.Request) culture.Outcome[report.Report]
	CreativeStrategy(ctx context.Context, req report.StrategyRequest) culture.Outcome[report.StrategyReport]
}

// Searcher is the web search surface. *search.Service satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, string, error)
}

// Deps are the services behind the HTTP API. Search may be nil.
type Deps struct {
	Culture  Culture
	Creative Creative
	Reports  Reports
	Search   Searcher
}

type Server struct {
	cfg     config.Config
	deps    Deps
	keys    *auth.KeyChecker
	version string
	httpSrv *http.Server
}

func New(cfg config.Config, deps Deps, version string) *Server {
	return &Server{
		cfg:     cfg,
		deps:    deps,
		keys:    auth.NewKeyChecker(cfg.Server.APIKeyHash),
		version: version,
	}
}

// Start sets up routes and starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	slog.Info("Starting server", "addr", addr, "api_key_required", s.keys.Enabled())
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Handler builds the router with its middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	public := strings.TrimSuffix(s.cfg.Media.PublicPath, "/")
	if public != "" {
		r.Handle(public+"/*", http.StripPrefix(public+"/", http.FileServer(http.Dir(s.cfg.Media.OutputDir))))
	}

	r.Route("/api", func(r chi.Router) {
		if s.cfg.Server.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(s.cfg.Server.RateLimitRequests, s.cfg.RateLimitWindow()))
		}
		r.Use(s.requireAPIKey)

		r.Route("/cultural", func(r chi.Router) {
			if d := s.cfg.ContentTimeout(); d > 0 {
				r.Use(chimiddleware.Timeout(d))
			}
			r.Post("/analyze", s.handleAnalyze)
			r.Get("/trends", s.handleTrends)
			r.Get("/audience/{segment}", s.handleAudience)
			r.Get("/compatibility-score", s.handleCompatibility)
			r.Post("/predict", s.handlePredict)
		})

		r.Route("/creative", func(r chi.Router) {
			r.Post("/video/generate", s.handleGenerateVideo)
			r.Post("/image/generate", s.handleGenerateImage)
			r.Post("/campaign", s.handleGenerateCampaign)
			r.Get("/history", s.handleHistory)
		})

		r.Post("/reports/cultural", s.handleCulturalReport)
		r.Post("/reports/strategy", s.handleStrategyReport)
		r.Get("/search", s.handleSearch)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "adalchemy",
		"version":   s.version,
		"timestamp": time.Now().UTC(),
	})
}
