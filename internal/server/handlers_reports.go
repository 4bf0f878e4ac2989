package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/thinkscotty/adalchemy/internal/report"
	"github.com/thinkscotty/adalchemy/internal/search"
)

type reportRequest struct {
	BrandName      string   `json:"brand_name"`
	TargetAudience string   `json:"target_audience" validate:"required"`
	CampaignBrief  string   `json:"campaign_brief" validate:"required"`
	ContentSamples []string `json:"content_samples" validate:"max=20"`
}

func (s *Server) handleCulturalReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeAndValidate(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := s.deps.Reports.CulturalAnalysis(r.Context(), report.Request{
		BrandName:      req.BrandName,
		TargetAudience: req.TargetAudience,
		CampaignBrief:  req.CampaignBrief,
		ContentSamples: req.ContentSamples,
	})
	respondOutcome(w, "report", out)
}

type strategyReportRequest struct {
	Brief          string `json:"brief" validate:"required"`
	TargetAudience string `json:"target_audience" validate:"required"`
	BrandContext   string `json:"brand_context"`
	BudgetTier     string `json:"budget_tier" validate:"omitempty,oneof=small medium large"`
}

func (s *Server) handleStrategyReport(w http.ResponseWriter, r *http.Request) {
	var req strategyReportRequest
	if err := decodeAndValidate(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := s.deps.Reports.CreativeStrategy(r.Context(), report.StrategyRequest{
		Brief:          req.Brief,
		TargetAudience: req.TargetAudience,
		BrandContext:   req.BrandContext,
		BudgetTier:     req.BudgetTier,
	})
	respondOutcome(w, "report", out)
}

type searchQuery struct {
	Query string `json:"q" validate:"required,max=400"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.deps.Search == nil {
		jsonError(w, http.StatusServiceUnavailable, "web search is not configured")
		return
	}
	q := searchQuery{Query: r.URL.Query().Get("q")}
	if err := validateStruct(&q); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, backend, err := s.deps.Search.Search(r.Context(), q.Query)
	if err != nil && !errors.Is(err, search.ErrNoResults) {
		slog.Error("Web search failed", "query", q.Query, "error", err)
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []search.Result{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "success",
		"query":   q.Query,
		"backend": backend,
		"results": results,
	})
}
