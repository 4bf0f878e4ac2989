package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thinkscotty/adalchemy/internal/culture"
)

type analyzeRequest struct {
	Content        string `json:"content" validate:"required"`
	TargetAudience string `json:"target_audience" validate:"required"`
	BrandContext   string `json:"brand_context"`
	AnalysisType   string `json:"analysis_type" validate:"omitempty,oneof=content campaign brand"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := s.deps.Culture.Analyze(r.Context(), culture.AnalyzeRequest{
		Content:      req.Content,
		Audience:     req.TargetAudience,
		BrandContext: req.BrandContext,
	})
	respondOutcome(w, "analysis", out)
}

type trendsQuery struct {
	Audience string `json:"audience" validate:"required"`
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	q := trendsQuery{Audience: r.URL.Query().Get("audience")}
	if err := validateStruct(&q); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondOutcome(w, "trends", s.deps.Culture.Trends(r.Context(), q.Audience))
}

func (s *Server) handleAudience(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")
	respondOutcome(w, "profile", s.deps.Culture.Audience(r.Context(), segment))
}

type compatibilityQuery struct {
	BrandValues     string `json:"brand_values" validate:"required"`
	AudienceSegment string `json:"audience_segment" validate:"required"`
}

func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	q := compatibilityQuery{
		BrandValues:     r.URL.Query().Get("brand_values"),
		AudienceSegment: r.URL.Query().Get("audience_segment"),
	}
	if err := validateStruct(&q); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondOutcome(w, "compatibility", s.deps.Culture.Compatibility(r.Context(), q.BrandValues, q.AudienceSegment))
}

type predictRequest struct {
	Concept        string `json:"concept" validate:"required"`
	TargetAudience string `json:"target_audience" validate:"required"`
	Platform       string `json:"platform"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := decodeAndValidate(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Platform == "" {
		req.Platform = "general"
	}
	out := s.deps.Culture.PredictPerformance(r.Context(), req.Concept, req.TargetAudience, req.Platform)
	respondOutcome(w, "prediction", out)
}
