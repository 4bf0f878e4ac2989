package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/thinkscotty/adalchemy/internal/creative"
)

type videoRequest struct {
	Prompt         string `json:"prompt" validate:"required"`
	TargetAudience string `json:"target_audience" validate:"required"`
	BrandContext   string `json:"brand_context"`
	Duration       string `json:"duration" validate:"omitempty,oneof=5s 8s 15s 30s 60s"`
	AspectRatio    string `json:"aspect_ratio" validate:"omitempty,oneof=16:9 9:16 1:1"`
}

func (s *Server) handleGenerateVideo(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if err := decodeAndValidate(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := s.deps.Creative.GenerateVideo(r.Context(), creative.VideoRequest{
		Prompt:         req.Prompt,
		TargetAudience: req.TargetAudience,
		BrandContext:   req.BrandContext,
		Duration:       req.Duration,
		AspectRatio:    req.AspectRatio,
	})
	respondOutcome(w, "result", out)
}

type imageRequest struct {
	Prompt           string   `json:"prompt" validate:"required"`
	TargetAudience   string   `json:"target_audience" validate:"required"`
	BrandContext     string   `json:"brand_context"`
	StylePreferences []string `json:"style_preferences"`
	AspectRatio      string   `json:"aspect_ratio" validate:"omitempty,oneof=1:1 16:9 9:16 4:3 3:4"`
	Count            int      `json:"count" validate:"omitempty,min=1,max=10"`
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := s.deps.Creative.GenerateImage(r.Context(), creative.ImageRequest{
		Prompt:           req.Prompt,
		TargetAudience:   req.TargetAudience,
		BrandContext:     req.BrandContext,
		StylePreferences: req.StylePreferences,
		AspectRatio:      req.AspectRatio,
		Count:            req.Count,
	})
	respondOutcome(w, "result", out)
}

type campaignRequest struct {
	Brief          string   `json:"campaign_brief" validate:"required"`
	TargetAudience string   `json:"target_audience" validate:"required"`
	BrandContext   string   `json:"brand_context"`
	CampaignType   string   `json:"campaign_type" validate:"omitempty,oneof=video image mixed"`
	BudgetTier     string   `json:"budget_tier" validate:"omitempty,oneof=small medium large"`
	Platforms      []string `json:"platforms"`
}

func (s *Server) handleGenerateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := decodeAndValidate(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := s.deps.Creative.GenerateCampaign(r.Context(), creative.CampaignRequest{
		Brief:          req.Brief,
		TargetAudience: req.TargetAudience,
		BrandContext:   req.BrandContext,
		CampaignType:   req.CampaignType,
		BudgetTier:     req.BudgetTier,
		Platforms:      req.Platforms,
	})
	respondOutcome(w, "campaign", out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := creative.DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.deps.Creative.History(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to load generation history", "error", err)
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "success",
		"history": records,
		"count":   len(records),
	})
}
