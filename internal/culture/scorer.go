package culture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thinkscotty/adalchemy/internal/ai"
	"github.com/thinkscotty/adalchemy/internal/metrics"
)

const (
	fallbackContentScore     = 75.0
	fallbackContentAlignment = 70.0
)

// ContentAnalyzer is the generative call behind the Content Scorer.
// *ai.Client satisfies it.
type ContentAnalyzer interface {
	AnalyzeContent(ctx context.Context, content, audience string) (*ai.ContentAnalysis, error)
}

// ContentScorer asks a generative model for a cultural score. It never retries.
type ContentScorer struct {
	analyzer ContentAnalyzer
	now      func() time.Time
}

func NewContentScorer(analyzer ContentAnalyzer) *ContentScorer {
	return &ContentScorer{analyzer: analyzer, now: time.Now}
}

// Score returns Degraded with FallbackContentScore when the call or its
// decoding fails, and Fatal only for empty content.
func (s *ContentScorer) Score(ctx context.Context, content, audience string) Outcome[ContentScore] {
	if strings.TrimSpace(content) == "" {
		return Fatal[ContentScore]("content is empty")
	}
	if s.analyzer == nil {
		return s.degraded("no content analyzer configured")
	}

	analysis, err := s.analyzer.AnalyzeContent(ctx, content, audience)
	if err != nil {
		slog.Warn("Content scoring failed, using fallback", "audience", audience, "error", err)
		return s.degraded(fmt.Sprintf("content scoring failed: %v", err))
	}

	score := defaultContentScore
	if analysis.CulturalScore != nil {
		score = *analysis.CulturalScore
	}
	alignment := fallbackContentAlignment
	if analysis.AudienceAlignment != nil {
		alignment = *analysis.AudienceAlignment
	}

	return OK(ContentScore{
		Score:             clampScore(score),
		Insights:          nonNil(analysis.Insights),
		Recommendations:   nonNil(analysis.Recommendations),
		PotentialIssues:   nonNil(analysis.PotentialIssues),
		Strengths:         nonNil(analysis.Strengths),
		AudienceAlignment: clampScore(alignment),
		AnalyzedAt:        s.now().UTC(),
	})
}

func (s *ContentScorer) degraded(reason string) Outcome[ContentScore] {
	metrics.DegradedOutcomes.WithLabelValues("content_scorer").Inc()
	fb := FallbackContentScore()
	fb.AnalyzedAt = s.now().UTC()
	return Degraded(fb, reason)
}

// FallbackContentScore is the fixed result used when the model is unavailable.
func FallbackContentScore() ContentScore {
	return ContentScore{
		Score:             fallbackContentScore,
		Insights:          []string{"Content appears culturally appropriate", "Consider adding more diverse perspectives"},
		Recommendations:   []string{"Enhance cultural authenticity", "Include diverse representation"},
		PotentialIssues:   []string{"Limited cultural context available"},
		Strengths:         []string{"Professional presentation", "Clear messaging"},
		AudienceAlignment: fallbackContentAlignment,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
