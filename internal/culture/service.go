package culture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/thinkscotty/adalchemy/internal/ai"
	"github.com/thinkscotty/adalchemy/internal/metrics"
)

// PlatformOptimizer adapts a concept to a platform. *ai.Client satisfies it.
type PlatformOptimizer interface {
	OptimizeForPlatform(ctx context.Context, content, platform string) (*ai.PlatformOptimization, error)
}

// AnalyzeRequest is the input to a full cultural analysis.
type AnalyzeRequest struct {
	Content      string
	Audience     string
	BrandContext string
}

// Service wires the resolver, trend extractor, scorer and aggregator into the
// operations the rest of the application calls. Its operations always return
// a value; degraded paths are tagged rather than surfaced as errors.
type Service struct {
	resolver  *ProfileResolver
	trends    *TrendExtractor
	scorer    *ContentScorer
	optimizer PlatformOptimizer
	now       func() time.Time
}

func NewService(resolver *ProfileResolver, trends *TrendExtractor, scorer *ContentScorer, optimizer PlatformOptimizer) *Service {
	return &Service{
		resolver:  resolver,
		trends:    trends,
		scorer:    scorer,
		optimizer: optimizer,
		now:       time.Now,
	}
}

// Analyze resolves the audience and scores the content concurrently, then
// aggregates. Panics and unusable inputs yield FallbackAnalysis as Degraded.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (out Outcome[Analysis]) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Cultural analysis panicked, using fallback", "audience", req.Audience, "panic", r)
			out = s.fallbackAnalysis(req.Audience, fmt.Sprintf("analysis panicked: %v", r))
		}
	}()

	var (
		wg       sync.WaitGroup
		profile  Outcome[AudienceProfile]
		content  Outcome[ContentScore]
		panicked = make(chan any, 2)
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer recoverInto(panicked)
		profile = s.resolver.Resolve(ctx, req.Audience)
	}()
	go func() {
		defer wg.Done()
		defer recoverInto(panicked)
		content = s.scorer.Score(ctx, req.Content, req.Audience)
	}()
	wg.Wait()
	close(panicked)

	if r, ok := <-panicked; ok {
		slog.Error("Cultural analysis worker panicked, using fallback", "audience", req.Audience, "panic", r)
		return s.fallbackAnalysis(req.Audience, fmt.Sprintf("analysis worker panicked: %v", r))
	}
	if profile.IsFatal() || content.IsFatal() {
		return s.fallbackAnalysis(req.Audience, joinReasons(profile.Reason, content.Reason))
	}

	var compat *Compatibility
	if strings.TrimSpace(req.BrandContext) != "" {
		c := ComputeCompatibility(req.BrandContext, profile.Value)
		compat = &c
	}

	analysis := Aggregate(profile.Value, content.Value, compat, s.now())
	slog.Info("Cultural analysis completed", "audience", req.Audience, "score", analysis.CulturalScore,
		"profile_source", profile.Value.Source)

	if reason := joinReasons(profile.Reason, content.Reason); reason != "" {
		return Degraded(analysis, reason)
	}
	return OK(analysis)
}

func recoverInto(ch chan<- any) {
	if r := recover(); r != nil {
		ch <- r
	}
}

func (s *Service) fallbackAnalysis(audience, reason string) Outcome[Analysis] {
	metrics.DegradedOutcomes.WithLabelValues("analysis").Inc()
	return Degraded(FallbackAnalysis(audience, s.now()), reason)
}

// Audience resolves a single audience descriptor.
func (s *Service) Audience(ctx context.Context, segment string) Outcome[AudienceProfile] {
	return s.resolver.Resolve(ctx, segment)
}

// Trends resolves the audience and extracts its trending topics.
func (s *Service) Trends(ctx context.Context, audience string) Outcome[TrendReport] {
	profile := s.resolver.Resolve(ctx, audience)
	if profile.IsFatal() {
		return Fatal[TrendReport](profile.Reason)
	}
	report := s.trends.Extract(ctx, profile.Value)
	if report.IsOK() && profile.IsDegraded() {
		return Degraded(report.Value, profile.Reason)
	}
	return report
}

// Compatibility scores a brand description against a resolved audience.
func (s *Service) Compatibility(ctx context.Context, brandContext, audience string) Outcome[Compatibility] {
	if strings.TrimSpace(brandContext) == "" {
		return Fatal[Compatibility]("brand context is empty")
	}
	profile := s.resolver.Resolve(ctx, audience)
	if profile.IsFatal() {
		return Fatal[Compatibility](profile.Reason)
	}
	c := ComputeCompatibility(brandContext, profile.Value)
	if profile.IsDegraded() {
		return Degraded(c, profile.Reason)
	}
	return OK(c)
}

// PredictPerformance analyses a concept and projects its performance on platform.
func (s *Service) PredictPerformance(ctx context.Context, concept, audience, platform string) (out Outcome[Prediction]) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Performance prediction panicked, using fallback", "platform", platform, "panic", r)
			metrics.DegradedOutcomes.WithLabelValues("predictor").Inc()
			out = Degraded(FallbackPrediction(s.now()), fmt.Sprintf("prediction panicked: %v", r))
		}
	}()

	analysis := s.Analyze(ctx, AnalyzeRequest{Content: concept, Audience: audience})
	platformScore, reason := s.platformScore(ctx, concept, platform)
	prediction := Predict(analysis.Value, platform, platformScore, s.now())

	if r := joinReasons(analysis.Reason, reason); r != "" {
		return Degraded(prediction, r)
	}
	return OK(prediction)
}

// platformScore returns the model's optimisation score, or 75 when it gives none.
func (s *Service) platformScore(ctx context.Context, concept, platform string) (float64, string) {
	if s.optimizer == nil {
		return defaultPlatformScore, ""
	}
	opt, err := s.optimizer.OptimizeForPlatform(ctx, concept, platform)
	if err != nil {
		slog.Warn("Platform optimisation failed", "platform", platform, "error", err)
		return defaultPlatformScore, fmt.Sprintf("platform optimisation failed: %v", err)
	}
	if opt.OptimizationScore == nil {
		return defaultPlatformScore, ""
	}
	return clampScore(*opt.OptimizationScore), ""
}
