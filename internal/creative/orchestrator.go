package creative

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/thinkscotty/adalchemy/internal/ai"
	"github.com/thinkscotty/adalchemy/internal/culture"
	"github.com/thinkscotty/adalchemy/internal/media"
	"github.com/thinkscotty/adalchemy/internal/metrics"
)

// CulturalAnalyzer is the part of culture.Service the orchestrator needs.
type CulturalAnalyzer interface {
	Analyze(ctx context.Context, req culture.AnalyzeRequest) culture.Outcome[culture.Analysis]
	Trends(ctx context.Context, audience string) culture.Outcome[culture.TrendReport]
	PredictPerformance(ctx context.Context, concept, audience, platform string) culture.Outcome[culture.Prediction]
}

// Strategist writes platform advice and campaign strategies. *ai.Client satisfies it.
type Strategist interface {
	OptimizeForPlatform(ctx context.Context, content, platform string) (*ai.PlatformOptimization, error)
	GenerateStrategy(ctx context.Context, opts ai.StrategyOpts) (*ai.CreativeStrategy, error)
	GenerateVariations(ctx context.Context, baseConcept string, count int) ([]ai.ConceptVariation, error)
}

var (
	videoPlatforms = []string{"instagram", "tiktok", "youtube"}
	imagePlatforms = []string{"instagram", "facebook", "linkedin"}
)

const (
	maxSeriesImages    = 5
	campaignVariations = 3
)

// Orchestrator runs the video, image and campaign workflows. Each workflow
// always returns a result; failed steps are replaced by fallbacks and the
// outcome is tagged Degraded.
type Orchestrator struct {
	analyzer   CulturalAnalyzer
	studio     *media.Studio
	strategist Strategist
	history    History
	now        func() time.Time
}

func NewOrchestrator(analyzer CulturalAnalyzer, studio *media.Studio, strategist Strategist, history History) *Orchestrator {
	if history == nil {
		history = NewRingBuffer(0)
	}
	return &Orchestrator{
		analyzer:   analyzer,
		studio:     studio,
		strategist: strategist,
		history:    history,
		now:        time.Now,
	}
}

// History returns up to limit of the most recent generations.
func (o *Orchestrator) History(ctx context.Context, limit int) ([]Record, error) {
	return o.history.Recent(ctx, limit)
}

// GenerateVideo runs the video workflow.
func (o *Orchestrator) GenerateVideo(ctx context.Context, req VideoRequest) (out culture.Outcome[VideoGeneration]) {
	if strings.TrimSpace(req.Prompt) == "" {
		return culture.Fatal[VideoGeneration]("prompt is empty")
	}
	if req.Duration == "" {
		req.Duration = "30s"
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "16:9"
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Video workflow panicked, using fallback", "audience", req.TargetAudience, "panic", r)
			out = culture.Degraded(o.fallbackVideo(req), fmt.Sprintf("video workflow panicked: %v", r))
		}
		record(ctx, o, KindVideo, req.Prompt, req.TargetAudience, out.Value.GenerationID, out.Value.Analysis.CulturalScore, out)
	}()

	var reasons []string
	analysis := o.analyze(ctx, req.Prompt, req.TargetAudience, req.BrandContext, &reasons)
	enhanced := enhancePrompt(req.Prompt, analysis, KindVideo)
	cc := ContextFromAnalysis(analysis, req.TargetAudience)

	video := o.studio.GenerateVideo(ctx, enhanced, cc, media.VideoOptions{Duration: req.Duration, AspectRatio: req.AspectRatio})
	if video.Fallback {
		reasons = append(reasons, "video: "+video.FailureReason)
	}
	variations := o.studio.GenerateVideoVariations(ctx, enhanced, cc, 3)
	for _, v := range variations.Variations {
		if v.Fallback {
			reasons = append(reasons, fmt.Sprintf("variation %s: %s", v.VariationType, v.FailureReason))
		}
	}

	result := VideoGeneration{
		GenerationID:          uuid.NewString(),
		Type:                  KindVideo,
		Status:                StatusCompleted,
		OriginalPrompt:        req.Prompt,
		EnhancedPrompt:        enhanced,
		TargetAudience:        req.TargetAudience,
		Analysis:              summarize(analysis),
		Video:                 &video,
		Variations:            &variations,
		PlatformOptimizations: o.optimize(ctx, enhanced, videoPlatforms, &reasons),
		Prediction:            o.predict(ctx, enhanced, req.TargetAudience, KindVideo, &reasons),
		TechnicalSpecs:        VideoSpecs{AspectRatio: req.AspectRatio, Duration: req.Duration, Format: "MP4", Quality: "HD"},
		EstimatedTime:         "2-3 minutes",
		GeneratedAt:           o.now().UTC(),
	}
	return outcome(result, reasons)
}

// GenerateImage runs the image workflow. A series is rendered when more than
// one image is requested.
func (o *Orchestrator) GenerateImage(ctx context.Context, req ImageRequest) (out culture.Outcome[ImageGeneration]) {
	if strings.TrimSpace(req.Prompt) == "" {
		return culture.Fatal[ImageGeneration]("prompt is empty")
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "1:1"
	}
	style := "photorealistic"
	if len(req.StylePreferences) > 0 && req.StylePreferences[0] != "" {
		style = req.StylePreferences[0]
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Image workflow panicked, using fallback", "audience", req.TargetAudience, "panic", r)
			out = culture.Degraded(o.fallbackImage(req), fmt.Sprintf("image workflow panicked: %v", r))
		}
		record(ctx, o, KindImage, req.Prompt, req.TargetAudience, out.Value.GenerationID, out.Value.Analysis.CulturalScore, out)
	}()

	var reasons []string
	analysis := o.analyze(ctx, req.Prompt, req.TargetAudience, req.BrandContext, &reasons)
	enhanced := enhancePrompt(req.Prompt, analysis, KindImage)
	cc := ContextFromAnalysis(analysis, req.TargetAudience)

	image := o.studio.GenerateImage(ctx, enhanced, cc, style, req.AspectRatio)
	if image.Fallback {
		reasons = append(reasons, "image: "+image.FailureReason)
	}
	generated := 1

	var series *media.ImageSeries
	if req.Count > 1 {
		s := o.studio.GenerateImageSeries(ctx, enhanced, cc, min(req.Count, maxSeriesImages))
		for _, img := range s.Images {
			if img.Fallback {
				reasons = append(reasons, fmt.Sprintf("series image %d: %s", img.SeriesPosition, img.FailureReason))
			}
		}
		series = &s
		generated = s.Total
	}

	platforms := o.studio.GeneratePlatformImages(ctx, enhanced, cc, imagePlatforms)
	for _, name := range imagePlatforms {
		if img, ok := platforms.Images[name]; ok && img.Fallback {
			reasons = append(reasons, fmt.Sprintf("%s image: %s", name, img.FailureReason))
		}
	}

	result := ImageGeneration{
		GenerationID:    uuid.NewString(),
		Type:            KindImage,
		Status:          StatusCompleted,
		OriginalPrompt:  req.Prompt,
		EnhancedPrompt:  enhanced,
		TargetAudience:  req.TargetAudience,
		Analysis:        summarize(analysis),
		Image:           &image,
		Series:          series,
		PlatformImages:  &platforms,
		Prediction:      o.predict(ctx, enhanced, req.TargetAudience, KindImage, &reasons),
		TechnicalSpecs:  ImageSpecs{AspectRatio: req.AspectRatio, Resolution: "1024x1024", Format: "PNG/JPG", Quality: "High"},
		ImagesGenerated: generated,
		GeneratedAt:     o.now().UTC(),
	}
	return outcome(result, reasons)
}

// GenerateCampaign builds a campaign strategy from the brief, trends and a
// model-written creative plan.
func (o *Orchestrator) GenerateCampaign(ctx context.Context, req CampaignRequest) (out culture.Outcome[CampaignStrategy]) {
	if strings.TrimSpace(req.Brief) == "" {
		return culture.Fatal[CampaignStrategy]("brief is empty")
	}
	if req.CampaignType == "" {
		req.CampaignType = "mixed"
	}
	if req.BudgetTier == "" {
		req.BudgetTier = "medium"
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Campaign workflow panicked, using fallback", "audience", req.TargetAudience, "panic", r)
			out = culture.Degraded(o.fallbackCampaign(req), fmt.Sprintf("campaign workflow panicked: %v", r))
		}
		record(ctx, o, KindCampaign, req.Brief, req.TargetAudience, out.Value.CampaignID, out.Value.Analysis.CulturalScore, out)
	}()

	var reasons []string
	analysis := o.analyze(ctx, req.Brief, req.TargetAudience, req.BrandContext, &reasons)

	trends := o.analyzer.Trends(ctx, req.TargetAudience)
	if trends.IsDegraded() {
		reasons = append(reasons, "trends: "+trends.Reason)
	}
	topics := trends.Value.Topics[:min(5, len(trends.Value.Topics))]
	topicNames := make([]string, len(topics))
	for i, t := range topics {
		topicNames[i] = t.Topic
	}

	aesthetic, _ := json.Marshal(analysis.AudienceProfile.Aesthetic)
	strategy, err := o.strategist.GenerateStrategy(ctx, ai.StrategyOpts{
		Brief:          req.Brief,
		TargetAudience: req.TargetAudience,
		BrandContext:   req.BrandContext,
		CampaignType:   req.CampaignType,
		BudgetTier:     req.BudgetTier,
		CulturalScore:  analysis.CulturalScore,
		Insights:       analysis.Insights,
		TrendingTopics: topicNames,
		Values:         analysis.AudienceProfile.Values,
		AestheticJSON:  string(aesthetic),
		Platforms:      req.Platforms,
	})
	if err != nil {
		slog.Warn("Creative strategy generation failed, using fallback", "audience", req.TargetAudience, "error", err)
		metrics.DegradedOutcomes.WithLabelValues("creative_strategy").Inc()
		strategy = ai.FallbackStrategy(req.Brief, req.TargetAudience)
		reasons = append(reasons, "strategy: "+err.Error())
	}

	variations, err := o.strategist.GenerateVariations(ctx, strategy.CoreConcept, campaignVariations)
	if err != nil || len(variations) == 0 {
		if err == nil {
			err = fmt.Errorf("no variations returned")
		}
		slog.Warn("Content variation generation failed, using fallback", "audience", req.TargetAudience, "error", err)
		metrics.DegradedOutcomes.WithLabelValues("content_variations").Inc()
		variations = ai.FallbackVariations(strategy.CoreConcept, campaignVariations)
		reasons = append(reasons, "variations: "+err.Error())
	}

	summary := summarize(analysis)
	summary.TrendingTopics = topics
	result := CampaignStrategy{
		CampaignID:             uuid.NewString(),
		Type:                   KindCampaign,
		Status:                 StatusCompleted,
		CampaignName:           titleCase(req.TargetAudience) + " Campaign Strategy",
		Brief:                  req.Brief,
		TargetAudience:         req.TargetAudience,
		CampaignType:           req.CampaignType,
		Analysis:               summary,
		Strategy:               strategy,
		Variations:             variations,
		ContentRecommendations: contentRecommendations(analysis, req.CampaignType),
		Timeline:               campaignTimeline(req.BudgetTier),
		Budget:                 budgetBreakdown(req.BudgetTier),
		SuccessMetrics:         successMetrics,
		RiskMitigation:         riskMitigation,
		GeneratedAt:            o.now().UTC(),
	}
	return outcome(result, reasons)
}

func (o *Orchestrator) analyze(ctx context.Context, content, audience, brand string, reasons *[]string) culture.Analysis {
	res := o.analyzer.Analyze(ctx, culture.AnalyzeRequest{Content: content, Audience: audience, BrandContext: brand})
	if res.IsDegraded() {
		*reasons = append(*reasons, "analysis: "+res.Reason)
	}
	if res.IsFatal() {
		*reasons = append(*reasons, "analysis: "+res.Reason)
		return culture.FallbackAnalysis(audience, o.now())
	}
	return res.Value
}

func (o *Orchestrator) optimize(ctx context.Context, concept string, platforms []string, reasons *[]string) map[string]*ai.PlatformOptimization {
	out := make(map[string]*ai.PlatformOptimization, len(platforms))
	for _, p := range platforms {
		opt, err := o.strategist.OptimizeForPlatform(ctx, concept, p)
		if err != nil {
			slog.Warn("Platform optimization failed, using fallback", "platform", p, "error", err)
			opt = ai.FallbackPlatformOptimization(p)
			*reasons = append(*reasons, fmt.Sprintf("%s optimization: %v", p, err))
		}
		out[p] = opt
	}
	return out
}

func (o *Orchestrator) predict(ctx context.Context, concept, audience, platform string, reasons *[]string) *culture.Prediction {
	res := o.analyzer.PredictPerformance(ctx, concept, audience, platform)
	if res.IsFatal() {
		*reasons = append(*reasons, "prediction: "+res.Reason)
		p := culture.FallbackPrediction(o.now())
		return &p
	}
	if res.IsDegraded() {
		*reasons = append(*reasons, "prediction: "+res.Reason)
	}
	return &res.Value
}

// record counts a finished generation and appends it to history.
func record[T any](ctx context.Context, o *Orchestrator, kind, prompt, audience, id string, score float64, out culture.Outcome[T]) {
	metrics.Generations.WithLabelValues(kind, out.Status.String()).Inc()
	if out.IsFatal() {
		return
	}

	payload, err := json.Marshal(out.Value)
	if err != nil {
		slog.Warn("Failed to encode generation for history", "id", id, "error", err)
	}
	rec := Record{
		ID:             id,
		Kind:           kind,
		Status:         out.Status.String(),
		TargetAudience: audience,
		Prompt:         prompt,
		CulturalScore:  score,
		CreatedAt:      o.now().UTC(),
		Payload:        payload,
	}
	if err := o.history.Append(ctx, rec); err != nil {
		slog.Warn("Failed to record generation history", "id", id, "error", err)
	}
}

func outcome[T any](v T, reasons []string) culture.Outcome[T] {
	if len(reasons) > 0 {
		return culture.Degraded(v, strings.Join(reasons, "; "))
	}
	return culture.OK(v)
}

func summarize(a culture.Analysis) AnalysisSummary {
	return AnalysisSummary{
		CulturalScore:   a.CulturalScore,
		Insights:        a.Insights,
		Recommendations: a.Recommendations,
	}
}

// ContextFromAnalysis projects an analysis onto the context media generators consume.
func ContextFromAnalysis(a culture.Analysis, audience string) media.CulturalContext {
	alignment := a.CulturalScore
	if a.Compatibility != nil {
		alignment = a.Compatibility.Score
	}
	return media.CulturalContext{
		TargetAudience:    audience,
		CulturalScore:     a.CulturalScore,
		AudienceAlignment: alignment,
		Insights:          a.Insights,
		Values:            a.AudienceProfile.Values,
		PreferredStyle:    a.AudienceProfile.Aesthetic.PreferredStyle,
		Colors:            a.AudienceProfile.Aesthetic.Colors,
	}
}

func enhancePrompt(prompt string, a culture.Analysis, kind string) string {
	insights := strings.Join(a.Insights[:min(3, len(a.Insights))], ", ")
	values := strings.Join(a.AudienceProfile.Values[:min(3, len(a.AudienceProfile.Values))], ", ")
	aesthetic := a.AudienceProfile.Aesthetic.PreferredStyle
	if aesthetic == "" {
		aesthetic = "modern"
	}
	enhancement := fmt.Sprintf("Incorporating %s. Emphasizing %s values. %s aesthetic with authentic cultural elements.", insights, values, aesthetic)

	switch kind {
	case KindVideo:
		return fmt.Sprintf("%s. %s Dynamic, engaging video content with authentic storytelling.", prompt, enhancement)
	case KindImage:
		return fmt.Sprintf("%s. %s High-quality, culturally authentic imagery.", prompt, enhancement)
	default:
		return fmt.Sprintf("%s. %s", prompt, enhancement)
	}
}
