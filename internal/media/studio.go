package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/thinkscotty/adalchemy/internal/ai"
	"github.com/thinkscotty/adalchemy/internal/metrics"
)

// VideoOptions are the render settings for a single video.
type VideoOptions struct {
	Duration    string
	AspectRatio string
	Style       string
}

func (o VideoOptions) withDefaults() VideoOptions {
	if o.Duration == "" {
		o.Duration = "5s"
	}
	if o.AspectRatio == "" {
		o.AspectRatio = "16:9"
	}
	if o.Style == "" {
		o.Style = "cinematic"
	}
	return o
}

// Studio turns prompts plus cultural context into media results. Every
// method returns a value; failed renders are replaced by flagged fallbacks.
type Studio struct {
	video      VideoGenerator
	image      ImageGenerator
	concepts   ConceptWriter
	videoModel string
	imageModel string

	variationInterval time.Duration
	seriesInterval    time.Duration
	now               func() time.Time
}

type StudioOption func(*Studio)

// WithVariationInterval spaces consecutive video variation renders.
func WithVariationInterval(d time.Duration) StudioOption {
	return func(s *Studio) { s.variationInterval = d }
}

// WithSeriesInterval spaces consecutive renders in image series and platform sets.
func WithSeriesInterval(d time.Duration) StudioOption {
	return func(s *Studio) { s.seriesInterval = d }
}

func WithModels(video, image string) StudioOption {
	return func(s *Studio) { s.videoModel, s.imageModel = video, image }
}

// NewStudio creates a studio. Any generator may be nil; calls then fall back.
func NewStudio(video VideoGenerator, image ImageGenerator, concepts ConceptWriter, opts ...StudioOption) *Studio {
	s := &Studio{
		video:             video,
		image:             image,
		concepts:          concepts,
		videoModel:        "veo-3.0-generate-preview",
		imageModel:        "imagen-3.0-generate-002",
		variationInterval: time.Second,
		seriesInterval:    500 * time.Millisecond,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func pacer(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// GenerateVideo enhances prompt with cc and renders one video.
func (s *Studio) GenerateVideo(ctx context.Context, prompt string, cc CulturalContext, opts VideoOptions) VideoResult {
	opts = opts.withDefaults()
	enhanced := EnhanceVideoPrompt(prompt, cc)

	if s.video == nil {
		return s.fallbackVideo(prompt, cc, "video generator not configured")
	}
	asset, err := s.video.GenerateVideo(ctx, VideoRequest{
		Prompt:      enhanced,
		AspectRatio: opts.AspectRatio,
		Duration:    opts.Duration,
		Style:       opts.Style,
	})
	if err != nil {
		slog.Warn("Video generation failed, using fallback", "error", err)
		return s.fallbackVideo(prompt, cc, err.Error())
	}

	return VideoResult{
		GenerationID:   "veo_" + uuid.NewString(),
		Status:         statusCompleted,
		Model:          s.videoModel,
		OriginalPrompt: prompt,
		EnhancedPrompt: enhanced,
		Integration: Integration{
			CulturalScore:     cc.CulturalScore,
			Elements:          head(cc.Insights, 3),
			AudienceAlignment: cc.AudienceAlignment,
		},
		Config: VideoConfig{
			Prompt:      enhanced,
			Duration:    opts.Duration,
			AspectRatio: opts.AspectRatio,
			Style:       opts.Style,
			Quality:     "high",
		},
		Video:                   asset,
		EstimatedProcessingTime: estimateProcessingTime(opts.Duration, opts.Style),
		GeneratedAt:             s.now().UTC(),
	}
}

func (s *Studio) fallbackVideo(prompt string, cc CulturalContext, reason string) VideoResult {
	metrics.DegradedOutcomes.WithLabelValues("video_generation").Inc()
	return VideoResult{
		GenerationID:   "veo_fallback_" + uuid.NewString(),
		Status:         statusCompleted,
		Model:          s.videoModel,
		OriginalPrompt: prompt,
		EnhancedPrompt: "Culturally-enhanced video: " + prompt,
		Integration: Integration{
			CulturalScore:     cc.CulturalScore,
			Elements:          []string{"fallback cultural elements"},
			AudienceAlignment: 65,
		},
		Config: VideoConfig{Prompt: prompt, Duration: "5s", AspectRatio: "16:9", Style: "cinematic"},
		Video: Asset{
			Resolution:  "1920x1080",
			AspectRatio: "16:9",
			Duration:    "5s",
			Format:      "mp4",
			Note:        "Fallback result due to generation error",
		},
		EstimatedProcessingTime: "60-90 seconds",
		GeneratedAt:             s.now().UTC(),
		Fallback:                true,
		FailureReason:           reason,
	}
}

// GenerateVideoVariations renders up to count culturally angled variations of
// base, paced by the variation interval. Variations are typed by their angle.
func (s *Studio) GenerateVideoVariations(ctx context.Context, base string, cc CulturalContext, count int) VariationSet {
	count = max(count, 0)
	baseID := "veo_variations_" + uuid.NewString()
	prompts := videoVariationPrompts(base, cc, count)
	limiter := pacer(s.variationInterval)

	variations := make([]VideoResult, 0, len(prompts))
	for i, vp := range prompts {
		if err := limiter.Wait(ctx); err != nil {
			slog.Warn("Video variations interrupted", "generated", i, "error", err)
			break
		}
		r := s.GenerateVideo(ctx, vp.prompt, cc, VideoOptions{Duration: "5s", AspectRatio: "16:9"})
		r.VariationID = fmt.Sprintf("%s_var_%d", baseID, i+1)
		r.VariationType = vp.kind
		variations = append(variations, r)
	}

	return VariationSet{
		BaseGenerationID: baseID,
		Total:            len(variations),
		Variations:       variations,
		GeneratedAt:      s.now().UTC(),
	}
}

// GenerateImage enhances prompt with cc, asks for art direction and renders one image.
func (s *Studio) GenerateImage(ctx context.Context, prompt string, cc CulturalContext, style, aspectRatio string) ImageResult {
	if style == "" {
		style = "photorealistic"
	}
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}
	enhanced := EnhanceImagePrompt(prompt, cc, style)

	var concept *ai.ImageConcept
	if s.concepts != nil {
		c, err := s.concepts.ImageConcept(ctx, enhanced)
		if err != nil {
			slog.Warn("Image concept generation failed", "error", err)
			return s.fallbackImage(prompt, cc, style, err.Error())
		}
		concept = c
	}

	if s.image == nil {
		return s.fallbackImage(prompt, cc, style, "image generator not configured")
	}
	asset, err := s.image.GenerateImage(ctx, ImageRequest{Prompt: enhanced, AspectRatio: aspectRatio, Style: style})
	if err != nil {
		slog.Warn("Image generation failed, using fallback", "error", err)
		return s.fallbackImage(prompt, cc, style, err.Error())
	}

	return ImageResult{
		GenerationID:   "imagen_" + uuid.NewString(),
		Status:         statusCompleted,
		Model:          s.imageModel,
		OriginalPrompt: prompt,
		EnhancedPrompt: enhanced,
		Style:          style,
		AspectRatio:    aspectRatio,
		Quality:        "high",
		Integration: Integration{
			CulturalScore:     cc.CulturalScore,
			Elements:          head(cc.Insights, 3),
			AudienceAlignment: cc.AudienceAlignment,
			AuthenticityScore: authenticityScore(cc),
		},
		Concept:     concept,
		Image:       asset,
		GeneratedAt: s.now().UTC(),
	}
}

func (s *Studio) fallbackImage(prompt string, cc CulturalContext, style, reason string) ImageResult {
	metrics.DegradedOutcomes.WithLabelValues("image_generation").Inc()
	return ImageResult{
		GenerationID:   "imagen_fallback_" + uuid.NewString(),
		Status:         statusCompleted,
		Model:          s.imageModel,
		OriginalPrompt: prompt,
		EnhancedPrompt: "Culturally-enhanced image: " + prompt,
		Style:          style,
		AspectRatio:    "1:1",
		Integration: Integration{
			CulturalScore:     cc.CulturalScore,
			Elements:          []string{"fallback cultural elements"},
			AudienceAlignment: 60,
			AuthenticityScore: 65,
		},
		Image: Asset{
			Resolution:  "1024x1024",
			AspectRatio: "1:1",
			Format:      "JPEG",
			Note:        "Fallback result due to generation error",
		},
		GeneratedAt:   s.now().UTC(),
		Fallback:      true,
		FailureReason: reason,
	}
}

// GenerateImageSeries renders count related images, cycling render styles.
func (s *Studio) GenerateImageSeries(ctx context.Context, base string, cc CulturalContext, count int) ImageSeries {
	count = max(count, 0)
	prompts := imageVariationPrompts(base, cc, count)
	limiter := pacer(s.seriesInterval)

	images := make([]ImageResult, 0, count)
	for i := 0; i < count; i++ {
		if err := limiter.Wait(ctx); err != nil {
			slog.Warn("Image series interrupted", "generated", i, "error", err)
			break
		}
		prompt := base
		if i < len(prompts) {
			prompt = prompts[i]
		}
		img := s.GenerateImage(ctx, prompt, cc, seriesStyles[i%len(seriesStyles)], "1:1")
		if img.Fallback {
			img.Integration.CulturalScore = 60
		}
		img.SeriesPosition = i + 1
		img.VariationType = seriesType(i)
		images = append(images, img)
	}

	return ImageSeries{
		SeriesID:    "imagen_series_" + uuid.NewString(),
		Total:       len(images),
		BasePrompt:  base,
		Images:      images,
		Summary:     summarizeSeries(images),
		GeneratedAt: s.now().UTC(),
	}
}

func summarizeSeries(images []ImageResult) SeriesSummary {
	if len(images) == 0 {
		return SeriesSummary{CulturalConsistency: 100}
	}
	scores := make([]float64, len(images))
	styles := make(map[string]bool)
	var sum float64
	for i, img := range images {
		scores[i] = img.Integration.CulturalScore
		sum += scores[i]
		styles[img.Style] = true
	}
	return SeriesSummary{
		AverageCulturalScore: sum / float64(len(images)),
		StyleDiversity:       len(styles),
		CulturalConsistency:  consistency(scores, 2),
	}
}

// DefaultImagePlatforms is used when no platform list is given.
var DefaultImagePlatforms = []string{"instagram", "facebook", "twitter", "linkedin"}

// GeneratePlatformImages renders one image per platform in its native ratio and style.
func (s *Studio) GeneratePlatformImages(ctx context.Context, prompt string, cc CulturalContext, platforms []string) PlatformImageSet {
	if len(platforms) == 0 {
		platforms = DefaultImagePlatforms
	}
	limiter := pacer(s.seriesInterval)

	images := make(map[string]ImageResult, len(platforms))
	scores := make([]float64, 0, len(platforms))
	for idx, platform := range platforms {
		if err := limiter.Wait(ctx); err != nil {
			slog.Warn("Platform images interrupted", "generated", idx, "error", err)
			break
		}
		spec := imageSpecFor(platform)
		img := s.GenerateImage(ctx, fmt.Sprintf("%s optimized for %s with %s aesthetic", prompt, platform, spec.Style),
			cc, spec.Style, spec.AspectRatio)
		placement := &PlatformPlacement{
			Platform:          platform,
			AspectRatio:       spec.AspectRatio,
			Style:             spec.Style,
			OptimizationScore: float64(85 + (len(platforms)-idx)*2),
		}
		if img.Fallback {
			img.Integration.CulturalScore = 60
			placement.OptimizationScore = 60
		}
		img.Placement = placement
		images[strings.ToLower(platform)] = img
		scores = append(scores, img.Integration.CulturalScore)
	}

	return PlatformImageSet{
		OptimizationID:           "platform_opt_" + uuid.NewString(),
		Total:                    len(images),
		Images:                   images,
		CrossPlatformConsistency: consistency(scores, 1.5),
		GeneratedAt:              s.now().UTC(),
	}
}
