package media

import (
	"context"
	"time"

	"github.com/thinkscotty/adalchemy/internal/ai"
)

// CulturalContext is the slice of a cultural analysis that steers generation.
type CulturalContext struct {
	TargetAudience    string   `json:"target_audience"`
	CulturalScore     float64  `json:"cultural_score"`
	AudienceAlignment float64  `json:"audience_alignment"`
	Insights          []string `json:"cultural_insights"`
	Values            []string `json:"values"`
	PreferredStyle    string   `json:"preferred_style"`
	Colors            []string `json:"colors"`
}

// Asset describes a generated media file.
type Asset struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Resolution   string `json:"resolution"`
	AspectRatio  string `json:"aspect_ratio"`
	Duration     string `json:"duration,omitempty"`
	Format       string `json:"format"`
	Note         string `json:"note,omitempty"`
}

// VideoRequest is what a VideoGenerator is asked to render.
type VideoRequest struct {
	Prompt      string
	AspectRatio string
	Duration    string
	Style       string
}

// ImageRequest is what an ImageGenerator is asked to render.
type ImageRequest struct {
	Prompt      string
	AspectRatio string
	Style       string
}

// VideoGenerator renders a video for an already enhanced prompt.
type VideoGenerator interface {
	GenerateVideo(ctx context.Context, req VideoRequest) (Asset, error)
}

// ImageGenerator renders an image for an already enhanced prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (Asset, error)
}

// ConceptWriter produces art direction for an image prompt. *ai.Client satisfies it.
type ConceptWriter interface {
	ImageConcept(ctx context.Context, enhancedPrompt string) (*ai.ImageConcept, error)
}

type Integration struct {
	CulturalScore     float64  `json:"cultural_score"`
	Elements          []string `json:"cultural_elements"`
	AudienceAlignment float64  `json:"audience_alignment"`
	AuthenticityScore float64  `json:"authenticity_score,omitempty"`
}

type VideoConfig struct {
	Prompt      string `json:"prompt"`
	Duration    string `json:"duration"`
	AspectRatio string `json:"aspect_ratio"`
	Style       string `json:"style"`
	Quality     string `json:"quality"`
}

// VideoResult is one finished (or substituted) video generation.
type VideoResult struct {
	GenerationID            string      `json:"generation_id"`
	Status                  string      `json:"status"`
	Model                   string      `json:"model_used"`
	OriginalPrompt          string      `json:"original_prompt"`
	EnhancedPrompt          string      `json:"enhanced_prompt"`
	Integration             Integration `json:"cultural_integration"`
	Config                  VideoConfig `json:"video_config"`
	Video                   Asset       `json:"video_result"`
	EstimatedProcessingTime string      `json:"estimated_processing_time"`
	VariationID             string      `json:"variation_id,omitempty"`
	VariationType           string      `json:"variation_type,omitempty"`
	GeneratedAt             time.Time   `json:"generation_timestamp"`
	Fallback                bool        `json:"fallback,omitempty"`
	FailureReason           string      `json:"-"`
}

type VariationSet struct {
	BaseGenerationID string        `json:"base_generation_id"`
	Total            int           `json:"total_variations"`
	Variations       []VideoResult `json:"variations"`
	GeneratedAt      time.Time     `json:"generation_timestamp"`
}

type PlatformPlacement struct {
	Platform          string  `json:"target_platform"`
	AspectRatio       string  `json:"aspect_ratio"`
	Style             string  `json:"style"`
	OptimizationScore float64 `json:"optimization_score"`
}

// ImageResult is one finished (or substituted) image generation.
type ImageResult struct {
	GenerationID   string             `json:"generation_id"`
	Status         string             `json:"status"`
	Model          string             `json:"model_used"`
	OriginalPrompt string             `json:"original_prompt"`
	EnhancedPrompt string             `json:"enhanced_prompt"`
	Style          string             `json:"style"`
	AspectRatio    string             `json:"aspect_ratio"`
	Quality        string             `json:"quality"`
	Integration    Integration        `json:"cultural_integration"`
	Concept        *ai.ImageConcept   `json:"image_concept,omitempty"`
	Image          Asset              `json:"image_result"`
	SeriesPosition int                `json:"series_position,omitempty"`
	VariationType  string             `json:"variation_type,omitempty"`
	Placement      *PlatformPlacement `json:"platform_optimization,omitempty"`
	GeneratedAt    time.Time          `json:"generation_timestamp"`
	Fallback       bool               `json:"fallback,omitempty"`
	FailureReason  string             `json:"-"`
}

type SeriesSummary struct {
	AverageCulturalScore float64 `json:"average_cultural_score"`
	StyleDiversity       int     `json:"style_diversity"`
	CulturalConsistency  float64 `json:"cultural_consistency"`
}

type ImageSeries struct {
	SeriesID    string        `json:"series_id"`
	Total       int           `json:"total_images"`
	BasePrompt  string        `json:"base_prompt"`
	Images      []ImageResult `json:"images"`
	Summary     SeriesSummary `json:"series_summary"`
	GeneratedAt time.Time     `json:"generation_timestamp"`
}

type PlatformImageSet struct {
	OptimizationID           string                 `json:"optimization_id"`
	Total                    int                    `json:"total_platforms"`
	Images                   map[string]ImageResult `json:"platform_images"`
	CrossPlatformConsistency float64                `json:"cross_platform_consistency"`
	GeneratedAt              time.Time              `json:"generation_timestamp"`
}

const statusCompleted = "completed"
