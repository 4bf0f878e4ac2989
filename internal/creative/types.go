package creative

import (
	"time"

	"github.com/thinkscotty/adalchemy/internal/ai"
	"github.com/thinkscotty/adalchemy/internal/culture"
	"github.com/thinkscotty/adalchemy/internal/media"
)

const (
	KindVideo    = "video"
	KindImage    = "image"
	KindCampaign = "campaign_strategy"

	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// AnalysisSummary is the slice of a cultural analysis echoed back in generation results.
type AnalysisSummary struct {
	CulturalScore   float64                 `json:"cultural_score"`
	Insights        []string                `json:"insights"`
	Recommendations []string                `json:"recommendations"`
	TrendingTopics  []culture.TrendingTopic `json:"trending_topics,omitempty"`
}

type VideoSpecs struct {
	AspectRatio string `json:"aspect_ratio"`
	Duration    string `json:"duration"`
	Format      string `json:"format"`
	Quality     string `json:"quality"`
}

type ImageSpecs struct {
	AspectRatio string `json:"aspect_ratio"`
	Resolution  string `json:"resolution"`
	Format      string `json:"format"`
	Quality     string `json:"quality"`
}

type VideoRequest struct {
	Prompt         string
	TargetAudience string
	BrandContext   string
	Duration       string
	AspectRatio    string
}

type VideoGeneration struct {
	GenerationID          string                              `json:"generation_id"`
	Type                  string                              `json:"type"`
	Status                string                              `json:"status"`
	OriginalPrompt        string                              `json:"original_prompt"`
	EnhancedPrompt        string                              `json:"enhanced_prompt"`
	TargetAudience        string                              `json:"target_audience"`
	Analysis              AnalysisSummary                     `json:"cultural_analysis"`
	Video                 *media.VideoResult                  `json:"video_result,omitempty"`
	Variations            *media.VariationSet                 `json:"variations,omitempty"`
	PlatformOptimizations map[string]*ai.PlatformOptimization `json:"platform_optimizations"`
	Prediction            *culture.Prediction                 `json:"performance_prediction,omitempty"`
	TechnicalSpecs        VideoSpecs                          `json:"technical_specs"`
	EstimatedTime         string                              `json:"estimated_generation_time"`
	GeneratedAt           time.Time                           `json:"timestamp"`
	Note                  string                              `json:"note,omitempty"`
}

type ImageRequest struct {
	Prompt           string
	TargetAudience   string
	BrandContext     string
	StylePreferences []string
	AspectRatio      string
	Count            int
}

type ImageGeneration struct {
	GenerationID    string                  `json:"generation_id"`
	Type            string                  `json:"type"`
	Status          string                  `json:"status"`
	OriginalPrompt  string                  `json:"original_prompt"`
	EnhancedPrompt  string                  `json:"enhanced_prompt"`
	TargetAudience  string                  `json:"target_audience"`
	Analysis        AnalysisSummary         `json:"cultural_analysis"`
	Image           *media.ImageResult      `json:"image_result,omitempty"`
	Series          *media.ImageSeries      `json:"image_series,omitempty"`
	PlatformImages  *media.PlatformImageSet `json:"platform_optimizations,omitempty"`
	Prediction      *culture.Prediction     `json:"performance_prediction,omitempty"`
	TechnicalSpecs  ImageSpecs              `json:"technical_specs"`
	ImagesGenerated int                     `json:"images_generated"`
	GeneratedAt     time.Time               `json:"timestamp"`
	Note            string                  `json:"note,omitempty"`
}

type CampaignRequest struct {
	Brief          string
	TargetAudience string
	BrandContext   string
	CampaignType   string
	BudgetTier     string
	Platforms      []string
}

type CampaignStrategy struct {
	CampaignID             string                  `json:"campaign_id"`
	Type                   string                  `json:"type"`
	Status                 string                  `json:"status"`
	CampaignName           string                  `json:"campaign_name"`
	Brief                  string                  `json:"brief"`
	TargetAudience         string                  `json:"target_audience"`
	CampaignType           string                  `json:"campaign_type"`
	Analysis               AnalysisSummary         `json:"cultural_analysis"`
	Strategy               *ai.CreativeStrategy    `json:"creative_strategy"`
	Variations             []ai.ConceptVariation   `json:"content_variations"`
	ContentRecommendations []ContentRecommendation `json:"content_recommendations"`
	Timeline               Timeline                `json:"timeline"`
	Budget                 Budget                  `json:"budget_breakdown"`
	SuccessMetrics         []string                `json:"success_metrics"`
	RiskMitigation         []string                `json:"risk_mitigation"`
	GeneratedAt            time.Time               `json:"timestamp"`
	Note                   string                  `json:"note,omitempty"`
}
