package culture

import (
	"math"
	"time"
)

// ProfileSource records which resolution tier produced a profile.
type ProfileSource string

const (
	SourceTasteGraph  ProfileSource = "taste_graph"
	SourceDemographic ProfileSource = "demographic"
	SourceFallback    ProfileSource = "fallback"
)

type AestheticPreferences struct {
	PreferredStyle string   `json:"preferred_style"`
	Colors         []string `json:"colors"`
	VisualElements []string `json:"visual_elements"`
}

type ContentPreferences struct {
	PrefersVideo      bool     `json:"prefers_video"`
	PrefersImages     bool     `json:"prefers_images"`
	FormatPreferences []string `json:"format_preferences"`
	TopicsOfInterest  []string `json:"topics_of_interest"`
}

type EngagementPatterns struct {
	PeakTimes          []string `json:"peak_times"`
	PreferredPlatforms []string `json:"preferred_platforms"`
	InteractionStyle   string   `json:"interaction_style"`
}

// AudienceProfile is the structured preference profile for an audience descriptor.
type AudienceProfile struct {
	Segment       string               `json:"segment"`
	AffinityScore float64              `json:"cultural_affinity_score"`
	Values        []string             `json:"values"`
	Aesthetic     AestheticPreferences `json:"aesthetic_preferences"`
	Content       ContentPreferences   `json:"content_preferences"`
	Engagement    EngagementPatterns   `json:"engagement_patterns"`
	Source        ProfileSource        `json:"source"`
	EntityFound   bool                 `json:"qloo_entity_found"`
	TotalTastes   int                  `json:"total_tastes"`
}

// ContentScore is the generative model's assessment of a piece of content.
type ContentScore struct {
	Score             float64   `json:"cultural_score"`
	Insights          []string  `json:"insights"`
	Recommendations   []string  `json:"recommendations"`
	PotentialIssues   []string  `json:"potential_issues"`
	Strengths         []string  `json:"strengths"`
	AudienceAlignment float64   `json:"audience_alignment"`
	AnalyzedAt        time.Time `json:"analysis_timestamp"`
}

type Relevance string

const (
	RelevanceLow     Relevance = "low"
	RelevanceMedium  Relevance = "medium"
	RelevanceHigh    Relevance = "high"
	RelevanceUnknown Relevance = "unknown"
)

type TrendingTopic struct {
	Topic             string    `json:"topic"`
	TrendStrength     float64   `json:"trend_strength"`
	CulturalRelevance Relevance `json:"cultural_relevance"`
	RelatedInterests  []string  `json:"related_interests"`
	Growth            string    `json:"growth"`
}

type CulturalMoment struct {
	Moment          string `json:"moment"`
	Description     string `json:"description"`
	Opportunity     string `json:"opportunity"`
	Timing          string `json:"timing"`
	ImpactPotential string `json:"impact_potential"`
}

// TrendReport is the Trend Extractor's output for one audience.
type TrendReport struct {
	Segment       string           `json:"audience_segment"`
	Topics        []TrendingTopic  `json:"trending_topics"`
	Moments       []CulturalMoment `json:"cultural_moments"`
	TotalAnalyzed int              `json:"total_topics_analyzed"`
	OverallScore  float64          `json:"overall_trend_score"`
	GeneratedAt   time.Time        `json:"timestamp"`
}

type Compatibility struct {
	Score           float64  `json:"compatibility_score"`
	SharedValues    []string `json:"shared_values"`
	Opportunities   []string `json:"opportunities"`
	Recommendations []string `json:"recommendations"`
}

// Analysis is the aggregate cultural analysis passed to every downstream component.
type Analysis struct {
	CulturalScore   float64         `json:"cultural_score"`
	Insights        []string        `json:"insights"`
	Recommendations []string        `json:"recommendations"`
	AudienceProfile AudienceProfile `json:"audience_profile"`
	TrendingTopics  []TrendingTopic `json:"trending_topics"`
	Compatibility   *Compatibility  `json:"compatibility,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
}

type Prediction struct {
	CulturalPerformanceScore  float64   `json:"cultural_performance_score"`
	EngagementRate            float64   `json:"predicted_engagement_rate"`
	ConversionRate            float64   `json:"predicted_conversion_rate"`
	BrandRecall               float64   `json:"predicted_brand_recall"`
	ViralityPotential         float64   `json:"virality_potential"`
	PlatformOptimizationScore float64   `json:"platform_optimization_score"`
	KeySuccessFactors         []string  `json:"key_success_factors"`
	ConfidenceInterval        string    `json:"confidence_interval"`
	PredictedAt               time.Time `json:"prediction_timestamp"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, 0, 100)
}

func firstN(s []string, n int) []string {
	if n > len(s) {
		n = len(s)
	}
	out := make([]string, n)
	copy(out, s[:n])
	return out
}
