package ai

import "time"

// ContentAnalysis is the model's cultural read of a piece of content.
// Score fields are pointers so a missing key can be told apart from zero.
type ContentAnalysis struct {
	CulturalScore     *float64 `json:"cultural_score"`
	Insights          []string `json:"insights"`
	Recommendations   []string `json:"recommendations"`
	PotentialIssues   []string `json:"potential_issues"`
	Strengths         []string `json:"strengths"`
	AudienceAlignment *float64 `json:"audience_alignment"`
}

// PlatformSpec describes the creative constraints of a social platform.
type PlatformSpec struct {
	AspectRatios []string `json:"aspect_ratios"`
	Duration     string   `json:"duration"`
	Style        string   `json:"style"`
}

// PlatformOptimization is the model's advice for adapting content to a platform.
type PlatformOptimization struct {
	Platform               string         `json:"platform"`
	OptimizedConcept       string         `json:"optimized_concept"`
	TechnicalSpecs         map[string]any `json:"technical_specs"`
	ContentAdjustments     []string       `json:"content_adjustments"`
	EngagementTactics      []string       `json:"engagement_tactics"`
	HashtagSuggestions     []string       `json:"hashtag_suggestions"`
	PostingRecommendations []string       `json:"posting_recommendations"`
	OptimizationScore      *float64       `json:"optimization_score,omitempty"`
	OptimizedAt            time.Time      `json:"optimized_at"`
	Fallback               bool           `json:"fallback,omitempty"`
}

type VisualDirection struct {
	Style       string   `json:"style"`
	Colors      []string `json:"colors"`
	Composition string   `json:"composition"`
	Lighting    string   `json:"lighting"`
}

type MessagingStrategy struct {
	PrimaryMessage string   `json:"primary_message"`
	Tone           string   `json:"tone"`
	KeyPoints      []string `json:"key_points"`
	CallToAction   string   `json:"call_to_action"`
}

// CreativeStrategy is the model's campaign-level creative plan.
type CreativeStrategy struct {
	CoreConcept              string            `json:"core_concept"`
	VisualDirection          VisualDirection   `json:"visual_direction"`
	MessagingStrategy        MessagingStrategy `json:"messaging_strategy"`
	ExecutionRecommendations []string          `json:"execution_recommendations"`
	CulturalIntegration      []string          `json:"cultural_integration"`
	Rationale                string            `json:"rationale"`
	Fallback                 bool              `json:"fallback,omitempty"`
}

// StrategyOpts carries the campaign inputs for GenerateStrategy.
type StrategyOpts struct {
	Brief          string
	TargetAudience string
	BrandContext   string
	CampaignType   string
	BudgetTier     string
	CulturalScore  float64
	Insights       []string
	TrendingTopics []string
	Values         []string
	AestheticJSON  string
	Platforms      []string
}

// ConceptVariation is one alternative execution of a campaign concept.
type ConceptVariation struct {
	VariationID    string    `json:"variation_id"`
	VariationName  string    `json:"variation_name"`
	Concept        string    `json:"concept"`
	KeyDifferences string    `json:"key_differences"`
	TargetEmotion  string    `json:"target_emotion"`
	ExecutionStyle string    `json:"execution_style"`
	CulturalAngle  string    `json:"cultural_angle"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// ImageConcept is the art direction the model proposes for an image prompt.
type ImageConcept struct {
	VisualDescription string         `json:"visual_description"`
	ColorPalette      any            `json:"color_palette"`
	Composition       any            `json:"composition"`
	CulturalNotes     any            `json:"cultural_notes"`
	TechnicalSpecs    map[string]any `json:"technical_specs"`
}
