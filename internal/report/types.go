package report

import (
	"time"

	"github.com/thinkscotty/adalchemy/internal/culture"
	"github.com/thinkscotty/adalchemy/internal/scraper"
	"github.com/thinkscotty/adalchemy/internal/search"
)

type ExecutiveSummary struct {
	OverallScore           float64  `json:"overall_cultural_score"`
	KeyInsights            []string `json:"key_insights"`
	PrimaryRecommendations []string `json:"primary_recommendations"`
	RiskLevel              string   `json:"cultural_risk_level"`
	OpportunityScore       float64  `json:"opportunity_score"`
}

type TrendAnalysis struct {
	Topics         []culture.TrendingTopic  `json:"trending_topics"`
	Moments        []culture.CulturalMoment `json:"cultural_moments"`
	TotalAnalyzed  int                      `json:"total_topics_analyzed"`
	AlignmentScore float64                  `json:"trend_alignment_score"`
}

type SampleAnalysis struct {
	SampleID        int      `json:"sample_id"`
	Content         string   `json:"content"`
	CulturalScore   float64  `json:"cultural_score"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

type ContentAnalysis struct {
	TotalSamples    int              `json:"total_samples"`
	AverageScore    *float64         `json:"average_cultural_score"`
	Samples         []SampleAnalysis `json:"sample_analyses"`
	Recommendations []string         `json:"content_recommendations"`
}

type StrategicRecommendation struct {
	Category       string   `json:"category"`
	Priority       string   `json:"priority"`
	Recommendation string   `json:"recommendation"`
	Rationale      string   `json:"rationale"`
	ActionItems    []string `json:"action_items"`
}

type CompetitiveInsights struct {
	Scope                        string                `json:"analysis_scope"`
	KeyCompetitors               []string              `json:"key_competitors"`
	DifferentiationOpportunities []string              `json:"cultural_differentiation_opportunities"`
	PositioningRecommendations   []string              `json:"positioning_recommendations"`
	SearchBackend                string                `json:"search_backend,omitempty"`
	Sources                      []search.Result       `json:"sources,omitempty"`
	SourcePages                  []scraper.PageSummary `json:"source_pages,omitempty"`
}

type BrandWebsite struct {
	URL  string               `json:"url"`
	Page *scraper.PageSummary `json:"page,omitempty"`
}

// Report is a cultural analysis report. Sections other than the summary are
// absent on the fallback report.
type Report struct {
	ReportID       string                    `json:"report_id"`
	ReportType     string                    `json:"report_type"`
	BrandName      string                    `json:"brand_name"`
	TargetAudience string                    `json:"target_audience"`
	CampaignBrief  string                    `json:"campaign_brief"`
	GeneratedAt    time.Time                 `json:"generation_timestamp"`
	Summary        ExecutiveSummary          `json:"executive_summary"`
	Analysis       *culture.Analysis         `json:"cultural_analysis,omitempty"`
	Trends         *TrendAnalysis            `json:"trending_analysis,omitempty"`
	Content        *ContentAnalysis          `json:"content_analysis,omitempty"`
	Strategic      []StrategicRecommendation `json:"strategic_recommendations,omitempty"`
	Competitive    CompetitiveInsights       `json:"competitive_insights"`
	Website        *BrandWebsite             `json:"brand_website,omitempty"`
	Note           string                    `json:"note,omitempty"`
}
