package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thinkscotty/adalchemy/internal/ai"
	"github.com/thinkscotty/adalchemy/internal/creative"
	"github.com/thinkscotty/adalchemy/internal/culture"
	"github.com/thinkscotty/adalchemy/internal/metrics"
)

// Planner builds campaign strategies. *creative.Orchestrator satisfies it.
type Planner interface {
	GenerateCampaign(ctx context.Context, req creative.CampaignRequest) culture.Outcome[creative.CampaignStrategy]
}

type StrategyRequest struct {
	Brief          string
	TargetAudience string
	BrandContext   string
	BudgetTier     string
}

type StrategySummary struct {
	StrategicDirection       string   `json:"strategic_direction"`
	CulturalOpportunityScore float64  `json:"cultural_opportunity_score"`
	RecommendedBudget        string   `json:"recommended_budget,omitempty"`
	KeySuccessFactors        []string `json:"key_success_factors"`
	PrimaryRisks             []string `json:"primary_risks"`
	ExpectedOutcomes         []string `json:"expected_outcomes"`
}

type CulturalFoundation struct {
	CulturalScore         float64  `json:"cultural_score"`
	AudienceInsights      []string `json:"audience_insights"`
	CulturalOpportunities []string `json:"cultural_opportunities"`
}

type StrategicFramework struct {
	CoreStrategy       *ai.CreativeStrategy `json:"core_strategy"`
	CulturalFoundation CulturalFoundation   `json:"cultural_foundation"`
}

type ContentStrategy struct {
	Recommendations []creative.ContentRecommendation `json:"content_recommendations"`
	Variations      []ai.ConceptVariation            `json:"content_variations"`
}

type ResourcePlan struct {
	Budget               creative.Budget   `json:"budget_breakdown"`
	Timeline             creative.Timeline `json:"timeline"`
	ResourceRequirements []string          `json:"resource_requirements"`
	RiskContingencies    []string          `json:"risk_contingencies"`
}

// StrategyReport is a creative strategy report. Framework, Content and
// Resources are absent from the fallback report.
type StrategyReport struct {
	ReportID       string              `json:"report_id"`
	ReportType     string              `json:"report_type"`
	Brief          string              `json:"brief"`
	TargetAudience string              `json:"target_audience"`
	BrandContext   string              `json:"brand_context"`
	BudgetTier     string              `json:"budget_tier"`
	Timeline       string              `json:"timeline,omitempty"`
	GeneratedAt    time.Time           `json:"generation_timestamp"`
	Summary        StrategySummary     `json:"executive_summary"`
	Framework      *StrategicFramework `json:"strategic_framework,omitempty"`
	Content        *ContentStrategy    `json:"content_strategy,omitempty"`
	Resources      *ResourcePlan       `json:"resource_planning,omitempty"`
	Note           string              `json:"note,omitempty"`
}

var primaryRisks = []string{"Cultural misalignment", "Budget constraints", "Timeline pressures"}

// CreativeStrategy plans a mixed campaign for the brief and wraps it with a
// cultural analysis, an executive summary and a resource plan.
func (g *Generator) CreativeStrategy(ctx context.Context, req StrategyRequest) (out culture.Outcome[StrategyReport]) {
	if strings.TrimSpace(req.Brief) == "" || strings.TrimSpace(req.TargetAudience) == "" {
		return culture.Fatal[StrategyReport]("brief and target audience are required")
	}
	if req.BudgetTier == "" {
		req.BudgetTier = "medium"
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Strategy report panicked, using fallback", "audience", req.TargetAudience, "panic", r)
			out = culture.Degraded(g.fallbackStrategy(req), fmt.Sprintf("strategy report panicked: %v", r))
		}
	}()
	if g.planner == nil {
		return culture.Degraded(g.fallbackStrategy(req), "no campaign planner configured")
	}

	var reasons []string
	campaign := g.planner.GenerateCampaign(ctx, creative.CampaignRequest{
		Brief:          req.Brief,
		TargetAudience: req.TargetAudience,
		BrandContext:   req.BrandContext,
		CampaignType:   "mixed",
		BudgetTier:     req.BudgetTier,
	})
	if campaign.IsFatal() {
		return culture.Degraded(g.fallbackStrategy(req), "campaign: "+campaign.Reason)
	}
	if campaign.IsDegraded() {
		reasons = append(reasons, "campaign: "+campaign.Reason)
	}

	analysis := g.analyzer.Analyze(ctx, culture.AnalyzeRequest{
		Content: req.Brief, Audience: req.TargetAudience, BrandContext: req.BrandContext,
	})
	if analysis.IsFatal() {
		return culture.Degraded(g.fallbackStrategy(req), "analysis: "+analysis.Reason)
	}
	if analysis.IsDegraded() {
		reasons = append(reasons, "analysis: "+analysis.Reason)
	}

	c, a := campaign.Value, analysis.Value
	var direction string
	if c.Strategy != nil {
		direction = c.Strategy.CoreConcept
	}
	rep := StrategyReport{
		ReportID:       "strategy_report_" + uuid.NewString(),
		ReportType:     "creative_strategy",
		Brief:          req.Brief,
		TargetAudience: req.TargetAudience,
		BrandContext:   req.BrandContext,
		BudgetTier:     req.BudgetTier,
		Timeline:       c.Timeline.TotalDuration,
		GeneratedAt:    g.now().UTC(),
		Summary: StrategySummary{
			StrategicDirection:       direction,
			CulturalOpportunityScore: a.CulturalScore,
			RecommendedBudget:        c.Budget.EstimatedRange,
			KeySuccessFactors:        head(c.SuccessMetrics, 3),
			PrimaryRisks:             primaryRisks,
			ExpectedOutcomes:         expectedOutcomes(a.CulturalScore),
		},
		Framework: &StrategicFramework{
			CoreStrategy: c.Strategy,
			CulturalFoundation: CulturalFoundation{
				CulturalScore:         a.CulturalScore,
				AudienceInsights:      a.Insights,
				CulturalOpportunities: a.Recommendations,
			},
		},
		Content: &ContentStrategy{
			Recommendations: c.ContentRecommendations,
			Variations:      c.Variations,
		},
		Resources: &ResourcePlan{
			Budget:               c.Budget,
			Timeline:             c.Timeline,
			ResourceRequirements: resourceRequirements(req.BudgetTier),
			RiskContingencies:    c.RiskMitigation,
		},
	}
	slog.Info("Creative strategy report generated", "report", rep.ReportID, "audience", req.TargetAudience)
	if len(reasons) > 0 {
		return culture.Degraded(rep, strings.Join(reasons, "; "))
	}
	return culture.OK(rep)
}

func (g *Generator) fallbackStrategy(req StrategyRequest) StrategyReport {
	metrics.DegradedOutcomes.WithLabelValues("strategy_report").Inc()
	return StrategyReport{
		ReportID:       "fallback_strategy_" + uuid.NewString(),
		ReportType:     "creative_strategy",
		Brief:          req.Brief,
		TargetAudience: req.TargetAudience,
		BrandContext:   req.BrandContext,
		BudgetTier:     req.BudgetTier,
		GeneratedAt:    g.now().UTC(),
		Summary: StrategySummary{
			StrategicDirection:       "Professional campaign approach with cultural considerations",
			CulturalOpportunityScore: 70,
			KeySuccessFactors:        []string{"Quality execution", "Brand consistency", "Audience engagement"},
			PrimaryRisks:             []string{"Limited cultural research", "Generic approach"},
			ExpectedOutcomes:         []string{"Standard campaign performance", "Brand awareness increase"},
		},
		Note: "Fallback report generated due to analysis error",
	}
}

func expectedOutcomes(score float64) []string {
	switch {
	case score >= 85:
		return []string{"Strong cultural resonance with target audience", "Above-benchmark engagement", "Positive brand sentiment lift"}
	case score >= 70:
		return []string{"Solid audience alignment", "Benchmark-level engagement", "Brand awareness increase"}
	default:
		return []string{"Limited resonance without further cultural research", "Below-benchmark engagement risk", "Brand awareness increase"}
	}
}

func resourceRequirements(tier string) []string {
	switch strings.ToLower(tier) {
	case "small":
		return []string{"Creative lead", "Freelance video editor", "Social media coordinator"}
	case "large":
		return []string{"Creative director", "Video production team", "Graphic designers", "Community managers", "Cultural consultant", "Paid media specialist"}
	default:
		return []string{"Creative director", "Video production team", "Graphic designer", "Community manager"}
	}
}
