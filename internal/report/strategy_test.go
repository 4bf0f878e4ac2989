package report

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/thinkscotty/adalchemy/internal/ai"
	"github.com/thinkscotty/adalchemy/internal/creative"
	"github.com/thinkscotty/adalchemy/internal/culture"
)

type fakePlanner struct {
	status culture.Status
	panics bool
	got    creative.CampaignRequest
}

func (f *fakePlanner) GenerateCampaign(_ context.Context, req creative.CampaignRequest) culture.Outcome[creative.CampaignStrategy] {
	f.got = req
	if f.panics {
		panic("planner exploded")
	}
	c := creative.CampaignStrategy{
		Strategy:               &ai.CreativeStrategy{CoreConcept: "Move together"},
		Variations:             []ai.ConceptVariation{{VariationName: "Emotional Focus"}},
		ContentRecommendations: []creative.ContentRecommendation{{ContentType: "hero_video"}},
		Timeline:               creative.Timeline{TotalDuration: "12 weeks"},
		Budget:                 creative.Budget{Tier: "large", EstimatedRange: "$50,000+"},
		SuccessMetrics:         []string{"m1", "m2", "m3", "m4"},
		RiskMitigation:         []string{"Regular cultural sensitivity reviews"},
	}
	switch f.status {
	case culture.StatusFatal:
		return culture.Fatal[creative.CampaignStrategy]("brief is empty")
	case culture.StatusDegraded:
		return culture.Degraded(c, "strategy: timeout")
	}
	return culture.OK(c)
}

func newStrategyGenerator(an Analyzer, p Planner) *Generator {
	g := newTestGenerator(an, nil, nil, nil)
	if p != nil {
		WithPlanner(p)(g)
	}
	return g
}

func TestCreativeStrategy(t *testing.T) {
	planner := &fakePlanner{}
	g := newStrategyGenerator(&fakeAnalyzer{score: 88}, planner)

	out := g.CreativeStrategy(context.Background(), StrategyRequest{
		Brief: "Sneaker launch", TargetAudience: "gen z", BrandContext: "Acme", BudgetTier: "large",
	})
	if !out.IsOK() {
		t.Fatalf("status = %s (%s), want ok", out.Status, out.Reason)
	}
	if planner.got.CampaignType != "mixed" || planner.got.BudgetTier != "large" || planner.got.BrandContext != "Acme" {
		t.Errorf("campaign request = %+v", planner.got)
	}

	r := out.Value
	if !strings.HasPrefix(r.ReportID, "strategy_report_") || r.ReportType != "creative_strategy" || !r.GeneratedAt.Equal(fixedNow) {
		t.Errorf("header = %q %q %v", r.ReportID, r.ReportType, r.GeneratedAt)
	}
	s := r.Summary
	if s.StrategicDirection != "Move together" || s.CulturalOpportunityScore != 88 || s.RecommendedBudget != "$50,000+" {
		t.Errorf("summary = %+v", s)
	}
	if !reflect.DeepEqual(s.KeySuccessFactors, []string{"m1", "m2", "m3"}) {
		t.Errorf("success factors = %v, want top 3", s.KeySuccessFactors)
	}
	if s.ExpectedOutcomes[0] != "Strong cultural resonance with target audience" || len(s.PrimaryRisks) != 3 {
		t.Errorf("outcomes/risks = %v / %v", s.ExpectedOutcomes, s.PrimaryRisks)
	}
	if r.Timeline != "12 weeks" || r.Resources.Budget.Tier != "large" || len(r.Resources.ResourceRequirements) != 6 {
		t.Errorf("resources = %q %+v", r.Timeline, r.Resources)
	}
	if len(r.Content.Variations) != 1 || len(r.Content.Recommendations) != 1 {
		t.Errorf("content = %+v", r.Content)
	}
	if r.Framework.CulturalFoundation.CulturalScore != 88 || len(r.Framework.CulturalFoundation.AudienceInsights) != 6 {
		t.Errorf("framework = %+v", r.Framework.CulturalFoundation)
	}
	if r.Note != "" {
		t.Errorf("Note = %q, want empty", r.Note)
	}
}

func TestCreativeStrategyDegradedAndFallback(t *testing.T) {
	tests := []struct {
		name         string
		analyzer     *fakeAnalyzer
		planner      Planner
		wantFallback bool
		wantReason   string
	}{
		{"campaign degraded", &fakeAnalyzer{score: 75}, &fakePlanner{status: culture.StatusDegraded}, false, "campaign: strategy: timeout"},
		{"analysis degraded", &fakeAnalyzer{score: 75, status: culture.StatusDegraded}, &fakePlanner{}, false, "analysis: taste graph unavailable"},
		{"campaign fatal", &fakeAnalyzer{score: 75}, &fakePlanner{status: culture.StatusFatal}, true, "campaign: brief is empty"},
		{"analysis fatal", &fakeAnalyzer{status: culture.StatusFatal}, &fakePlanner{}, true, "analysis: qloo down"},
		{"planner panics", &fakeAnalyzer{score: 75}, &fakePlanner{panics: true}, true, "planner exploded"},
		{"no planner", &fakeAnalyzer{score: 75}, nil, true, "no campaign planner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newStrategyGenerator(tt.analyzer, tt.planner).CreativeStrategy(context.Background(),
				StrategyRequest{Brief: "Sneaker launch", TargetAudience: "gen z"})
			if !out.IsDegraded() || !strings.Contains(out.Reason, tt.wantReason) {
				t.Fatalf("outcome = %s %q, want degraded with %q", out.Status, out.Reason, tt.wantReason)
			}
			r := out.Value
			if got := strings.HasPrefix(r.ReportID, "fallback_strategy_"); got != tt.wantFallback {
				t.Errorf("fallback = %v (id %q), want %v", got, r.ReportID, tt.wantFallback)
			}
			if r.BudgetTier != "medium" {
				t.Errorf("BudgetTier = %q, want medium default", r.BudgetTier)
			}
			if tt.wantFallback {
				if r.Summary.CulturalOpportunityScore != 70 || r.Framework != nil || r.Note == "" {
					t.Errorf("fallback report = %+v", r)
				}
			} else if r.Framework == nil || r.Summary.ExpectedOutcomes[0] != "Solid audience alignment" {
				t.Errorf("report = %+v", r.Summary)
			}
		})
	}
}

func TestCreativeStrategyRequiresBrief(t *testing.T) {
	g := newStrategyGenerator(&fakeAnalyzer{}, &fakePlanner{})
	for _, req := range []StrategyRequest{{TargetAudience: "gen z"}, {Brief: "b", TargetAudience: " "}} {
		if out := g.CreativeStrategy(context.Background(), req); !out.IsFatal() {
			t.Errorf("CreativeStrategy(%+v) = %s, want fatal", req, out.Status)
		}
	}
}

func TestResourceRequirements(t *testing.T) {
	tests := []struct {
		tier string
		want int
	}{
		{"small", 3},
		{"Medium", 4},
		{"large", 6},
		{"unknown", 4},
	}
	for _, tt := range tests {
		if got := resourceRequirements(tt.tier); len(got) != tt.want {
			t.Errorf("resourceRequirements(%q) = %d entries, want %d", tt.tier, len(got), tt.want)
		}
	}
}
