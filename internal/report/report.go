package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thinkscotty/adalchemy/internal/culture"
	"github.com/thinkscotty/adalchemy/internal/metrics"
	"github.com/thinkscotty/adalchemy/internal/scraper"
	"github.com/thinkscotty/adalchemy/internal/search"
)

const (
	maxSamples      = 5
	maxSampleLength = 200
	maxCompetitors  = 3
)

// Analyzer is the part of culture.Service reports need.
type Analyzer interface {
	Analyze(ctx context.Context, req culture.AnalyzeRequest) culture.Outcome[culture.Analysis]
	Trends(ctx context.Context, audience string) culture.Outcome[culture.TrendReport]
}

// Searcher runs web searches. *search.Service satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, string, error)
}

// PageReader summarizes web pages. *scraper.Scraper satisfies it.
type PageReader interface {
	Summarize(ctx context.Context, pageURL string) (*scraper.PageSummary, error)
	SummarizeAll(ctx context.Context, urls []string) []scraper.Result
}

type Request struct {
	BrandName      string
	TargetAudience string
	CampaignBrief  string
	ContentSamples []string
}

// Generator assembles cultural analysis and creative strategy reports. Search,
// page reading and website lookup are optional and only enrich the cultural
// report.
type Generator struct {
	analyzer Analyzer
	searcher Searcher
	pages    PageReader
	websites search.URLFinder
	planner  Planner
	now      func() time.Time
}

type Option func(*Generator)

// WithPlanner enables creative strategy reports.
func WithPlanner(p Planner) Option {
	return func(g *Generator) { g.planner = p }
}

func NewGenerator(analyzer Analyzer, searcher Searcher, pages PageReader, websites search.URLFinder, opts ...Option) *Generator {
	g := &Generator{
		analyzer: analyzer,
		searcher: searcher,
		pages:    pages,
		websites: websites,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CulturalAnalysis builds the full report for a brand and audience.
func (g *Generator) CulturalAnalysis(ctx context.Context, req Request) (out culture.Outcome[Report]) {
	if strings.TrimSpace(req.CampaignBrief) == "" || strings.TrimSpace(req.TargetAudience) == "" {
		return culture.Fatal[Report]("campaign brief and target audience are required")
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Report generation panicked, using fallback", "brand", req.BrandName, "panic", r)
			out = culture.Degraded(g.fallback(req), fmt.Sprintf("report generation panicked: %v", r))
		}
	}()

	var reasons []string
	analysis := g.analyzer.Analyze(ctx, culture.AnalyzeRequest{
		Content: req.CampaignBrief, Audience: req.TargetAudience, BrandContext: req.BrandName,
	})
	if analysis.IsFatal() {
		return culture.Degraded(g.fallback(req), "analysis: "+analysis.Reason)
	}
	if analysis.IsDegraded() {
		reasons = append(reasons, "analysis: "+analysis.Reason)
	}
	trends := g.analyzer.Trends(ctx, req.TargetAudience)
	if trends.IsDegraded() {
		reasons = append(reasons, "trends: "+trends.Reason)
	}

	a, tr := analysis.Value, trends.Value
	samples := g.analyzeSamples(ctx, req)

	rep := Report{
		ReportID:       "cultural_report_" + uuid.NewString(),
		ReportType:     "cultural_analysis",
		BrandName:      req.BrandName,
		TargetAudience: req.TargetAudience,
		CampaignBrief:  req.CampaignBrief,
		GeneratedAt:    g.now().UTC(),
		Summary: ExecutiveSummary{
			OverallScore:           a.CulturalScore,
			KeyInsights:            head(a.Insights, 5),
			PrimaryRecommendations: head(a.Recommendations, 3),
			RiskLevel:              RiskLevel(a.CulturalScore),
			OpportunityScore:       OpportunityScore(a.CulturalScore, len(tr.Topics)),
		},
		Analysis: &a,
		Trends: &TrendAnalysis{
			Topics:         tr.Topics,
			Moments:        tr.Moments,
			TotalAnalyzed:  tr.TotalAnalyzed,
			AlignmentScore: TrendAlignment(a.CulturalScore, len(tr.Topics)),
		},
		Content: &ContentAnalysis{
			TotalSamples:    len(samples),
			AverageScore:    averageScore(samples),
			Samples:         samples,
			Recommendations: contentRecommendations(samples),
		},
		Strategic:   strategicRecommendations(a, tr),
		Competitive: g.competitiveInsights(ctx, req),
		Website:     g.brandWebsite(ctx, req.BrandName),
	}
	if len(reasons) > 0 {
		return culture.Degraded(rep, strings.Join(reasons, "; "))
	}
	return culture.OK(rep)
}

func (g *Generator) analyzeSamples(ctx context.Context, req Request) []SampleAnalysis {
	samples := make([]SampleAnalysis, 0, min(len(req.ContentSamples), maxSamples))
	for i, content := range head(req.ContentSamples, maxSamples) {
		res := g.analyzer.Analyze(ctx, culture.AnalyzeRequest{
			Content: content, Audience: req.TargetAudience, BrandContext: req.BrandName,
		})
		a, ok := res.Get()
		if !ok {
			a = culture.FallbackAnalysis(req.TargetAudience, g.now())
		}
		samples = append(samples, SampleAnalysis{
			SampleID:        i + 1,
			Content:         truncate(content, maxSampleLength),
			CulturalScore:   a.CulturalScore,
			Insights:        head(a.Insights, 3),
			Recommendations: head(a.Recommendations, 3),
		})
	}
	return samples
}

func (g *Generator) competitiveInsights(ctx context.Context, req Request) CompetitiveInsights {
	ci := CompetitiveInsights{
		Scope:          fmt.Sprintf("Competitive analysis for %s in %s market", req.BrandName, req.TargetAudience),
		KeyCompetitors: []string{"Competitor analysis would require market research"},
		DifferentiationOpportunities: []string{
			"Authentic cultural storytelling",
			"Underserved audience segments",
			"Emerging cultural trends",
		},
		PositioningRecommendations: []string{
			fmt.Sprintf("Position as culturally-aware brand for %s", req.TargetAudience),
			"Emphasize authentic cultural connections",
			"Leverage unique brand cultural heritage",
		},
	}
	if g.searcher == nil || req.BrandName == "" {
		return ci
	}

	results, backend, err := g.searcher.Search(ctx, fmt.Sprintf("%s competitors %s marketing", req.BrandName, req.TargetAudience))
	if err != nil {
		slog.Warn("Competitive search failed", "brand", req.BrandName, "error", err)
		return ci
	}
	ci.SearchBackend = backend
	ci.Sources = results
	ci.KeyCompetitors = make([]string, 0, len(results))
	for _, r := range results {
		ci.KeyCompetitors = append(ci.KeyCompetitors, r.Title)
	}

	if g.pages != nil {
		urls := make([]string, 0, maxCompetitors)
		for _, r := range head(results, maxCompetitors) {
			urls = append(urls, r.URL)
		}
		for _, res := range g.pages.SummarizeAll(ctx, urls) {
			if res.Error != nil {
				slog.Debug("Skipping competitor page", "url", res.URL, "error", res.Error)
				continue
			}
			ci.SourcePages = append(ci.SourcePages, *res.Summary)
		}
	}
	return ci
}

func (g *Generator) brandWebsite(ctx context.Context, brand string) *BrandWebsite {
	if g.websites == nil || brand == "" {
		return nil
	}
	site, err := search.FindOfficialWebsite(ctx, g.websites, brand)
	if err != nil {
		if !errors.Is(err, search.ErrWebsiteNotFound) {
			slog.Warn("Official website lookup failed", "brand", brand, "error", err)
		}
		return nil
	}
	bw := &BrandWebsite{URL: site}
	if g.pages != nil {
		page, err := g.pages.Summarize(ctx, site)
		if err != nil {
			slog.Warn("Brand website scrape failed", "brand", brand, "url", site, "error", err)
			return bw
		}
		bw.Page = page
	}
	return bw
}

func (g *Generator) fallback(req Request) Report {
	metrics.DegradedOutcomes.WithLabelValues("report").Inc()
	return Report{
		ReportID:       "fallback_cultural_" + uuid.NewString(),
		ReportType:     "cultural_analysis",
		BrandName:      req.BrandName,
		TargetAudience: req.TargetAudience,
		CampaignBrief:  req.CampaignBrief,
		GeneratedAt:    g.now().UTC(),
		Summary: ExecutiveSummary{
			OverallScore:           70,
			KeyInsights:            []string{"Standard audience alignment", "General cultural appropriateness"},
			PrimaryRecommendations: []string{"Conduct deeper cultural research", "Enhance authenticity"},
			RiskLevel:              "Medium",
			OpportunityScore:       75,
		},
		Note: "Fallback report generated due to analysis error",
	}
}

// RiskLevel grades cultural risk from a cultural score.
func RiskLevel(score float64) string {
	switch {
	case score >= 90:
		return "Low"
	case score >= 75:
		return "Medium"
	case score >= 60:
		return "High"
	default:
		return "Critical"
	}
}

// OpportunityScore adds two points per trending topic, capped at 100.
func OpportunityScore(score float64, trendCount int) float64 {
	return min(100, score+float64(trendCount)*2)
}

// TrendAlignment is 50 with no trends, otherwise the score plus up to 30.
func TrendAlignment(score float64, trendCount int) float64 {
	if trendCount == 0 {
		return 50
	}
	return min(100, score+min(30, float64(trendCount)*5))
}

func strategicRecommendations(a culture.Analysis, tr culture.TrendReport) []StrategicRecommendation {
	var recs []StrategicRecommendation
	if a.CulturalScore < 85 {
		recs = append(recs, StrategicRecommendation{
			Category:       "Cultural Alignment",
			Priority:       "High",
			Recommendation: "Enhance cultural authenticity and audience alignment",
			Rationale:      fmt.Sprintf("Current cultural score of %g%% indicates room for improvement", a.CulturalScore),
			ActionItems: []string{
				"Conduct deeper cultural research",
				"Include authentic cultural elements",
				"Test with target audience focus groups",
			},
		})
	}
	if len(tr.Topics) > 0 {
		names := make([]string, 0, 3)
		for _, t := range tr.Topics[:min(3, len(tr.Topics))] {
			names = append(names, t.Topic)
		}
		recs = append(recs, StrategicRecommendation{
			Category:       "Trend Integration",
			Priority:       "Medium",
			Recommendation: "Leverage trending topics: " + strings.Join(names, ", "),
			Rationale:      "Active cultural trends present engagement opportunities",
			ActionItems: []string{
				fmt.Sprintf("Integrate %s into messaging", tr.Topics[0].Topic),
				"Create timely, trend-relevant content",
				"Monitor trend evolution and adapt accordingly",
			},
		})
	}
	if recs == nil {
		recs = []StrategicRecommendation{}
	}
	return recs
}

func contentRecommendations(samples []SampleAnalysis) []string {
	if len(samples) == 0 {
		return []string{"Create culturally-authentic content", "Include diverse perspectives", "Test with target audience"}
	}
	avg := *averageScore(samples)
	var recs []string
	if avg < 80 {
		recs = append(recs, "Improve cultural authenticity across all content pieces")
	}
	if avg < 70 {
		recs = append(recs, "Consider cultural sensitivity review")
	}
	recs = append(recs,
		"Maintain consistent brand voice",
		"Incorporate trending cultural elements",
		"Ensure diverse representation",
	)
	return head(recs, 5)
}

func averageScore(samples []SampleAnalysis) *float64 {
	if len(samples) == 0 {
		return nil
	}
	var sum float64
	for _, s := range samples {
		sum += s.CulturalScore
	}
	avg := sum / float64(len(samples))
	return &avg
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func head[T any](s []T, n int) []T {
	return s[:min(n, len(s))]
}
