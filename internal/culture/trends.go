package culture

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/thinkscotty/adalchemy/internal/metrics"
)

// TrendExtractor ranks an audience's topics by taste-graph signal strength.
type TrendExtractor struct {
	lookup   *tasteLookup
	limit    int
	topicCap int
	pacing   time.Duration
	now      func() time.Time
}

type TrendOption func(*TrendExtractor)

// WithTrendLimit bounds the topic union before analysis.
func WithTrendLimit(n int) TrendOption {
	return func(e *TrendExtractor) { e.limit = n }
}

// WithTopicCap bounds how many topics are looked up in the taste graph.
func WithTopicCap(n int) TrendOption {
	return func(e *TrendExtractor) { e.topicCap = n }
}

// WithPacing sets the minimum spacing between per-topic lookups. Zero disables pacing.
func WithPacing(d time.Duration) TrendOption {
	return func(e *TrendExtractor) { e.pacing = d }
}

func WithClock(now func() time.Time) TrendOption {
	return func(e *TrendExtractor) { e.now = now }
}

// NewTrendExtractor shares the resolver's lookup policy (ranking, backoff).
func NewTrendExtractor(resolver *ProfileResolver, opts ...TrendOption) *TrendExtractor {
	e := &TrendExtractor{
		lookup:   &resolver.lookup,
		limit:    10,
		topicCap: 5,
		pacing:   500 * time.Millisecond,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *TrendExtractor) Extract(ctx context.Context, profile AudienceProfile) Outcome[TrendReport] {
	now := e.now()

	topics := dedupe(append(append([]string(nil), profile.Content.TopicsOfInterest...), profile.Values...))
	topics = firstN(topics, e.limit)
	if len(topics) == 0 {
		metrics.DegradedOutcomes.WithLabelValues("trend_extractor").Inc()
		return Degraded(FallbackTrends(profile.Segment, now), "audience profile has no topics or values")
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if e.pacing > 0 {
		limiter = rate.NewLimiter(rate.Every(e.pacing), 1)
	}

	var (
		results []TrendingTopic
		reasons []string
	)
	for _, topic := range firstN(topics, e.topicCap) {
		if e.lookup.graph != nil {
			if err := limiter.Wait(ctx); err != nil {
				slog.Warn("Trend analysis interrupted", "error", err)
				break
			}
		}
		t, reason := e.analyzeTopic(ctx, topic)
		if reason != "" {
			reasons = append(reasons, reason)
		}
		results = append(results, t)
	}

	if len(results) == 0 {
		metrics.DegradedOutcomes.WithLabelValues("trend_extractor").Inc()
		return Degraded(FallbackTrends(profile.Segment, now), "no topic could be analysed")
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TrendStrength > results[j].TrendStrength
	})

	report := TrendReport{
		Segment:       profile.Segment,
		Topics:        results,
		Moments:       Moments(results, now),
		TotalAnalyzed: len(topics),
		OverallScore:  meanStrength(results),
		GeneratedAt:   now,
	}
	if len(reasons) > 0 {
		metrics.DegradedOutcomes.WithLabelValues("trend_extractor").Inc()
		return Degraded(report, joinReasons(reasons...))
	}
	return OK(report)
}

// analyzeTopic returns a non-empty reason when the topic's entity resolved but
// its tags could not be fetched; the topic is then kept at strength 0.
func (e *TrendExtractor) analyzeTopic(ctx context.Context, topic string) (TrendingTopic, string) {
	id, ok := e.lookup.entity(ctx, topic)
	if !ok {
		return TrendingTopic{
			Topic:             topic,
			TrendStrength:     50,
			CulturalRelevance: RelevanceUnknown,
			RelatedInterests:  []string{},
			Growth:            growthLabel(50),
		}, ""
	}

	tags, reason := e.lookup.tags(ctx, id)

	relevance := RelevanceMedium
	if len(tags) > 20 {
		relevance = RelevanceHigh
	}
	strength := math.Min(100, float64(len(tags))*2)
	return TrendingTopic{
		Topic:             topic,
		TrendStrength:     strength,
		CulturalRelevance: relevance,
		RelatedInterests:  firstN(tags, 5),
		Growth:            growthLabel(strength),
	}, reason
}

func growthLabel(strength float64) string {
	if strength > 50 {
		return fmt.Sprintf("+%g%%", strength)
	}
	return "stable"
}

func meanStrength(topics []TrendingTopic) float64 {
	if len(topics) == 0 {
		return 0
	}
	var sum float64
	for _, t := range topics {
		sum += t.TrendStrength
	}
	return round1(sum / float64(len(topics)))
}

// Moments synthesises one movement per top-3 topic plus a seasonal entry for
// the month of now.
func Moments(topics []TrendingTopic, now time.Time) []CulturalMoment {
	var moments []CulturalMoment
	for _, t := range topics[:min(3, len(topics))] {
		moments = append(moments, CulturalMoment{
			Moment:          t.Topic + " cultural movement",
			Description:     fmt.Sprintf("Growing interest in %s among target demographic", t.Topic),
			Opportunity:     fmt.Sprintf("Leverage %s themes in creative content", t.Topic),
			Timing:          "Active now",
			ImpactPotential: "High",
		})
	}
	month := now.Month().String()
	return append(moments, CulturalMoment{
		Moment:          month + " seasonal trends",
		Description:     "Seasonal cultural themes relevant for " + month,
		Opportunity:     "Incorporate seasonal elements in messaging",
		Timing:          "Current season",
		ImpactPotential: "Medium",
	})
}

// TopicsFromProfile derives the in-analysis topic list from a profile without
// any external lookups: the first five topics of interest, strength decaying
// from the aggregate score.
func TopicsFromProfile(profile AudienceProfile, score float64) []TrendingTopic {
	topics := firstN(profile.Content.TopicsOfInterest, 5)
	out := make([]TrendingTopic, 0, len(topics))
	for i, topic := range topics {
		relevance := RelevanceMedium
		if i < 2 {
			relevance = RelevanceHigh
		}
		out = append(out, TrendingTopic{
			Topic:             topic,
			TrendStrength:     round1(clampScore(score - 5*float64(i))),
			CulturalRelevance: relevance,
			RelatedInterests:  []string{},
			Growth:            fmt.Sprintf("+%d%%", 15+5*i),
		})
	}
	return out
}

// FallbackTrends is the fixed trend report used when extraction cannot run.
func FallbackTrends(segment string, now time.Time) TrendReport {
	return TrendReport{
		Segment: segment,
		Topics: []TrendingTopic{
			{Topic: "authenticity", TrendStrength: 75, CulturalRelevance: RelevanceHigh,
				RelatedInterests: []string{"genuine content", "real stories"}, Growth: "+15%"},
			{Topic: "sustainability", TrendStrength: 70, CulturalRelevance: RelevanceHigh,
				RelatedInterests: []string{"eco-friendly", "responsible"}, Growth: "+12%"},
			{Topic: "community", TrendStrength: 68, CulturalRelevance: RelevanceMedium,
				RelatedInterests: []string{"connection", "belonging"}, Growth: "+10%"},
		},
		Moments: []CulturalMoment{{
			Moment:          "Authenticity movement",
			Description:     "Growing demand for genuine, unfiltered content",
			Opportunity:     "Create authentic brand storytelling",
			Timing:          "Active now",
			ImpactPotential: "High",
		}},
		TotalAnalyzed: 3,
		OverallScore:  71,
		GeneratedAt:   now,
	}
}
