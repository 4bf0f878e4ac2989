package culture

import (
	"fmt"
	"strings"
	"time"
)

const (
	contentWeight  = 0.4
	audienceWeight = 0.3
	compatWeight   = 0.3

	maxInsights        = 5
	maxRecommendations = 5
)

// ScoreInputs are the optional terms of the cultural score. A nil term takes
// its default (content 70, audience 65, compatibility 70) and keeps its weight.
type ScoreInputs struct {
	Content       *float64
	Affinity      *float64
	Compatibility *float64
}

// CulturalScore returns 0.4·content + 0.3·affinity + 0.3·compatibility,
// each term clamped to [0,100], rounded to one decimal.
func CulturalScore(in ScoreInputs) float64 {
	content := valueOr(in.Content, defaultContentScore)
	affinity := valueOr(in.Affinity, defaultAffinity)
	compat := valueOr(in.Compatibility, defaultCompat)
	return round1(contentWeight*clampScore(content) + audienceWeight*clampScore(affinity) + compatWeight*clampScore(compat))
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Aggregate combines a resolved profile, a content score and optional
// compatibility into the Analysis handed to every downstream component.
func Aggregate(profile AudienceProfile, content ContentScore, compat *Compatibility, now time.Time) Analysis {
	in := ScoreInputs{Content: &content.Score, Affinity: &profile.AffinityScore}
	if compat != nil {
		in.Compatibility = &compat.Score
	}
	score := CulturalScore(in)

	return Analysis{
		CulturalScore:   score,
		Insights:        synthesizeInsights(content, profile, compat),
		Recommendations: synthesizeRecommendations(content, profile, compat, score),
		AudienceProfile: profile,
		TrendingTopics:  TopicsFromProfile(profile, score),
		Compatibility:   compat,
		Timestamp:       now.UTC(),
	}
}

func synthesizeInsights(content ContentScore, profile AudienceProfile, compat *Compatibility) []string {
	insights := firstN(content.Insights, 3)
	if len(profile.Values) > 0 {
		insights = append(insights, "Target audience values: "+strings.Join(firstN(profile.Values, 3), ", "))
	}
	if style := profile.Aesthetic.PreferredStyle; style != "" {
		insights = append(insights, "Preferred aesthetic style: "+style)
	}
	if compat != nil && len(compat.SharedValues) > 0 {
		insights = append(insights, "Brand-audience alignment: "+strings.Join(firstN(compat.SharedValues, 2), ", "))
	}
	switch a := profile.AffinityScore; {
	case a > 85:
		insights = append(insights, "High cultural affinity - strong audience connection potential")
	case a > 70:
		insights = append(insights, "Moderate cultural affinity - good audience alignment")
	default:
		insights = append(insights, "Lower cultural affinity - consider cultural adaptation")
	}
	return firstN(insights, maxInsights)
}

func synthesizeRecommendations(content ContentScore, profile AudienceProfile, compat *Compatibility, score float64) []string {
	recs := firstN(content.Recommendations, 2)
	if score < 75 {
		recs = append(recs, "Increase cultural authenticity and audience alignment")
	}
	if score < 85 {
		recs = append(recs, "Consider incorporating trending cultural elements")
	}
	if platforms := profile.Engagement.PreferredPlatforms; len(platforms) > 0 {
		recs = append(recs, fmt.Sprintf("Optimize for %s platforms", strings.Join(firstN(platforms, 2), ", ")))
	}
	if colors := profile.Aesthetic.Colors; len(colors) > 0 {
		recs = append(recs, fmt.Sprintf("Use %s color palette", strings.Join(firstN(colors, 2), ", ")))
	}
	if compat != nil {
		recs = append(recs, firstN(compat.Recommendations, 2)...)
	}
	return firstN(recs, maxRecommendations)
}

// FallbackAnalysis is the fixed result returned when the analysis pipeline
// cannot produce anything better.
func FallbackAnalysis(audience string, now time.Time) Analysis {
	return Analysis{
		CulturalScore: 75.0,
		Insights: []string{
			"Content shows general cultural appropriateness",
			fmt.Sprintf("Aligned with %s demographic expectations", audience),
			"Consider adding more culturally specific elements",
		},
		Recommendations: []string{
			"Enhance cultural authenticity",
			"Include diverse perspectives",
			"Research specific cultural preferences",
			"Test with target audience focus groups",
		},
		AudienceProfile: AudienceProfile{
			Segment:       audience,
			AffinityScore: 70,
			Values:        []string{"authenticity", "quality"},
			Aesthetic:     AestheticPreferences{PreferredStyle: "modern", Colors: []string{}, VisualElements: []string{}},
			Content:       ContentPreferences{FormatPreferences: []string{}, TopicsOfInterest: []string{}},
			Engagement:    EngagementPatterns{PeakTimes: []string{}, PreferredPlatforms: []string{"social media"}},
			Source:        SourceFallback,
		},
		TrendingTopics: []TrendingTopic{
			{Topic: "authenticity", TrendStrength: 75, CulturalRelevance: RelevanceHigh, RelatedInterests: []string{}, Growth: "+15%"},
			{Topic: "sustainability", TrendStrength: 70, CulturalRelevance: RelevanceMedium, RelatedInterests: []string{}, Growth: "+10%"},
		},
		Timestamp: now.UTC(),
	}
}
