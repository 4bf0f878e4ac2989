package culture

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const defaultPlatformScore = 75.0

// Predict derives performance estimates from an analysis with fixed linear
// formulas. Every output is capped, whatever the input score.
func Predict(a Analysis, platform string, platformScore float64, now time.Time) Prediction {
	score := a.CulturalScore
	if math.IsNaN(score) {
		score = 0
	}

	var platformBoost, audienceBoost float64
	switch strings.ToLower(platform) {
	case "instagram", "tiktok":
		platformBoost = 5
	}
	if a.AudienceProfile.AffinityScore > 80 {
		audienceBoost = 10
	}
	topics := float64(len(a.TrendingTopics))

	return Prediction{
		CulturalPerformanceScore:  score,
		EngagementRate:            round1(math.Min(95, score*0.8+platformBoost+audienceBoost)),
		ConversionRate:            round1(math.Min(15, score*0.15+platformBoost/2)),
		BrandRecall:               round1(math.Min(90, score*0.9+audienceBoost)),
		ViralityPotential:         round1(math.Min(100, score*0.7+topics*5+platformBoost*2)),
		PlatformOptimizationScore: platformScore,
		KeySuccessFactors: []string{
			fmt.Sprintf("Strong cultural alignment (%g%%)", score),
			"Platform optimized for " + platform,
			fmt.Sprintf("%d trending topic connections", len(a.TrendingTopics)),
			"Authentic cultural representation",
		},
		ConfidenceInterval: "±5%",
		PredictedAt:        now.UTC(),
	}
}

// FallbackPrediction is the fixed prediction used when analysis cannot run.
func FallbackPrediction(now time.Time) Prediction {
	return Prediction{
		CulturalPerformanceScore:  75,
		EngagementRate:            68.0,
		ConversionRate:            8.5,
		BrandRecall:               72.0,
		ViralityPotential:         65.0,
		PlatformOptimizationScore: 70,
		KeySuccessFactors: []string{
			"General cultural appropriateness",
			"Standard platform optimization",
			"Basic audience alignment",
			"Professional presentation",
		},
		ConfidenceInterval: "±10%",
		PredictedAt:        now.UTC(),
	}
}
