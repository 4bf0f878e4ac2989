package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FallbackPlatformOptimization is returned when the model cannot optimise for a platform.
// It carries no score so callers apply their own default.
func FallbackPlatformOptimization(platform string) *PlatformOptimization {
	spec := SpecFor(platform)
	return &PlatformOptimization{
		Platform:         platform,
		OptimizedConcept: fmt.Sprintf("Content adapted for %s with a %s style", platform, spec.Style),
		TechnicalSpecs: map[string]any{
			"aspect_ratios": spec.AspectRatios,
			"duration":      spec.Duration,
		},
		ContentAdjustments:     []string{"Adapt format for " + platform, "Use platform-native styling"},
		EngagementTactics:      []string{"Use trending formats", "Engage with comments"},
		HashtagSuggestions:     []string{"#" + strings.ToLower(platform)},
		PostingRecommendations: []string{"Post during peak hours", "Keep a consistent schedule"},
		OptimizedAt:            time.Now().UTC(),
		Fallback:               true,
	}
}

// FallbackStrategy is the generic creative strategy used when the model is unavailable.
func FallbackStrategy(brief, audience string) *CreativeStrategy {
	return &CreativeStrategy{
		CoreConcept: fmt.Sprintf("Authentic storytelling for %s: %s", audience, brief),
		VisualDirection: VisualDirection{
			Style:       "modern",
			Colors:      []string{"brand colors", "neutral tones"},
			Composition: "clean and focused",
			Lighting:    "natural",
		},
		MessagingStrategy: MessagingStrategy{
			PrimaryMessage: brief,
			Tone:           "authentic and engaging",
			KeyPoints:      []string{"Quality", "Authenticity", "Community"},
			CallToAction:   "Learn more",
		},
		ExecutionRecommendations: []string{
			"Focus on authentic storytelling",
			"Use high-quality visuals",
			"Engage with the target community",
		},
		CulturalIntegration: []string{"Reflect audience values", "Use culturally relevant references"},
		Rationale:           "Fallback strategy based on general best practices",
		Fallback:            true,
	}
}

var fallbackVariationTemplates = []struct {
	name, emotion, style, angle string
}{
	{"Emotional Focus", "inspiration", "heartfelt storytelling", "shared human experiences"},
	{"Modern Approach", "excitement", "contemporary and dynamic", "current cultural trends"},
	{"Community Focus", "belonging", "inclusive ensemble", "community and togetherness"},
}

// FallbackVariations returns up to count canned variations of baseConcept.
func FallbackVariations(baseConcept string, count int) []ConceptVariation {
	if count > len(fallbackVariationTemplates) {
		count = len(fallbackVariationTemplates)
	}
	now := time.Now().UTC()
	out := make([]ConceptVariation, 0, count)
	for _, t := range fallbackVariationTemplates[:max(count, 0)] {
		out = append(out, ConceptVariation{
			VariationID:    uuid.NewString(),
			VariationName:  t.name,
			Concept:        fmt.Sprintf("%s with a %s execution", baseConcept, strings.ToLower(t.name)),
			KeyDifferences: "Emphasises " + t.angle,
			TargetEmotion:  t.emotion,
			ExecutionStyle: t.style,
			CulturalAngle:  t.angle,
			GeneratedAt:    now,
		})
	}
	return out
}
