package culture

import (
	"fmt"
	"math"
	"strings"
)

// ComputeCompatibility scores how well a brand description lines up with a
// resolved audience: ten points per brand term found in the audience's values
// or interests, on top of the audience's affinity score.
func ComputeCompatibility(brandContext string, profile AudienceProfile) Compatibility {
	haystack := make([]string, 0, len(profile.Values)+len(profile.Content.TopicsOfInterest))
	for _, v := range profile.Values {
		haystack = append(haystack, strings.ToLower(v))
	}
	for _, v := range profile.Content.TopicsOfInterest {
		haystack = append(haystack, strings.ToLower(v))
	}

	var shared []string
	for _, term := range strings.Fields(strings.ToLower(brandContext)) {
		for _, h := range haystack {
			if strings.Contains(h, term) {
				shared = append(shared, term)
				break
			}
		}
	}

	style := profile.Aesthetic.PreferredStyle
	if style == "" {
		style = "modern"
	}
	platforms := profile.Engagement.PreferredPlatforms
	if len(platforms) == 0 {
		platforms = []string{"social media"}
	}

	return Compatibility{
		Score:         math.Min(100, 10*float64(len(shared))+profile.AffinityScore),
		SharedValues:  firstN(shared, 5),
		Opportunities: firstN(profile.Content.TopicsOfInterest, 5),
		Recommendations: []string{
			fmt.Sprintf("Focus on %s aesthetic", style),
			fmt.Sprintf("Emphasize %s values", strings.Join(firstN(profile.Values, 3), ", ")),
			fmt.Sprintf("Use %s platforms", strings.Join(platforms, ", ")),
		},
	}
}
