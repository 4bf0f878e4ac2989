package culture

import "strings"

type archetype struct {
	key     string
	profile func(segment string) AudienceProfile
}

// archetypes is matched in order; the first key contained in the descriptor wins.
var archetypes = []archetype{
	{"millennials", func(seg string) AudienceProfile {
		return demographicProfile(seg, 78,
			[]string{"authenticity", "experiences", "social responsibility", "work-life balance"},
			AestheticPreferences{
				PreferredStyle: "authentic",
				Colors:         []string{"warm", "natural", "earth tones"},
				VisualElements: []string{"candid moments", "real people", "experiences"},
			},
			ContentPreferences{
				FormatPreferences: []string{"stories", "long-form video", "carousel posts"},
				TopicsOfInterest:  []string{"sustainability", "experiences", "technology", "wellness"},
			})
	}},
	{"gen z", func(seg string) AudienceProfile {
		return demographicProfile(seg, 85,
			[]string{"inclusivity", "creativity", "social change", "digital-first"},
			AestheticPreferences{
				PreferredStyle: "bold",
				Colors:         []string{"vibrant", "neon", "contrasting"},
				VisualElements: []string{"dynamic movement", "inclusive imagery", "creative editing"},
			},
			ContentPreferences{
				FormatPreferences: []string{"short videos", "reels", "tiktok style"},
				TopicsOfInterest:  []string{"social justice", "creativity", "gaming", "music"},
			})
	}},
	{"luxury", func(seg string) AudienceProfile {
		return demographicProfile(seg, 92,
			[]string{"quality", "exclusivity", "craftsmanship", "heritage"},
			AestheticPreferences{
				PreferredStyle: "elegant",
				Colors:         []string{"gold", "black", "white", "platinum"},
				VisualElements: []string{"premium materials", "sophisticated lighting", "minimalist"},
			},
			ContentPreferences{
				FormatPreferences: []string{"cinematic video", "high-resolution images"},
				TopicsOfInterest:  []string{"craftsmanship", "exclusivity", "heritage", "quality"},
			})
	}},
}

func demographicProfile(segment string, affinity float64, values []string, aesthetic AestheticPreferences, content ContentPreferences) AudienceProfile {
	content.PrefersVideo = true
	content.PrefersImages = true
	return AudienceProfile{
		Segment:       segment,
		AffinityScore: affinity,
		Values:        values,
		Aesthetic:     aesthetic,
		Content:       content,
		Engagement: EngagementPatterns{
			PeakTimes:          []string{"evening", "weekend"},
			PreferredPlatforms: []string{"instagram", "facebook", "youtube"},
			InteractionStyle:   "engagement-focused",
		},
		Source: SourceDemographic,
	}
}

// matchDemographic looks the descriptor up in the archetype table.
func matchDemographic(descriptor string) (AudienceProfile, bool) {
	lower := strings.ToLower(descriptor)
	for _, a := range archetypes {
		if strings.Contains(lower, a.key) {
			return a.profile(descriptor), true
		}
	}
	return AudienceProfile{}, false
}

// FallbackProfile is the generic profile used when nothing else resolves.
func FallbackProfile(segment string) AudienceProfile {
	return AudienceProfile{
		Segment:       segment,
		AffinityScore: defaultAffinity,
		Values:        []string{"quality", "reliability", "value"},
		Aesthetic: AestheticPreferences{
			PreferredStyle: "modern",
			Colors:         []string{"blue", "green", "neutral"},
			VisualElements: []string{"clean", "professional", "approachable"},
		},
		Content: ContentPreferences{
			PrefersVideo:      true,
			PrefersImages:     true,
			FormatPreferences: []string{"mixed content"},
			TopicsOfInterest:  []string{"general interest"},
		},
		Engagement: EngagementPatterns{
			PeakTimes:          []string{"business hours"},
			PreferredPlatforms: []string{"facebook", "linkedin"},
			InteractionStyle:   "informational",
		},
		Source: SourceFallback,
	}
}
