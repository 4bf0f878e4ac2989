package creative

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/thinkscotty/adalchemy/internal/culture"
)

type ContentRecommendation struct {
	ContentType      string   `json:"content_type"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Duration         string   `json:"duration,omitempty"`
	Count            string   `json:"count,omitempty"`
	Platforms        []string `json:"platforms"`
	Priority         string   `json:"priority"`
	CulturalElements []string `json:"cultural_elements"`
}

type Phase struct {
	Phase    string   `json:"phase"`
	Duration string   `json:"duration"`
	Tasks    []string `json:"tasks"`
}

type Timeline struct {
	TotalDuration string   `json:"total_duration"`
	Phases        []Phase  `json:"phases"`
	Milestones    []string `json:"key_milestones"`
}

type Budget struct {
	Tier            string            `json:"tier"`
	EstimatedRange  string            `json:"estimated_range"`
	Breakdown       map[string]string `json:"breakdown"`
	Recommendations []string          `json:"recommendations"`
}

var successMetrics = []string{
	"Cultural alignment score > 85%",
	"Engagement rate > 3.5%",
	"Brand recall > 70%",
	"Cultural authenticity score > 90%",
}

var riskMitigation = []string{
	"Regular cultural sensitivity reviews",
	"A/B testing with target audience",
	"Real-time sentiment monitoring",
	"Flexible content adaptation",
}

func contentRecommendations(a culture.Analysis, campaignType string) []ContentRecommendation {
	recs := []ContentRecommendation{
		{
			ContentType:      "hero_video",
			Title:            "Main Campaign Video",
			Description:      "Primary video content showcasing core campaign message",
			Duration:         "30-60 seconds",
			Platforms:        []string{"youtube", "instagram", "facebook"},
			Priority:         "high",
			CulturalElements: a.Insights[:min(3, len(a.Insights))],
		},
		{
			ContentType:      "social_images",
			Title:            "Social Media Image Series",
			Description:      "Culturally-targeted image content for social platforms",
			Count:            "5-8 images",
			Platforms:        []string{"instagram", "facebook", "twitter"},
			Priority:         "high",
			CulturalElements: a.AudienceProfile.Values[:min(3, len(a.AudienceProfile.Values))],
		},
	}
	ct := strings.ToLower(campaignType)
	if strings.Contains(ct, "video") || strings.Contains(ct, "mixed") {
		recs = append(recs, ContentRecommendation{
			ContentType:      "short_form_videos",
			Title:            "Short-Form Video Series",
			Description:      "Platform-optimized short videos for maximum engagement",
			Duration:         "15-30 seconds",
			Platforms:        []string{"tiktok", "instagram_reels", "youtube_shorts"},
			Priority:         "medium",
			CulturalElements: []string{"trending topics integration"},
		})
	}
	return recs
}

func timelineWeeks(budgetTier string) int {
	switch strings.ToLower(budgetTier) {
	case "small":
		return 4
	case "medium":
		return 8
	case "large":
		return 12
	default:
		return 6
	}
}

func campaignTimeline(budgetTier string) Timeline {
	weeks := timelineWeeks(budgetTier)
	half := weeks / 2
	return Timeline{
		TotalDuration: fmt.Sprintf("%d weeks", weeks),
		Phases: []Phase{
			{"Strategy & Planning", "1 week", []string{"Cultural analysis", "Content strategy", "Creative briefs"}},
			{"Content Creation", fmt.Sprintf("%d weeks", half), []string{"Video production", "Image creation", "Copy development"}},
			{"Launch & Optimization", fmt.Sprintf("%d weeks", half), []string{"Campaign launch", "Performance monitoring", "Real-time optimization"}},
		},
		Milestones: []string{
			"Week 1: Strategy approval",
			fmt.Sprintf("Week %d: Content completion", half),
			fmt.Sprintf("Week %d: Campaign completion", weeks),
		},
	}
}

func budgetBreakdown(budgetTier string) Budget {
	ranges := map[string]string{
		"small":  "$5,000 - $15,000",
		"medium": "$15,000 - $50,000",
		"large":  "$50,000 - $150,000",
	}
	est, ok := ranges[strings.ToLower(budgetTier)]
	if !ok {
		est = ranges["medium"]
	}
	return Budget{
		Tier:           budgetTier,
		EstimatedRange: est,
		Breakdown: map[string]string{
			"content_creation":       "40-50%",
			"cultural_research":      "10-15%",
			"platform_optimization":  "15-20%",
			"performance_monitoring": "10-15%",
			"contingency":            "10-15%",
		},
		Recommendations: []string{
			fmt.Sprintf("Prioritize cultural research for %s tier campaigns", budgetTier),
			"Allocate sufficient budget for authentic representation",
			"Include performance monitoring and optimization costs",
		},
	}
}

// titleCase upper-cases the first letter of each word and lower-cases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
