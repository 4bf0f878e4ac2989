package ai

import (
	"fmt"
	"strings"
)

// PlatformSpecs are the per-platform creative constraints used for optimisation prompts.
var PlatformSpecs = map[string]PlatformSpec{
	"instagram": {AspectRatios: []string{"1:1", "9:16", "4:5"}, Duration: "15-60s", Style: "polished"},
	"tiktok":    {AspectRatios: []string{"9:16"}, Duration: "15-30s", Style: "authentic"},
	"youtube":   {AspectRatios: []string{"16:9"}, Duration: "30s-2min", Style: "cinematic"},
	"facebook":  {AspectRatios: []string{"16:9", "1:1"}, Duration: "15-60s", Style: "storytelling"},
	"linkedin":  {AspectRatios: []string{"16:9", "1:1"}, Duration: "30-90s", Style: "professional"},
}

// SpecFor returns the spec for platform, defaulting to Instagram's.
func SpecFor(platform string) PlatformSpec {
	if spec, ok := PlatformSpecs[strings.ToLower(platform)]; ok {
		return spec
	}
	return PlatformSpecs["instagram"]
}

// BuildContentAnalysisPrompt asks for a cultural appropriateness score and notes.
func BuildContentAnalysisPrompt(content, audience string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following content for cultural appropriateness and alignment with the target audience.\n\n")
	fmt.Fprintf(&sb, "Content: %s\n", content)
	fmt.Fprintf(&sb, "Target Audience: %s\n\n", audience)
	sb.WriteString("Provide analysis as JSON with:\n")
	sb.WriteString("- cultural_score: Score from 0-100 for cultural appropriateness\n")
	sb.WriteString("- insights: Array of cultural insights and observations\n")
	sb.WriteString("- recommendations: Array of recommendations for improvement\n")
	sb.WriteString("- potential_issues: Array of potential cultural sensitivity issues\n")
	sb.WriteString("- strengths: Array of cultural strengths in the content\n")
	sb.WriteString("- audience_alignment: Score from 0-100 for audience alignment\n\n")
	sb.WriteString("Consider cultural sensitivity, representation, authenticity, and audience resonance.")
	return sb.String()
}

// BuildPlatformPrompt asks for platform-specific adaptation advice.
func BuildPlatformPrompt(content, platform string) string {
	spec := SpecFor(platform)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Optimize this content for %s: %s\n\n", platform, content)
	sb.WriteString("Platform specifications:\n")
	fmt.Fprintf(&sb, "- Preferred aspect ratios: %s\n", strings.Join(spec.AspectRatios, ", "))
	fmt.Fprintf(&sb, "- Typical duration: %s\n", spec.Duration)
	fmt.Fprintf(&sb, "- Content style: %s\n\n", spec.Style)
	sb.WriteString("Provide optimization recommendations as JSON:\n")
	sb.WriteString("- optimized_concept: Content adapted for the platform\n")
	sb.WriteString("- technical_specs: Specific technical requirements\n")
	sb.WriteString("- content_adjustments: How content should be modified\n")
	sb.WriteString("- engagement_tactics: Platform-specific engagement strategies\n")
	sb.WriteString("- hashtag_suggestions: Relevant hashtags (if applicable)\n")
	sb.WriteString("- posting_recommendations: Best practices for posting\n")
	sb.WriteString("- optimization_score: 0-100 estimate of how well the content fits the platform")
	return sb.String()
}

// BuildStrategyPrompt assembles the campaign context for a creative strategy.
func BuildStrategyPrompt(o StrategyOpts) string {
	var sb strings.Builder
	sb.WriteString("You are a world-class creative strategist with deep expertise in advertising and cultural intelligence.\n")
	sb.WriteString("Create a comprehensive advertising campaign strategy based on:\n\n")
	fmt.Fprintf(&sb, "BRIEF: %s\n", o.Brief)
	fmt.Fprintf(&sb, "TARGET AUDIENCE: %s\n", o.TargetAudience)
	fmt.Fprintf(&sb, "BRAND CONTEXT: %s\n", o.BrandContext)
	fmt.Fprintf(&sb, "CAMPAIGN TYPE: %s\n", o.CampaignType)
	fmt.Fprintf(&sb, "BUDGET TIER: %s\n\n", o.BudgetTier)
	sb.WriteString("CULTURAL INSIGHTS:\n")
	fmt.Fprintf(&sb, "- Cultural Score: %g%%\n", o.CulturalScore)
	fmt.Fprintf(&sb, "- Key Insights: %s\n", strings.Join(o.Insights, ", "))
	fmt.Fprintf(&sb, "- Trending Topics: %s\n", strings.Join(o.TrendingTopics, ", "))
	fmt.Fprintf(&sb, "- Audience Values: %s\n\n", strings.Join(o.Values, ", "))
	sb.WriteString("AUDIENCE PREFERENCES:\n")
	fmt.Fprintf(&sb, "- Aesthetic: %s\n", o.AestheticJSON)
	fmt.Fprintf(&sb, "- Platforms: %s\n\n", strings.Join(o.Platforms, ", "))
	sb.WriteString("Provide your response as a structured JSON object with the following keys:\n")
	sb.WriteString("- core_concept: The main creative concept (string)\n")
	sb.WriteString("- visual_direction: Object with style, colors, composition, lighting\n")
	sb.WriteString("- messaging_strategy: Object with primary_message, tone, key_points, call_to_action\n")
	sb.WriteString("- execution_recommendations: Array of specific execution steps\n")
	sb.WriteString("- cultural_integration: Array of cultural integration points\n")
	sb.WriteString("- rationale: Detailed explanation of the strategy choices\n\n")
	sb.WriteString("Ensure all recommendations are culturally sensitive and aligned with the target audience.")
	return sb.String()
}

// BuildVariationsPrompt asks for count alternative executions of a concept.
func BuildVariationsPrompt(baseConcept string, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on this base creative concept: %s\n\n", baseConcept)
	fmt.Fprintf(&sb, "Generate %d distinct creative variations that keep the core message but explore different executions, ", count)
	sb.WriteString("emotional responses, visual or narrative approaches, and cultural angles.\n\n")
	sb.WriteString("For each variation, provide: variation_name, concept, key_differences, target_emotion, execution_style, cultural_angle.\n")
	sb.WriteString("Return as a JSON array of variation objects.")
	return sb.String()
}

// BuildImageConceptPrompt asks for art direction for an already enhanced image prompt.
func BuildImageConceptPrompt(enhancedPrompt string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a detailed image concept based on this enhanced prompt: %s\n\n", enhancedPrompt)
	sb.WriteString("Include a detailed visual description, color palette recommendations, composition guidelines, ")
	sb.WriteString("cultural authenticity notes and technical specifications.\n")
	sb.WriteString("Format as JSON with keys: visual_description, color_palette, composition, cultural_notes, technical_specs")
	return sb.String()
}

// BuildWebsitePrompt asks the model for a brand's official homepage.
func BuildWebsitePrompt(brand string) string {
	return fmt.Sprintf(
		"What is the official website URL for the brand %q? "+
			"Respond with only the full URL including https://, or NOT_FOUND if you are not certain.", brand)
}

// CleanJSONResponse strips markdown code fences around a JSON payload.
func CleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// ExtractJSON attempts to extract valid JSON from a potentially messy AI response.
// It tries direct parsing first, then strips markdown fences, then finds JSON delimiters.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if looksLikeJSON(raw) {
		return raw
	}

	cleaned := CleanJSONResponse(raw)
	if looksLikeJSON(cleaned) {
		return cleaned
	}

	// Start from whichever opening delimiter comes first.
	if start := strings.IndexAny(raw, "{["); start >= 0 {
		closing := "}"
		if raw[start] == '[' {
			closing = "]"
		}
		if end := strings.LastIndex(raw, closing); end > start {
			if candidate := raw[start : end+1]; looksLikeJSON(candidate) {
				return candidate
			}
		}
	}

	return cleaned
}

func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"))
}
