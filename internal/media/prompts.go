package media

import (
	"fmt"
	"math"
	"strings"
)

var imageResolutions = map[string]string{
	"1:1":    "1024x1024",
	"16:9":   "1920x1080",
	"9:16":   "1080x1920",
	"4:3":    "1024x768",
	"1.91:1": "1200x628",
}

func imageResolution(aspectRatio string) string {
	if r, ok := imageResolutions[aspectRatio]; ok {
		return r
	}
	return "1024x1024"
}

func videoResolution(aspectRatio string) string {
	if aspectRatio == "16:9" {
		return "1920x1080"
	}
	return "1080x1920"
}

// EnhanceVideoPrompt folds insights, values and style into a video prompt.
func EnhanceVideoPrompt(prompt string, cc CulturalContext) string {
	var parts []string
	if len(cc.Insights) > 0 {
		parts = append(parts, "incorporating "+strings.Join(head(cc.Insights, 2), ", "))
	}
	if len(cc.Values) > 0 {
		parts = append(parts, "emphasizing "+strings.Join(head(cc.Values, 2), ", ")+" values")
	}
	style := cc.PreferredStyle
	if style == "" {
		style = "modern"
	}
	parts = append(parts, style+" aesthetic with authentic cultural representation")
	return fmt.Sprintf("%s. %s. High-quality cinematic video with authentic storytelling and cultural sensitivity.",
		prompt, strings.Join(parts, ", "))
}

// EnhanceImagePrompt is EnhanceVideoPrompt for stills, adding the colour
// palette. The audience's preferred style wins over the requested one.
func EnhanceImagePrompt(prompt string, cc CulturalContext, style string) string {
	var parts []string
	if len(cc.Insights) > 0 {
		parts = append(parts, "incorporating "+strings.Join(head(cc.Insights, 2), ", "))
	}
	if len(cc.Values) > 0 {
		parts = append(parts, "emphasizing "+strings.Join(head(cc.Values, 2), ", ")+" values")
	}
	if len(cc.Colors) > 0 {
		parts = append(parts, "using "+strings.Join(head(cc.Colors, 2), ", ")+" color palette")
	}
	if cc.PreferredStyle != "" {
		style = cc.PreferredStyle
	}
	parts = append(parts, style+" aesthetic with authentic cultural representation")
	return fmt.Sprintf("%s. %s. High-quality, culturally authentic imagery with professional composition and lighting.",
		prompt, strings.Join(parts, ", "))
}

type variationPrompt struct {
	kind   string
	prompt string
}

// videoVariationPrompts returns up to count angles on base. Angles whose
// inputs are missing are skipped rather than padded.
func videoVariationPrompts(base string, cc CulturalContext, count int) []variationPrompt {
	var out []variationPrompt
	if count >= 1 {
		out = append(out, variationPrompt{"Emotional", base + " with emotional storytelling and heartfelt moments"})
	}
	if count >= 2 && len(cc.Insights) > 0 {
		out = append(out, variationPrompt{"Cultural",
			fmt.Sprintf("%s highlighting %s with authentic cultural representation", base, cc.Insights[0])})
	}
	if count >= 3 && len(cc.Values) > 0 {
		out = append(out, variationPrompt{"Values-Based",
			fmt.Sprintf("%s emphasizing %s through visual narrative", base, cc.Values[0])})
	}
	if count >= 4 {
		out = append(out, variationPrompt{"Modern", base + " with contemporary styling and modern visual approach"})
	}
	if count >= 5 {
		out = append(out, variationPrompt{"Community", base + " showcasing community and togetherness"})
	}
	return out[:min(count, len(out))]
}

var seriesTypes = []string{"Original", "Cultural Focus", "Values-Based", "Emotional", "Contemporary", "Community"}

var seriesStyles = []string{"photorealistic", "artistic", "minimalist", "dynamic"}

// imageVariationPrompts returns the series prompts. Positions past the
// generated list reuse base.
func imageVariationPrompts(base string, cc CulturalContext, count int) []string {
	out := []string{base}
	if count > 1 && len(cc.Insights) > 0 {
		out = append(out, fmt.Sprintf("%s highlighting %s with authentic representation", base, cc.Insights[0]))
	}
	if count > 2 && len(cc.Values) > 0 {
		out = append(out, fmt.Sprintf("%s emphasizing %s through visual storytelling", base, cc.Values[0]))
	}
	if count > 3 {
		out = append(out, base+" with emotional depth and human connection")
	}
	if count > 4 {
		out = append(out, base+" with contemporary styling and fresh perspective")
	}
	if count > 5 {
		out = append(out, base+" showcasing community and togetherness")
	}
	return out[:min(count, len(out))]
}

func seriesType(i int) string {
	if i < len(seriesTypes) {
		return seriesTypes[i]
	}
	return fmt.Sprintf("Variation %d", i+1)
}

type platformImageSpec struct {
	AspectRatio string
	Style       string
}

var platformImageSpecs = map[string]platformImageSpec{
	"instagram": {"1:1", "vibrant"},
	"facebook":  {"16:9", "engaging"},
	"twitter":   {"16:9", "dynamic"},
	"linkedin":  {"1.91:1", "professional"},
}

func imageSpecFor(platform string) platformImageSpec {
	if s, ok := platformImageSpecs[strings.ToLower(platform)]; ok {
		return s
	}
	return platformImageSpec{"1:1", "photorealistic"}
}

// estimateProcessingTime gives a human range for a Veo render.
func estimateProcessingTime(duration, style string) string {
	base := 60
	if strings.Contains(strings.ToLower(style), "cinematic") {
		base += 30
	}
	switch duration {
	case "10s":
		base += 30
	case "15s":
		base += 60
	}
	return fmt.Sprintf("%d-%d seconds", base, base+30)
}

// authenticityScore rewards contexts carrying insights and values.
func authenticityScore(cc CulturalContext) float64 {
	s := math.Min(100, cc.CulturalScore+2*float64(len(cc.Insights))+1.5*float64(len(cc.Values)))
	return math.Round(s*10) / 10
}

// consistency is 100 minus the score spread times factor, floored at zero.
func consistency(scores []float64, factor float64) float64 {
	if len(scores) < 2 {
		return 100
	}
	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	return math.Round(math.Max(0, 100-(hi-lo)*factor)*10) / 10
}

func head(s []string, n int) []string {
	return s[:min(n, len(s))]
}
