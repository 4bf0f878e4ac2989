package culture

import (
	"math"
	"strings"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestCulturalScore(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInputs
		want float64
	}{
		{"all defaults", ScoreInputs{}, 68.5},
		{"gen z scenario", ScoreInputs{Content: ptr(80), Affinity: ptr(85)}, 78.5},
		{"all supplied", ScoreInputs{Content: ptr(90), Affinity: ptr(70), Compatibility: ptr(100)}, 87},
		{"rounded to one decimal", ScoreInputs{Content: ptr(77.77), Affinity: ptr(65), Compatibility: ptr(70)}, 71.6},
		{"inputs clamped high", ScoreInputs{Content: ptr(500), Affinity: ptr(500), Compatibility: ptr(500)}, 100},
		{"inputs clamped low", ScoreInputs{Content: ptr(-50), Affinity: ptr(-1), Compatibility: ptr(-9)}, 0},
		{"NaN treated as zero", ScoreInputs{Content: ptr(math.NaN())}, 40.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CulturalScore(tt.in)
			if got != tt.want {
				t.Errorf("CulturalScore = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("score %v out of range", got)
			}
		})
	}
}

func TestAggregateSynthesis(t *testing.T) {
	profile, _ := matchDemographic("gen z")
	content := ContentScore{
		Score:           40,
		Insights:        []string{"i1", "i2", "i3", "i4"},
		Recommendations: []string{"r1", "r2", "r3"},
	}
	compat := ComputeCompatibility("creativity music brand", profile)

	a := Aggregate(profile, content, &compat, fixedNow)

	if len(a.Insights) != 5 || a.Insights[0] != "i1" || a.Insights[2] != "i3" {
		t.Errorf("insights = %v", a.Insights)
	}
	if a.Insights[3] != "Target audience values: inclusivity, creativity, social change" {
		t.Errorf("values insight = %q", a.Insights[3])
	}
	if len(a.Recommendations) != 5 {
		t.Fatalf("recommendations = %v", a.Recommendations)
	}
	wantRecs := []string{
		"r1", "r2",
		"Increase cultural authenticity and audience alignment",
		"Consider incorporating trending cultural elements",
		"Optimize for instagram, facebook platforms",
	}
	for i, want := range wantRecs {
		if a.Recommendations[i] != want {
			t.Errorf("recommendation %d = %q, want %q", i, a.Recommendations[i], want)
		}
	}
	if a.Compatibility == nil || a.Compatibility.Score != 100 {
		t.Errorf("compatibility = %+v", a.Compatibility)
	}
	if len(a.TrendingTopics) != 4 {
		t.Errorf("trending topics = %d, want 4", len(a.TrendingTopics))
	}
}

func TestAffinityTierInsight(t *testing.T) {
	tests := []struct {
		affinity float64
		prefix   string
	}{
		{92, "High cultural affinity"},
		{85, "Moderate cultural affinity"},
		{70, "Lower cultural affinity"},
	}
	for _, tt := range tests {
		profile := AudienceProfile{AffinityScore: tt.affinity}
		a := Aggregate(profile, ContentScore{Score: 90}, nil, fixedNow)
		last := a.Insights[len(a.Insights)-1]
		if !strings.HasPrefix(last, tt.prefix) {
			t.Errorf("affinity %v: insight %q, want prefix %q", tt.affinity, last, tt.prefix)
		}
	}
}

func TestComputeCompatibility(t *testing.T) {
	profile := AudienceProfile{
		AffinityScore: 60,
		Values:        []string{"sustainable living", "community"},
		Content:       ContentPreferences{TopicsOfInterest: []string{"running", "outdoor gear"}},
	}
	c := ComputeCompatibility("Sustainable Running shoes", profile)
	if c.Score != 80 {
		t.Errorf("score = %v, want 60 + 2*10", c.Score)
	}
	if len(c.SharedValues) != 2 || c.SharedValues[0] != "sustainable" || c.SharedValues[1] != "running" {
		t.Errorf("shared = %v", c.SharedValues)
	}
	if c.Recommendations[0] != "Focus on modern aesthetic" || c.Recommendations[2] != "Use social media platforms" {
		t.Errorf("recommendations = %v", c.Recommendations)
	}
}

func TestFallbackAnalysisShape(t *testing.T) {
	a := FallbackAnalysis("gen z", fixedNow)
	if a.CulturalScore != 75.0 || len(a.Insights) != 3 || len(a.Recommendations) != 4 {
		t.Errorf("fallback = %v / %d insights / %d recs", a.CulturalScore, len(a.Insights), len(a.Recommendations))
	}
	if a.AudienceProfile.AffinityScore != 70 || a.AudienceProfile.Aesthetic.PreferredStyle != "modern" {
		t.Errorf("fallback profile = %+v", a.AudienceProfile)
	}
}
