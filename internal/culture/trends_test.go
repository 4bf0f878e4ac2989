package culture

import (
	"context"
	"errors"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)

func newTestExtractor(graph TasteGraph, opts ...TrendOption) *TrendExtractor {
	r := NewProfileResolver(graph, WithSleeper((&sleepRecorder{}).sleep))
	opts = append([]TrendOption{WithPacing(0), WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewTrendExtractor(r, opts...)
}

func TestExtractSortsByStrengthStably(t *testing.T) {
	graph := &fakeGraph{
		entities: map[string]string{"a|*": "ea", "b|*": "eb", "c|*": "ec"},
		tags: map[string][]string{
			"ea": makeTags(3, "a"),
			"eb": makeTags(10, "b"),
			"ec": makeTags(10, "c"),
		},
	}
	profile := AudienceProfile{
		Segment: "test",
		Values:  []string{"d"},
		Content: ContentPreferences{TopicsOfInterest: []string{"a", "b", "c"}},
	}

	out := newTestExtractor(graph).Extract(context.Background(), profile)
	if !out.IsOK() {
		t.Fatalf("status = %v (%s)", out.Status, out.Reason)
	}

	var got []string
	for _, topic := range out.Value.Topics {
		got = append(got, topic.Topic)
	}
	want := []string{"d", "b", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("topics = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("topics = %v, want %v", got, want)
		}
	}
	for i := 1; i < len(out.Value.Topics); i++ {
		if out.Value.Topics[i].TrendStrength > out.Value.Topics[i-1].TrendStrength {
			t.Errorf("not sorted descending at %d", i)
		}
	}

	d := out.Value.Topics[0]
	if d.TrendStrength != 50 || d.CulturalRelevance != RelevanceUnknown || d.Growth != "stable" {
		t.Errorf("unresolved topic = %+v", d)
	}
	if b := out.Value.Topics[1]; b.TrendStrength != 20 || len(b.RelatedInterests) != 5 {
		t.Errorf("topic b = %+v", b)
	}
	if out.Value.TotalAnalyzed != 4 {
		t.Errorf("TotalAnalyzed = %d, want 4", out.Value.TotalAnalyzed)
	}
	if len(out.Value.Moments) != 4 || out.Value.Moments[3].Moment != "March seasonal trends" {
		t.Errorf("moments = %+v", out.Value.Moments)
	}
}

func TestExtractCapsExternalLookups(t *testing.T) {
	graph := &fakeGraph{}
	topics := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9", "t10", "t11", "t12"}
	profile := AudienceProfile{Content: ContentPreferences{TopicsOfInterest: topics}}

	out := newTestExtractor(graph).Extract(context.Background(), profile)
	if len(out.Value.Topics) != 5 {
		t.Errorf("analysed %d topics, want cap of 5", len(out.Value.Topics))
	}
	if out.Value.TotalAnalyzed != 10 {
		t.Errorf("TotalAnalyzed = %d, want union limit 10", out.Value.TotalAnalyzed)
	}
}

func TestExtractHighRelevance(t *testing.T) {
	graph := &fakeGraph{
		entities: map[string]string{"music|*": "m"},
		tags:     map[string][]string{"m": makeTags(60, "m")},
	}
	out := newTestExtractor(graph).Extract(context.Background(),
		AudienceProfile{Content: ContentPreferences{TopicsOfInterest: []string{"music"}}})
	topic := out.Value.Topics[0]
	if topic.TrendStrength != 100 || topic.CulturalRelevance != RelevanceHigh || topic.Growth != "+100%" {
		t.Errorf("topic = %+v", topic)
	}
}

func TestExtractFallbacks(t *testing.T) {
	t.Run("empty profile", func(t *testing.T) {
		out := newTestExtractor(nil).Extract(context.Background(), AudienceProfile{Segment: "s"})
		if !out.IsDegraded() || out.Value.OverallScore != 71 || len(out.Value.Topics) != 3 {
			t.Errorf("got %v %+v", out.Status, out.Value)
		}
	})
	t.Run("insights fail for a resolved topic", func(t *testing.T) {
		graph := &fakeGraph{
			entities:    map[string]string{"sailing|*": "e"},
			insightsErr: errors.New("down"),
		}
		out := newTestExtractor(graph).Extract(context.Background(),
			AudienceProfile{Content: ContentPreferences{TopicsOfInterest: []string{"sailing", "unmatched"}}})
		if !out.IsDegraded() || out.Reason == "" {
			t.Fatalf("status = %v (%q), want degraded", out.Status, out.Reason)
		}
		if len(out.Value.Topics) != 2 || out.Value.TotalAnalyzed != 2 {
			t.Fatalf("topics = %+v", out.Value.Topics)
		}
		// Sorted by strength: unmatched (50) before sailing (0).
		sailing := out.Value.Topics[1]
		if sailing.Topic != "sailing" || sailing.TrendStrength != 0 ||
			sailing.CulturalRelevance != RelevanceMedium || sailing.Growth != "stable" || len(sailing.RelatedInterests) != 0 {
			t.Errorf("sailing = %+v", sailing)
		}
	})
}

func TestTopicsFromProfile(t *testing.T) {
	profile := AudienceProfile{Content: ContentPreferences{
		TopicsOfInterest: []string{"a", "b", "c", "d", "e", "f"},
	}}
	topics := TopicsFromProfile(profile, 80)
	if len(topics) != 5 {
		t.Fatalf("len = %d, want 5", len(topics))
	}
	if topics[1].CulturalRelevance != RelevanceHigh || topics[2].CulturalRelevance != RelevanceMedium {
		t.Errorf("relevance tiers wrong: %+v", topics)
	}
	if topics[4].TrendStrength != 60 || topics[4].Growth != "+35%" {
		t.Errorf("last topic = %+v", topics[4])
	}
}
