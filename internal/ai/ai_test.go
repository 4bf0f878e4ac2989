package ai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

type fakeProvider struct {
	reply    string
	err      error
	requests []ChatRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Chat(_ context.Context, req ChatRequest) (*ChatResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &ChatResponse{Content: f.reply, Provider: "fake", Model: "fake-1"}, nil
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"prose around object", `Here you go: {"a":1} hope it helps`, `{"a":1}`},
		{"prose around array", `Sure! [{"x":"y"}] done`, `[{"x":"y"}]`},
		{"prose around array of objects", `Ideas: [{"a":1}, {"b":2}] enjoy`, `[{"a":1}, {"b":2}]`},
		{"object holding an array", `Result {"items":[1,2]} end`, `{"items":[1,2]}`},
		{"no json", "nothing here", "nothing here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.raw); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSpecForDefaultsToInstagram(t *testing.T) {
	if got := SpecFor("TikTok").Duration; got != "15-30s" {
		t.Errorf("tiktok duration = %q", got)
	}
	if got := SpecFor("myspace").Style; got != "polished" {
		t.Errorf("unknown platform style = %q, want polished", got)
	}
}

func TestAnalyzeContentParsesFencedJSON(t *testing.T) {
	p := &fakeProvider{reply: "```json\n{\"cultural_score\": 82, \"insights\": [\"resonant\"], \"recommendations\": [\"add music\"]}\n```"}
	c := NewClient(p)

	got, err := c.AnalyzeContent(context.Background(), "ad copy", "gen z")
	if err != nil {
		t.Fatalf("AnalyzeContent: %v", err)
	}
	if got.CulturalScore == nil || *got.CulturalScore != 82 {
		t.Errorf("CulturalScore = %v, want 82", got.CulturalScore)
	}
	if got.AudienceAlignment != nil {
		t.Errorf("AudienceAlignment = %v, want nil when absent", *got.AudienceAlignment)
	}
	if len(p.requests) != 1 || !p.requests[0].JSONMode {
		t.Errorf("expected one JSON-mode request, got %+v", p.requests)
	}
	if !strings.Contains(p.requests[0].Messages[0].Content, "gen z") {
		t.Error("prompt does not mention the audience")
	}
}

func TestAnalyzeContentErrors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := NewClient(&fakeProvider{err: boom}).AnalyzeContent(context.Background(), "x", "y"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
	if _, err := NewClient(&fakeProvider{reply: "{not json}"}).AnalyzeContent(context.Background(), "x", "y"); err == nil {
		t.Error("expected parse error")
	}
}

func TestOptimizeForPlatformStampsPlatform(t *testing.T) {
	c := NewClient(&fakeProvider{reply: `{"optimized_concept":"vertical cut","optimization_score":88}`})
	got, err := c.OptimizeForPlatform(context.Background(), "concept", "tiktok")
	if err != nil {
		t.Fatalf("OptimizeForPlatform: %v", err)
	}
	if got.Platform != "tiktok" || got.OptimizedAt.IsZero() {
		t.Errorf("platform/timestamp not set: %+v", got)
	}
	if got.OptimizationScore == nil || *got.OptimizationScore != 88 {
		t.Errorf("OptimizationScore = %v", got.OptimizationScore)
	}
}

func TestGenerateVariationsTruncatesAndAssignsIDs(t *testing.T) {
	c := NewClient(&fakeProvider{reply: `[{"variation_name":"A"},{"variation_name":"B"},{"variation_name":"C"}]`})
	got, err := c.GenerateVariations(context.Background(), "base", 2)
	if err != nil {
		t.Fatalf("GenerateVariations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].VariationID == "" || got[0].VariationID == got[1].VariationID {
		t.Errorf("variation ids not unique: %q %q", got[0].VariationID, got[1].VariationID)
	}
}

func TestOfficialWebsite(t *testing.T) {
	tests := []struct {
		reply string
		want  string
	}{
		{"https://www.nike.com", "https://www.nike.com"},
		{"  `https://patagonia.com`\n", "https://patagonia.com"},
		{"NOT_FOUND", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := NewClient(&fakeProvider{reply: tt.reply}).OfficialWebsite(context.Background(), "brand")
		if err != nil {
			t.Fatalf("OfficialWebsite(%q): %v", tt.reply, err)
		}
		if got != tt.want {
			t.Errorf("OfficialWebsite(%q) = %q, want %q", tt.reply, got, tt.want)
		}
	}
}

func TestFallbacks(t *testing.T) {
	opt := FallbackPlatformOptimization("youtube")
	if !opt.Fallback || opt.OptimizationScore != nil {
		t.Errorf("fallback optimisation should be flagged and unscored: %+v", opt)
	}

	s := FallbackStrategy("launch", "millennials")
	if !s.Fallback || !strings.Contains(s.CoreConcept, "millennials") {
		t.Errorf("unexpected fallback strategy: %+v", s)
	}

	vars := FallbackVariations("base", 5)
	if len(vars) != 3 {
		t.Fatalf("len = %d, want 3", len(vars))
	}
	names := []string{vars[0].VariationName, vars[1].VariationName, vars[2].VariationName}
	want := []string{"Emotional Focus", "Modern Approach", "Community Focus"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("variation %d = %q, want %q", i, names[i], want[i])
		}
	}
	if len(FallbackVariations("base", 0)) != 0 {
		t.Error("count 0 should yield no variations")
	}
}

func TestGeminiChatRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "k" {
			t.Errorf("missing api key")
		}
		body, _ := io.ReadAll(r.Body)
		var req geminiRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.GenerationConfig == nil || req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("JSON mode not requested: %+v", req.GenerationConfig)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"ok\":true}"}]}}],"usageMetadata":{"totalTokenCount":42}}`))
	}))
	defer srv.Close()

	g := NewGeminiProvider("k", "test-model")
	g.baseURL = srv.URL
	resp, err := g.Chat(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
		JSONMode: true,
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Content != `{"ok":true}` || resp.TokensUsed != 42 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGeminiWithoutKey(t *testing.T) {
	_, err := NewGeminiProvider("", "").Chat(context.Background(), ChatRequest{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestOllamaErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"model not found","type":"api_error"}}`))
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "tiny").Chat(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("err = %v, want model not found", err)
	}
}

func TestMessagesToPrompt(t *testing.T) {
	got := messagesToPrompt([]Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hello"},
	})
	if got != "be brief\n\nhello\n" {
		t.Errorf("messagesToPrompt = %q", got)
	}
}
