package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/thinkscotty/adalchemy/internal/config"
	"github.com/thinkscotty/adalchemy/internal/creative"
	"github.com/thinkscotty/adalchemy/internal/culture"
	"github.com/thinkscotty/adalchemy/internal/report"
	"github.com/thinkscotty/adalchemy/internal/search"
)

type fakeCulture struct {
	status   culture.Status
	audience string
	brand    string
	platform string
	panics   bool
}

func outcomeOf[T any](status culture.Status, v T) culture.Outcome[T] {
	switch status {
	case culture.StatusDegraded:
		return culture.Degraded(v, "taste graph unavailable")
	case culture.StatusFatal:
		return culture.Fatal[T]("audience is required")
	}
	return culture.OK(v)
}

func (f *fakeCulture) Analyze(_ context.Context, req culture.AnalyzeRequest) culture.Outcome[culture.Analysis] {
	if f.panics {
		panic("boom")
	}
	f.audience, f.brand = req.Audience, req.BrandContext
	return outcomeOf(f.status, culture.Analysis{CulturalScore: 82})
}

func (f *fakeCulture) Audience(_ context.Context, segment string) culture.Outcome[culture.AudienceProfile] {
	f.audience = segment
	return outcomeOf(f.status, culture.AudienceProfile{Segment: segment})
}

func (f *fakeCulture) Trends(_ context.Context, audience string) culture.Outcome[culture.TrendReport] {
	f.audience = audience
	return outcomeOf(f.status, culture.TrendReport{Segment: audience})
}

func (f *fakeCulture) Compatibility(_ context.Context, brand, audience string) culture.Outcome[culture.Compatibility] {
	f.brand, f.audience = brand, audience
	return outcomeOf(f.status, culture.Compatibility{Score: 80})
}

func (f *fakeCulture) PredictPerformance(_ context.Context, _, audience, platform string) culture.Outcome[culture.Prediction] {
	f.audience, f.platform = audience, platform
	return outcomeOf(f.status, culture.Prediction{CulturalPerformanceScore: 77})
}

type fakeCreative struct {
	status  culture.Status
	video   creative.VideoRequest
	limit   int
	histErr error
}

func (f *fakeCreative) GenerateVideo(_ context.Context, req creative.VideoRequest) culture.Outcome[creative.VideoGeneration] {
	f.video = req
	return outcomeOf(f.status, creative.VideoGeneration{})
}

func (f *fakeCreative) GenerateImage(context.Context, creative.ImageRequest) culture.Outcome[creative.ImageGeneration] {
	return outcomeOf(f.status, creative.ImageGeneration{})
}

func (f *fakeCreative) GenerateCampaign(_ context.Context, req creative.CampaignRequest) culture.Outcome[creative.CampaignStrategy] {
	return outcomeOf(f.status, creative.CampaignStrategy{CampaignName: req.TargetAudience})
}

func (f *fakeCreative) History(_ context.Context, limit int) ([]creative.Record, error) {
	f.limit = limit
	if f.histErr != nil {
		return nil, f.histErr
	}
	return []creative.Record{{ID: "a", Kind: creative.KindVideo}}, nil
}

type fakeReports struct{}

func (fakeReports) CulturalAnalysis(_ context.Context, req report.Request) culture.Outcome[report.Report] {
	return culture.OK(report.Report{BrandName: req.BrandName})
}

func (fakeReports) CreativeStrategy(_ context.Context, req report.StrategyRequest) culture.Outcome[report.StrategyReport] {
	return culture.Degraded(report.StrategyReport{BudgetTier: req.BudgetTier}, "campaign: strategy: timeout")
}

type fakeSearch struct {
	results []search.Result
	err     error
}

func (f fakeSearch) Search(context.Context, string) ([]search.Result, string, error) {
	return f.results, "wikipedia", f.err
}

type testEnv struct {
	handler  http.Handler
	culture  *fakeCulture
	creative *fakeCreative
	cfg      config.Config
}

func newTestEnv(t *testing.T, mutate func(*config.Config, *Deps)) *testEnv {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Media.OutputDir = t.TempDir()
	env := &testEnv{culture: &fakeCulture{}, creative: &fakeCreative{}}
	deps := Deps{
		Culture:  env.culture,
		Creative: env.creative,
		Reports:  fakeReports{},
		Search:   fakeSearch{results: []search.Result{{Title: "Sneakers"}}},
	}
	if mutate != nil {
		mutate(&cfg, &deps)
	}
	env.cfg = cfg
	env.handler = New(cfg, deps, "test").Handler()
	return env
}

func (e *testEnv) do(t *testing.T, method, target, body string, header ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, target, err)
		}
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)
	rec, body := env.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || body["status"] != "healthy" || body["version"] != "test" {
		t.Errorf("health = %d %v", rec.Code, body)
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		status     culture.Status
		wantCode   int
		wantOut    string
		wantDetail string
	}{
		{"ok", `{"content":"Spring drop","target_audience":"gen z","brand_context":"Acme"}`, culture.StatusOK, 200, "ok", ""},
		{"degraded", `{"content":"Spring drop","target_audience":"gen z"}`, culture.StatusDegraded, 200, "degraded", ""},
		{"missing content", `{"target_audience":"gen z"}`, culture.StatusOK, 400, "", "content is required"},
		{"bad type", `{"content":"x","target_audience":"y","analysis_type":"poem"}`, culture.StatusOK, 400, "", "analysis_type must be one of"},
		{"invalid json", `{"content": nope}`, culture.StatusOK, 400, "", "invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.culture.status = tt.status
			rec, body := env.do(t, http.MethodPost, "/api/cultural/analyze", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d (%v)", rec.Code, tt.wantCode, body)
			}
			if tt.wantDetail != "" {
				if d, _ := body["detail"].(string); !strings.Contains(d, tt.wantDetail) {
					t.Errorf("detail = %q, want %q", d, tt.wantDetail)
				}
				return
			}
			if body["status"] != "success" || body["outcome"] != tt.wantOut {
				t.Errorf("body = %v", body)
			}
			if tt.wantOut == "degraded" && body["degraded_reason"] != "taste graph unavailable" {
				t.Errorf("degraded_reason = %v", body["degraded_reason"])
			}
			analysis, _ := body["analysis"].(map[string]any)
			if analysis["cultural_score"] != 82.0 {
				t.Errorf("analysis = %v", analysis)
			}
		})
	}
}

func TestCulturalQueryRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, body := env.do(t, http.MethodGet, "/api/cultural/audience/gen%20z", "")
	if rec.Code != 200 || env.culture.audience != "gen z" {
		t.Errorf("audience route = %d, segment %q", rec.Code, env.culture.audience)
	}
	if _, ok := body["profile"]; !ok {
		t.Errorf("audience body = %v", body)
	}

	if rec, _ := env.do(t, http.MethodGet, "/api/cultural/trends?audience=millennials", ""); rec.Code != 200 || env.culture.audience != "millennials" {
		t.Errorf("trends route = %d, audience %q", rec.Code, env.culture.audience)
	}
	if rec, body := env.do(t, http.MethodGet, "/api/cultural/trends", ""); rec.Code != 400 || body["detail"] != "audience is required" {
		t.Errorf("trends without audience = %d %v", rec.Code, body)
	}

	rec, body = env.do(t, http.MethodGet, "/api/cultural/compatibility-score?brand_values=eco&audience_segment=gen+z", "")
	if rec.Code != 200 || env.culture.brand != "eco" || env.culture.audience != "gen z" {
		t.Errorf("compatibility = %d %v", rec.Code, body)
	}
	if rec, _ := env.do(t, http.MethodGet, "/api/cultural/compatibility-score?brand_values=eco", ""); rec.Code != 400 {
		t.Errorf("compatibility without segment = %d, want 400", rec.Code)
	}

	rec, _ = env.do(t, http.MethodPost, "/api/cultural/predict", `{"concept":"c","target_audience":"gen z"}`)
	if rec.Code != 200 || env.culture.platform != "general" {
		t.Errorf("predict = %d, platform %q", rec.Code, env.culture.platform)
	}
}

func TestCreativeRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, body := env.do(t, http.MethodPost, "/api/creative/video/generate",
		`{"prompt":"Runner at dawn","target_audience":"gen z","duration":"15s","aspect_ratio":"9:16"}`)
	if rec.Code != 200 || body["outcome"] != "ok" {
		t.Fatalf("video = %d %v", rec.Code, body)
	}
	if env.creative.video.Duration != "15s" || env.creative.video.AspectRatio != "9:16" {
		t.Errorf("video request = %+v", env.creative.video)
	}
	if rec, _ := env.do(t, http.MethodPost, "/api/creative/video/generate", `{"prompt":"x","target_audience":"y","aspect_ratio":"2:1"}`); rec.Code != 400 {
		t.Errorf("bad aspect ratio = %d, want 400", rec.Code)
	}

	if rec, _ := env.do(t, http.MethodPost, "/api/creative/image/generate", `{"prompt":"x","target_audience":"y","count":3}`); rec.Code != 200 {
		t.Errorf("image = %d", rec.Code)
	}
	if rec, _ := env.do(t, http.MethodPost, "/api/creative/image/generate", `{"prompt":"x","target_audience":"y","count":50}`); rec.Code != 400 {
		t.Errorf("image count 50 = %d, want 400", rec.Code)
	}

	rec, body = env.do(t, http.MethodPost, "/api/creative/campaign", `{"campaign_brief":"b","target_audience":"gen z","budget_tier":"large"}`)
	campaign, _ := body["campaign"].(map[string]any)
	if rec.Code != 200 || campaign["campaign_name"] != "gen z" {
		t.Errorf("campaign = %d %v", rec.Code, body)
	}
}

func TestFatalOutcomeIsBadRequest(t *testing.T) {
	env := newTestEnv(t, nil)
	env.creative.status = culture.StatusFatal
	rec, body := env.do(t, http.MethodPost, "/api/creative/campaign", `{"campaign_brief":"  ","target_audience":"gen z"}`)
	if rec.Code != http.StatusBadRequest || body["detail"] != "audience is required" {
		t.Errorf("fatal = %d %v", rec.Code, body)
	}
}

func TestHistory(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		histErr   error
		wantCode  int
		wantLimit int
	}{
		{"default limit", "", nil, 200, creative.DefaultHistoryLimit},
		{"explicit limit", "?limit=3", nil, 200, 3},
		{"bad limit", "?limit=-1", nil, 400, 0},
		{"store failure", "", errors.New("disk full"), 500, creative.DefaultHistoryLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.creative.histErr = tt.histErr
			rec, body := env.do(t, http.MethodGet, "/api/creative/history"+tt.query, "")
			if rec.Code != tt.wantCode || env.creative.limit != tt.wantLimit {
				t.Errorf("code = %d limit = %d, want %d %d (%v)", rec.Code, env.creative.limit, tt.wantCode, tt.wantLimit, body)
			}
			if tt.wantCode == 200 && body["count"] != 1.0 {
				t.Errorf("count = %v", body["count"])
			}
		})
	}
}

func TestReportAndSearch(t *testing.T) {
	env := newTestEnv(t, nil)
	rec, body := env.do(t, http.MethodPost, "/api/reports/cultural", `{"brand_name":"Acme","target_audience":"gen z","campaign_brief":"b"}`)
	rep, _ := body["report"].(map[string]any)
	if rec.Code != 200 || rep["brand_name"] != "Acme" {
		t.Errorf("report = %d %v", rec.Code, body)
	}

	rec, body = env.do(t, http.MethodPost, "/api/reports/strategy", `{"brief":"Sneaker launch","target_audience":"gen z","budget_tier":"large"}`)
	rep, _ = body["report"].(map[string]any)
	if rec.Code != 200 || rep["budget_tier"] != "large" || body["outcome"] != "degraded" || body["degraded_reason"] != "campaign: strategy: timeout" {
		t.Errorf("strategy report = %d %v", rec.Code, body)
	}
	if rec, _ := env.do(t, http.MethodPost, "/api/reports/strategy", `{"brief":"b","target_audience":"a","budget_tier":"huge"}`); rec.Code != 400 {
		t.Errorf("bad budget tier = %d, want 400", rec.Code)
	}

	rec, body = env.do(t, http.MethodGet, "/api/search?q=sneakers", "")
	if rec.Code != 200 || body["backend"] != "wikipedia" {
		t.Errorf("search = %d %v", rec.Code, body)
	}
	if rec, _ := env.do(t, http.MethodGet, "/api/search", ""); rec.Code != 400 {
		t.Errorf("search without q = %d, want 400", rec.Code)
	}
}

func TestSearchFailures(t *testing.T) {
	tests := []struct {
		name     string
		searcher Searcher
		wantCode int
	}{
		{"not configured", nil, http.StatusServiceUnavailable},
		{"no results", fakeSearch{err: search.ErrNoResults}, http.StatusOK},
		{"backend error", fakeSearch{err: errors.New("tavily: quota")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, func(_ *config.Config, d *Deps) { d.Search = tt.searcher })
			rec, body := env.do(t, http.MethodGet, "/api/search?q=x", "")
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d (%v)", rec.Code, tt.wantCode, body)
			}
			if tt.wantCode == http.StatusOK {
				if results, ok := body["results"].([]any); !ok || len(results) != 0 {
					t.Errorf("results = %v, want empty list", body["results"])
				}
			}
		})
	}
}

func TestAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	env := newTestEnv(t, func(c *config.Config, _ *Deps) { c.Server.APIKeyHash = string(hash) })

	tests := []struct {
		name     string
		target   string
		header   []string
		wantCode int
	}{
		{"missing", "/api/creative/history", nil, 401},
		{"wrong", "/api/creative/history", []string{"Authorization", "Bearer nope"}, 401},
		{"bearer", "/api/creative/history", []string{"Authorization", "Bearer s3cret"}, 200},
		{"query", "/api/creative/history?api_key=s3cret", nil, 200},
		{"health is public", "/health", nil, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := env.do(t, http.MethodGet, tt.target, "", tt.header...)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d (%v)", rec.Code, tt.wantCode, body)
			}
		})
	}
}

func TestPanicRecovered(t *testing.T) {
	env := newTestEnv(t, nil)
	env.culture.panics = true
	rec, body := env.do(t, http.MethodPost, "/api/cultural/analyze", `{"content":"x","target_audience":"y"}`)
	if rec.Code != http.StatusInternalServerError || body["detail"] != "Internal Server Error" {
		t.Errorf("panic = %d %v", rec.Code, body)
	}
}

func TestMediaAndMetrics(t *testing.T) {
	env := newTestEnv(t, nil)
	if err := os.WriteFile(filepath.Join(env.cfg.Media.OutputDir, "hero.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, _ := env.do(t, http.MethodGet, "/media/hero.png", "")
	if rec.Code != 200 || rec.Body.String() != "png-bytes" {
		t.Errorf("media = %d %q", rec.Code, rec.Body.String())
	}
	if rec, _ := env.do(t, http.MethodGet, "/media/missing.png", ""); rec.Code != 404 {
		t.Errorf("missing media = %d, want 404", rec.Code)
	}

	env.do(t, http.MethodGet, "/health", "")
	rec, _ = env.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), `adalchemy_http_requests_total{method="GET",route="/health",status="200"}`) {
		t.Errorf("metrics missing http counter")
	}
}
