package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("QLOO_API_KEY", "")
	t.Setenv("TAVILY_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Qloo.Take != 50 {
		t.Errorf("qloo take = %d, want 50", cfg.Qloo.Take)
	}
	if cfg.QlooBackoff() != 2*time.Second {
		t.Errorf("backoff = %v, want 2s", cfg.QlooBackoff())
	}
	if cfg.TrendPacing() != 500*time.Millisecond {
		t.Errorf("trend pacing = %v, want 500ms", cfg.TrendPacing())
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Setenv("QLOO_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  port: 9090\nculture:\n  trend_limit: 4\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Culture.TrendLimit != 4 {
		t.Errorf("trend limit = %d, want 4", cfg.Culture.TrendLimit)
	}
	if cfg.Culture.TrendTopicCap != 5 {
		t.Errorf("trend topic cap = %d, want default 5", cfg.Culture.TrendTopicCap)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want default", cfg.Server.Host)
	}
}

func TestLoadEnvOverridesKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("QLOO_API_KEY", "q-key")
	t.Setenv("TAVILY_API_KEY", "t-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.GeminiAPIKey != "g-key" || cfg.Qloo.APIKey != "q-key" || cfg.Search.TavilyAPIKey != "t-key" {
		t.Errorf("env keys not applied: %+v %+v %+v", cfg.AI, cfg.Qloo, cfg.Search)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}
