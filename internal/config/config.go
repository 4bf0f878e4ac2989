package config

import (
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	AI      AIConfig      `yaml:"ai"`
	Qloo    QlooConfig    `yaml:"qloo"`
	Search  SearchConfig  `yaml:"search"`
	Media   MediaConfig   `yaml:"media"`
	Culture CultureConfig `yaml:"culture"`
	History HistoryConfig `yaml:"history"`
}

type ServerConfig struct {
	Host                   string   `yaml:"host"`
	Port                   int      `yaml:"port"`
	ReadTimeoutSeconds     int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int      `yaml:"write_timeout_seconds"`
	CORSOrigins            []string `yaml:"cors_origins"`
	RateLimitRequests      int      `yaml:"rate_limit_requests"`
	RateLimitWindowSeconds int      `yaml:"rate_limit_window_seconds"`
	// APIKeyHash is a bcrypt hash of the API key. Empty disables the check.
	APIKeyHash string `yaml:"api_key_hash"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

type AIConfig struct {
	Provider     string `yaml:"provider"` // "gemini" or "ollama"
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
	OllamaURL    string `yaml:"ollama_url"`
	OllamaModel  string `yaml:"ollama_model"`
}

type QlooConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	BackoffSeconds int    `yaml:"backoff_seconds"`
	Take           int    `yaml:"take"`
}

type SearchConfig struct {
	TavilyAPIKey string `yaml:"tavily_api_key"`
	MaxResults   int    `yaml:"max_results"`
	EnableReddit bool   `yaml:"enable_reddit"`
}

type MediaConfig struct {
	VeoModel                 string `yaml:"veo_model"`
	ImagenModel              string `yaml:"imagen_model"`
	OutputDir                string `yaml:"output_dir"`
	PublicPath               string `yaml:"public_path"`
	VariationIntervalSeconds int    `yaml:"variation_interval_seconds"`
	PollIntervalSeconds      int    `yaml:"poll_interval_seconds"`
	MaxPolls                 int    `yaml:"max_polls"`
}

type CultureConfig struct {
	TrendLimit         int `yaml:"trend_limit"`
	TrendTopicCap      int `yaml:"trend_topic_cap"`
	TrendPacingMillis  int `yaml:"trend_pacing_millis"`
	ContentTimeoutSecs int `yaml:"content_timeout_seconds"`
}

type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
	// DatabasePath enables the SQLite history sink when set.
	DatabasePath string `yaml:"database_path"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:                   "0.0.0.0",
			Port:                   8000,
			ReadTimeoutSeconds:     30,
			WriteTimeoutSeconds:    300,
			CORSOrigins:            []string{"http://localhost:3000"},
			RateLimitRequests:      120,
			RateLimitWindowSeconds: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		AI: AIConfig{
			Provider:    "gemini",
			GeminiModel: "gemini-2.5-flash",
			OllamaURL:   "http://localhost:11434",
			OllamaModel: "mistral-nemo",
		},
		Qloo: QlooConfig{
			BaseURL:        "https://hackathon.api.qloo.com",
			BackoffSeconds: 2,
			Take:           50,
		},
		Search: SearchConfig{
			MaxResults:   5,
			EnableReddit: true,
		},
		Media: MediaConfig{
			VeoModel:                 "veo-3.0-generate-preview",
			ImagenModel:              "imagen-3.0-generate-002",
			OutputDir:                "./generated",
			PublicPath:               "/media/",
			VariationIntervalSeconds: 1,
			PollIntervalSeconds:      10,
			MaxPolls:                 30,
		},
		Culture: CultureConfig{
			TrendLimit:         10,
			TrendTopicCap:      5,
			TrendPacingMillis:  500,
			ContentTimeoutSecs: 60,
		},
		History: HistoryConfig{
			Capacity: 500,
		},
	}
}

// Load reads a YAML config file and merges it over defaults.
// If the file does not exist, defaults are returned without error.
// API keys may be supplied through the environment instead of the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
		slog.Info("No config file found, using defaults", "path", path)
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.AI.GeminiAPIKey = v
	}
	if v := os.Getenv("QLOO_API_KEY"); v != "" {
		cfg.Qloo.APIKey = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		cfg.Search.TavilyAPIKey = v
	}
}

// QlooBackoff is the fixed pause after a taste-graph 429.
func (c Config) QlooBackoff() time.Duration {
	return time.Duration(c.Qloo.BackoffSeconds) * time.Second
}

// TrendPacing is the minimum spacing between per-topic trend lookups.
func (c Config) TrendPacing() time.Duration {
	return time.Duration(c.Culture.TrendPacingMillis) * time.Millisecond
}

// ContentTimeout bounds a single cultural analysis request.
func (c Config) ContentTimeout() time.Duration {
	return time.Duration(c.Culture.ContentTimeoutSecs) * time.Second
}

// RateLimitWindow is the window for the per-IP request limit.
func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.Server.RateLimitWindowSeconds) * time.Second
}
