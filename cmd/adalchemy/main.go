package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/thinkscotty/adalchemy/internal/ai"
	"github.com/thinkscotty/adalchemy/internal/auth"
	"github.com/thinkscotty/adalchemy/internal/config"
	"github.com/thinkscotty/adalchemy/internal/creative"
	"github.com/thinkscotty/adalchemy/internal/culture"
	"github.com/thinkscotty/adalchemy/internal/database"
	"github.com/thinkscotty/adalchemy/internal/media"
	"github.com/thinkscotty/adalchemy/internal/qloo"
	"github.com/thinkscotty/adalchemy/internal/report"
	"github.com/thinkscotty/adalchemy/internal/scraper"
	"github.com/thinkscotty/adalchemy/internal/search"
	"github.com/thinkscotty/adalchemy/internal/server"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	hashKey := flag.String("hash-key", "", "Print the bcrypt hash of an API key for server.api_key_hash and exit")
	generateKey := flag.Bool("generate-key", false, "Generate a random API key, print it with its hash and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("AdAlchemy %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}
	if *hashKey != "" || *generateKey {
		if err := runKeyTool(os.Stdout, *hashKey, *generateKey); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.Logging, os.Stderr))
	slog.Info("Starting AdAlchemy", "version", version)

	// Generative text
	aiClient := ai.NewClient(ai.NewProvider(cfg.AI))
	slog.Info("AI provider configured", "provider", aiClient.ProviderName())

	// Cultural intelligence
	var graph culture.TasteGraph
	if c := qloo.New(cfg.Qloo.BaseURL, cfg.Qloo.APIKey, cfg.Qloo.Take); c.Configured() {
		graph = c
	} else {
		slog.Warn("No taste-graph API key, audience profiles use demographic tables only")
	}
	resolver := culture.NewProfileResolver(graph, culture.WithBackoff(cfg.QlooBackoff()))
	trends := culture.NewTrendExtractor(resolver,
		culture.WithTrendLimit(cfg.Culture.TrendLimit),
		culture.WithTopicCap(cfg.Culture.TrendTopicCap),
		culture.WithPacing(cfg.TrendPacing()),
	)
	cultureSvc := culture.NewService(resolver, trends, culture.NewContentScorer(aiClient), aiClient)

	// Media generation
	var (
		video media.VideoGenerator
		image media.ImageGenerator
	)
	if cfg.AI.GeminiAPIKey != "" {
		video = media.GuardVideo("veo", media.NewVeoClient(cfg.AI.GeminiAPIKey, cfg.Media.VeoModel,
			time.Duration(cfg.Media.PollIntervalSeconds)*time.Second, cfg.Media.MaxPolls))
		image = media.GuardImage("imagen", media.NewImagenClient(cfg.AI.GeminiAPIKey, cfg.Media.ImagenModel,
			cfg.Media.OutputDir, cfg.Media.PublicPath))
	} else {
		slog.Warn("No Gemini API key, media generation returns fallback assets")
	}
	studio := media.NewStudio(video, image, aiClient,
		media.WithModels(cfg.Media.VeoModel, cfg.Media.ImagenModel),
		media.WithVariationInterval(time.Duration(cfg.Media.VariationIntervalSeconds)*time.Second),
	)

	// Generation history
	var history creative.History
	if cfg.History.DatabasePath != "" {
		db, err := database.New(cfg.History.DatabasePath)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		history = db.History(cfg.History.Capacity)
		slog.Info("Database initialized", "path", cfg.History.DatabasePath)
	} else {
		history = creative.NewRingBuffer(cfg.History.Capacity)
	}
	orchestrator := creative.NewOrchestrator(cultureSvc, studio, aiClient, history)

	// Web search and reports
	var backends []search.Backend
	if cfg.Search.TavilyAPIKey != "" {
		backends = append(backends, search.NewTavily(cfg.Search.TavilyAPIKey))
	}
	if cfg.Search.EnableReddit {
		backends = append(backends, search.NewReddit())
	}
	backends = append(backends, search.NewWikipedia())
	searchSvc := search.NewService(cfg.Search.MaxResults, backends...)
	reports := report.NewGenerator(cultureSvc, searchSvc, scraper.New(), aiClient, report.WithPlanner(orchestrator))

	// Build HTTP server
	srv := server.New(cfg, server.Deps{
		Culture:  cultureSvc,
		Creative: orchestrator,
		Reports:  reports,
		Search:   searchSvc,
	}, version)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Shutdown error", "error", err)
		}
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func runKeyTool(w io.Writer, key string, generate bool) error {
	if generate {
		token, err := auth.GenerateToken()
		if err != nil {
			return err
		}
		key = token
		fmt.Fprintf(w, "api key:      %s\n", key)
	}
	hash, err := auth.HashAPIKey(key)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "api_key_hash: %s\n", hash)
	return nil
}
