package ai

import (
	"context"
	"strings"

	"github.com/thinkscotty/adalchemy/internal/config"
)

// Provider is the interface that all AI backends must implement.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Name() string // "gemini" or "ollama"
}

// ChatRequest is a provider-agnostic request.
type ChatRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSONMode    bool // request JSON-formatted output
}

// ChatResponse is a provider-agnostic response.
type ChatResponse struct {
	Content    string
	TokensUsed int
	Model      string // e.g. "gemini-2.5-flash" or "mistral-nemo"
	Provider   string
}

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// NewProvider picks the text provider named in cfg. Gemini is the default.
func NewProvider(cfg config.AIConfig) Provider {
	switch strings.ToLower(cfg.Provider) {
	case "ollama":
		return NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel)
	default:
		return NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}
