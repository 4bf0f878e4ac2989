package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Client is the main AI entry point. It handles prompt building and response
// parsing on top of a single text provider.
type Client struct {
	provider Provider
}

// NewClient creates an AI client backed by provider.
func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

// ProviderName reports which backend serves requests.
func (c *Client) ProviderName() string {
	return c.provider.Name()
}

// AnalyzeContent asks the model for a cultural read of content against an audience.
func (c *Client) AnalyzeContent(ctx context.Context, content, audience string) (*ContentAnalysis, error) {
	var analysis ContentAnalysis
	if err := c.chatJSON(ctx, BuildContentAnalysisPrompt(content, audience), 0.7, &analysis); err != nil {
		return nil, fmt.Errorf("analyze content: %w", err)
	}
	return &analysis, nil
}

// OptimizeForPlatform asks the model to adapt content for platform.
func (c *Client) OptimizeForPlatform(ctx context.Context, content, platform string) (*PlatformOptimization, error) {
	var opt PlatformOptimization
	if err := c.chatJSON(ctx, BuildPlatformPrompt(content, platform), 0.7, &opt); err != nil {
		return nil, fmt.Errorf("optimize for %s: %w", platform, err)
	}
	opt.Platform = platform
	opt.OptimizedAt = time.Now().UTC()
	return &opt, nil
}

// GenerateStrategy asks the model for a campaign-level creative strategy.
func (c *Client) GenerateStrategy(ctx context.Context, opts StrategyOpts) (*CreativeStrategy, error) {
	var strategy CreativeStrategy
	if err := c.chatJSON(ctx, BuildStrategyPrompt(opts), 0.8, &strategy); err != nil {
		return nil, fmt.Errorf("generate strategy: %w", err)
	}
	return &strategy, nil
}

// GenerateVariations asks the model for count alternative executions of a concept.
func (c *Client) GenerateVariations(ctx context.Context, baseConcept string, count int) ([]ConceptVariation, error) {
	var variations []ConceptVariation
	if err := c.chatJSON(ctx, BuildVariationsPrompt(baseConcept, count), 0.9, &variations); err != nil {
		return nil, fmt.Errorf("generate variations: %w", err)
	}
	if len(variations) > count {
		variations = variations[:count]
	}
	now := time.Now().UTC()
	for i := range variations {
		variations[i].VariationID = uuid.NewString()
		variations[i].GeneratedAt = now
	}
	return variations, nil
}

// ImageConcept asks the model for art direction on an enhanced image prompt.
func (c *Client) ImageConcept(ctx context.Context, enhancedPrompt string) (*ImageConcept, error) {
	var concept ImageConcept
	if err := c.chatJSON(ctx, BuildImageConceptPrompt(enhancedPrompt), 0.7, &concept); err != nil {
		return nil, fmt.Errorf("image concept: %w", err)
	}
	return &concept, nil
}

// OfficialWebsite asks the model for a brand's homepage. It returns "" when the
// model is unsure.
func (c *Client) OfficialWebsite(ctx context.Context, brand string) (string, error) {
	resp, err := c.provider.Chat(ctx, ChatRequest{
		Messages:    []Message{{Role: "user", Content: BuildWebsitePrompt(brand)}},
		Temperature: 0.1,
		MaxTokens:   128,
	})
	if err != nil {
		return "", err
	}
	answer := strings.Trim(strings.TrimSpace(resp.Content), "`\"'")
	if answer == "" || strings.EqualFold(answer, "NOT_FOUND") {
		return "", nil
	}
	return answer, nil
}

// chatJSON sends a single-turn prompt in JSON mode and decodes the reply into out.
func (c *Client) chatJSON(ctx context.Context, prompt string, temperature float64, out any) error {
	resp, err := c.provider.Chat(ctx, ChatRequest{
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   4096,
		JSONMode:    true,
	})
	if err != nil {
		return err
	}

	responseText := ExtractJSON(resp.Content)
	if responseText == "" {
		return fmt.Errorf("empty response from %s", c.provider.Name())
	}

	if err := json.Unmarshal([]byte(responseText), out); err != nil {
		slog.Debug("Unparseable model response", "provider", c.provider.Name(), "response", responseText)
		return fmt.Errorf("failed to parse JSON from %s: %w", c.provider.Name(), err)
	}
	return nil
}
