package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicGenerator implements Generator using the Anthropic Claude API.
type AnthropicGenerator struct {
	client anthropic.Client
	config Config
}

// NewAnthropicGenerator creates a new Anthropic generator. The API key is
// read from the ANTHROPIC_API_KEY environment variable by default.
func NewAnthropicGenerator(cfg Config) *AnthropicGenerator {
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}

	return &AnthropicGenerator{
		client: anthropic.NewClient(),
		config: cfg,
	}
}

// NewAnthropicGeneratorWithKey creates an Anthropic generator with an
// explicit API key.
func NewAnthropicGeneratorWithKey(apiKey string, cfg Config) *AnthropicGenerator {
	g := NewAnthropicGenerator(cfg)
	g.client = anthropic.NewClient(option.WithAPIKey(apiKey))
	return g
}

// Generate implements Generator.Generate for Anthropic.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.config.Model),
		MaxTokens: int64(g.config.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: SystemPrompt()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// Name implements Generator.Name.
func (g *AnthropicGenerator) Name() string {
	return "anthropic"
}
