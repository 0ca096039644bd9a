package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/yashvi-chat/yashvi/internal/config"
	"github.com/yashvi-chat/yashvi/pkg/generation"
)

// Provider serves completions from the OpenAI chat completions API. The
// assembled prompt travels as a single user message.
type Provider struct {
	client openai.Client
	model  string
}

func New(cfg config.GeneratorConfig) (*Provider, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}
	return &Provider{
		client: openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey)),
		model:  cfg.Model,
	}, nil
}

// Generate implements generation.Generator.
func (p *Provider) Generate(ctx context.Context, prompt string, params generation.Params) (string, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(p.model),
		Temperature: openai.Float(params.EffectiveTemperature()),
		MaxTokens:   openai.Int(int64(params.MaxNewTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
