package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/yashvi-chat/yashvi/internal/config"
	"github.com/yashvi-chat/yashvi/pkg/generation"
	"google.golang.org/api/option"
)

// Provider serves completions from the Gemini API.
type Provider struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg config.GeneratorConfig) (*Provider, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Provider{client: client, model: cfg.Model}, nil
}

// Generate implements generation.Generator.
func (p *Provider) Generate(ctx context.Context, prompt string, params generation.Params) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(float32(params.EffectiveTemperature()))
	model.SetMaxOutputTokens(int32(params.MaxNewTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	var out strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				out.WriteString(string(txt))
			}
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text candidates")
	}
	return out.String(), nil
}
