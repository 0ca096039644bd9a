package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/presbrey/ollamafarm"
	"github.com/yashvi-chat/yashvi/internal/config"
	"github.com/yashvi-chat/yashvi/pkg/generation"
)

// Provider serves completions from a pool of Ollama servers. The model tag
// carries the pinned revision so restarts reproduce the same weights.
type Provider struct {
	farm  *ollamafarm.Farm
	model string
}

func New(cfg config.GeneratorConfig) (*Provider, error) {
	if cfg.OllamaURL == "" {
		return nil, fmt.Errorf("ollama url is not configured")
	}

	farm := ollamafarm.New()
	if err := farm.RegisterURL(cfg.OllamaURL, nil); err != nil {
		return nil, fmt.Errorf("failed to register ollama server: %w", err)
	}

	model := cfg.Model
	if cfg.Revision != "" {
		model = fmt.Sprintf("%s:%s", cfg.Model, cfg.Revision)
	}

	return &Provider{farm: farm, model: model}, nil
}

// Generate implements generation.Generator.
func (p *Provider) Generate(ctx context.Context, prompt string, params generation.Params) (string, error) {
	ollama := p.farm.First(&ollamafarm.Where{Offline: false})
	if ollama == nil {
		return "", fmt.Errorf("no ollama server available for model %v", p.model)
	}

	stream := false
	req := &api.GenerateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]interface{}{
			"num_predict": params.MaxNewTokens,
			"temperature": params.EffectiveTemperature(),
		},
	}

	var out strings.Builder
	err := ollama.Client().Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}
	return out.String(), nil
}
