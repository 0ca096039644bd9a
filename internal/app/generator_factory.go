package app

import (
	"context"
	"fmt"

	"github.com/yashvi-chat/yashvi/internal/config"
	"github.com/yashvi-chat/yashvi/internal/runtime/hosts"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
	"github.com/yashvi-chat/yashvi/pkg/generation"
	"github.com/yashvi-chat/yashvi/pkg/generation/gemini"
	"github.com/yashvi-chat/yashvi/pkg/generation/ollama"
	"github.com/yashvi-chat/yashvi/pkg/generation/openai"
	"github.com/yashvi-chat/yashvi/pkg/io/stt/whisper"
)

// GeneratorFactory defers provider construction to first use so a slow or
// missing backend cannot stall startup.
func GeneratorFactory(cfg config.GeneratorConfig, logger *Logger.Logger) hosts.GeneratorFactory {
	return func() (generation.Generator, error) {
		logger.Infof("constructing %s generator (model=%s revision=%s)",
			cfg.Provider, cfg.Model, cfg.Revision)
		switch cfg.Provider {
		case "ollama":
			return ollama.New(cfg)
		case "openai":
			return openai.New(cfg)
		case "gemini":
			return gemini.New(context.Background(), cfg)
		default:
			return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
		}
	}
}

func RecognizerFactory(cfg config.STTConfig, logger *Logger.Logger) hosts.RecognizerFactory {
	return func() (hosts.Recognizer, error) {
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("stt base url is not configured")
		}
		return whisper.New(cfg.BaseURL, logger), nil
	}
}
