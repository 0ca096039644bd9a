package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type AuthConfig struct {
	JWTSecret       string            `mapstructure:"jwt_secret"`
	SessionTTLHours int               `mapstructure:"session_ttl_hours"`
	SeedUsers       map[string]string `mapstructure:"seed_users"`
	SeedAdmins      map[string]string `mapstructure:"seed_admins"`
}

// GeneratorConfig pins the causal-LM backend. Model+Revision identify one
// reproducible snapshot; Provider selects which client serves it.
type GeneratorConfig struct {
	Provider     string  `mapstructure:"provider"` // ollama | openai | gemini
	Model        string  `mapstructure:"model"`
	Revision     string  `mapstructure:"revision"`
	OllamaURL    string  `mapstructure:"ollama_url"`
	OpenAIAPIKey string  `mapstructure:"openai_api_key"`
	GeminiAPIKey string  `mapstructure:"gemini_api_key"`
	MaxNewTokens int     `mapstructure:"max_new_tokens"`
	Temperature  float64 `mapstructure:"temperature"`
}

type PersonaConfig struct {
	Name      string `mapstructure:"name"`
	UserLabel string `mapstructure:"user_label"`
}

type TTSConfig struct {
	Lang    string `mapstructure:"lang"`
	TLD     string `mapstructure:"tld"`
	BaseURL string `mapstructure:"base_url"` // overrides the tld-derived endpoint
}

type STTConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type Settings struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Persona   PersonaConfig   `mapstructure:"persona"`
	TTS       TTSConfig       `mapstructure:"tts"`
	STT       STTConfig       `mapstructure:"stt"`
	Env       string          `mapstructure:"env"`
	Debug     bool            `mapstructure:"debug"`
}

func Load() (*Settings, error) {
	viper.SetConfigName("config_" + genEnv())
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	settings.applyDefaults()

	return &settings, nil
}

func (s *Settings) applyDefaults() {
	if s.Server.Port == 0 {
		s.Server.Port = 8080
	}
	if s.Auth.SessionTTLHours == 0 {
		s.Auth.SessionTTLHours = 24
	}
	if s.Generator.Provider == "" {
		s.Generator.Provider = "ollama"
	}
	if s.Generator.MaxNewTokens == 0 {
		s.Generator.MaxNewTokens = 200
	}
	if s.Generator.Temperature == 0 {
		s.Generator.Temperature = 0.7
	}
	if s.Persona.Name == "" {
		s.Persona.Name = "Yashvi"
	}
	if s.Persona.UserLabel == "" {
		s.Persona.UserLabel = "You"
	}
	if s.TTS.Lang == "" {
		s.TTS.Lang = "en"
	}
	if s.TTS.TLD == "" {
		s.TTS.TLD = "co.in"
	}
}

func genEnv() string {
	env := viper.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
