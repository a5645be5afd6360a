package ner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai/gemini"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/secrets"
)

const (
	ProviderProse  = "prose"
	ProviderGemini = "gemini"
	ProviderNone   = "none"

	geminiAPIKeyEnv = "GEMINI_API_KEY"
)

// Config selects and tunes the recognizer.
type Config struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig configures the hosted recognizer.
type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

// New builds the recognizer named by cfg.Provider. An empty provider means
// ProviderProse.
func New(ctx context.Context, cfg Config, log *zap.Logger) (Annotator, error) {
	if log == nil {
		log = zap.NewNop()
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderProse
	}

	switch provider {
	case ProviderNone:
		return Nop{}, nil
	case ProviderProse:
		return NewProse(), nil
	case ProviderGemini:
		return newGemini(ctx, cfg.Gemini, log)
	default:
		return nil, fmt.Errorf("unsupported ner provider: %s", cfg.Provider)
	}
}

func newGemini(ctx context.Context, cfg *GeminiConfig, log *zap.Logger) (Annotator, error) {
	if cfg == nil {
		cfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.APIKeyFile,
		Env:   geminiAPIKeyEnv,
		Value: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ner.gemini.api-key-file or %s)", err, geminiAPIKeyEnv)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.MaxRetries,
		log.With(zap.Int("ai_retry_attempts", cfg.MaxRetries)))
	if err != nil {
		return nil, err
	}

	annotatorLogger := logger.WithRecognizerFields(log, ProviderGemini, generator.Model())

	return NewGemini(generator, annotatorLogger, cfg.MaxLogLength), nil
}
