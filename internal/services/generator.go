package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"smartats/ats-evaluator/internal/config"
)

// Generator is a single-shot text generation backend. Implementations never retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NewGenerator builds the backend selected by GENERATION_PROVIDER.
func NewGenerator(ctx context.Context, cfg *config.Config, log *logrus.Logger) (Generator, error) {
	switch cfg.Generation.Provider {
	case config.ProviderGemini:
		return NewGeminiService(ctx, &cfg.Gemini, log)
	case config.ProviderOpenRouter:
		return NewOpenRouterService(&cfg.OpenRouter, log), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Generation.Provider)
	}
}
