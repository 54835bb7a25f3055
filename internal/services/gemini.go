package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"smartats/ats-evaluator/internal/config"
)

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
	log         *logrus.Logger
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, log *logrus.Logger) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   cfg.Model,
		temperature: cfg.Temperature,
		log:         log,
	}, nil
}

func (g *geminiService) Name() string {
	return "gemini/" + g.modelName
}

// Generate implements Generator.
func (g *geminiService) Generate(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), genConfig)
	if err != nil {
		g.log.WithError(err).Error("❌ Gemini API error")
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
			g.log.WithField("finish_reason", resp.Candidates[0].FinishReason).Warn("⚠️ Gemini returned no text")
		}
		return "", fmt.Errorf("no text content in response")
	}

	g.log.WithField("response_chars", len(text)).Debug("📊 Gemini response received")

	return text, nil
}
