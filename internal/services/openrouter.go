package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"smartats/ats-evaluator/internal/config"
)

type openRouterService struct {
	client *resty.Client
	apiKey string
	model  string
	log    *logrus.Logger
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, log *logrus.Logger) Generator {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json")

	return &openRouterService{
		client: client,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		log:    log,
	}
}

func (s *openRouterService) Name() string {
	return "openrouter/" + s.model
}

// Generate implements Generator using the OpenAI-compatible chat completions endpoint.
func (s *openRouterService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetBody(map[string]interface{}{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": "You are an applicant tracking system. Reply with a single JSON object."},
				{"role": "user", "content": prompt},
			},
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to call openrouter: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		s.log.WithField("status", resp.StatusCode()).Error("❌ OpenRouter API error")
		return "", fmt.Errorf("openrouter returned %d: %s", resp.StatusCode(), msg)
	}

	text := gjson.Get(body, "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	s.log.WithField("response_chars", len(text)).Debug("📊 OpenRouter response received")

	return text, nil
}
