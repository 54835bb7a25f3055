package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"smartats/ats-evaluator/internal/config"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestOpenRouter_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "openai/gpt-4o-mini", gjson.GetBytes(body, "model").String())
		assert.Equal(t, "the prompt", gjson.GetBytes(body, "messages.1.content").String())

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"JD Match\":\"70%\"}"}}]}`))
	}))
	defer server.Close()

	gen := NewOpenRouterService(&config.OpenRouterConfig{
		APIKey:  "test-key",
		Model:   "openai/gpt-4o-mini",
		BaseURL: server.URL + "/",
	}, quietLogger())

	text, err := gen.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"JD Match":"70%"}`, text)
	assert.Equal(t, "openrouter/openai/gpt-4o-mini", gen.Name())
}

func TestOpenRouter_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	gen := NewOpenRouterService(&config.OpenRouterConfig{APIKey: "k", Model: "m", BaseURL: server.URL}, quietLogger())

	_, err := gen.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestOpenRouter_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	gen := NewOpenRouterService(&config.OpenRouterConfig{APIKey: "k", Model: "m", BaseURL: server.URL}, quietLogger())

	_, err := gen.Generate(context.Background(), "p")
	assert.EqualError(t, err, "no text content in response")
}

func TestOpenRouter_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	gen := NewOpenRouterService(&config.OpenRouterConfig{APIKey: "k", Model: "m", BaseURL: server.URL}, quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := gen.Generate(ctx, "p")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
