// Package gemini adapts the google.golang.org/genai SDK to the assistant's
// domain ports: conversational model, speech synthesis and video generation
// share a single client.
package gemini

import (
	"context"
	"fmt"

	"orientabot/internal/config"

	"google.golang.org/genai"
)

// Client wraps the genai client together with the model configuration.
type Client struct {
	genai *genai.Client
	cfg   config.GeminiConfig
}

// NewClient creates the shared Gemini client.
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{genai: client, cfg: cfg}, nil
}
