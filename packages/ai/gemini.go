// Package ai implements the two LLM collaborators of the analysis pipeline:
// file selection (repository tree -> important files) and narrative
// summarization (structural report -> prose). Both are thin Gemini clients.
package ai

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"repoinsight/packages/config"
)

// generateWithGemini sends one prompt to the Gemini API and returns the
// response text.
func generateWithGemini(ctx context.Context, cfg config.AIConfig, prompt string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set in environment")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	temperature := cfg.Temperature
	topK := float32(cfg.TopK)
	topP := cfg.TopP

	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		TopK:            &topK,
		TopP:            &topP,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}

	result, err := client.Models.GenerateContent(ctx, cfg.Model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if result == nil || result.Text() == "" {
		return "", fmt.Errorf("no content generated by Gemini")
	}

	return result.Text(), nil
}
