package ai

import (
	"context"
	"fmt"
	"log/slog"

	"repoinsight/packages/config"
)

// Summarizer turns one file's structural report into a short narrative.
type Summarizer struct {
	cfg config.AIConfig
}

// NewSummarizer creates a summarizer using the given generation settings.
func NewSummarizer(cfg config.AIConfig) *Summarizer {
	return &Summarizer{cfg: cfg}
}

// Summarize produces prose describing the file's purpose and contents from
// its structural report.
func (s *Summarizer) Summarize(ctx context.Context, path, structuralReport string) (string, error) {
	slog.Info("Summarizing file", "path", path)

	prompt := fmt.Sprintf(summarizeFilePrompt, path, structuralReport)
	text, err := generateWithGemini(ctx, s.cfg, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to summarize %s: %w", path, err)
	}
	return text, nil
}
