package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"repoinsight/packages/config"
)

// Selector picks the small set of files worth deep analysis from a rendered
// repository tree.
type Selector struct {
	cfg      config.AIConfig
	maxFiles int
}

// NewSelector creates a selector bounded to maxFiles results.
func NewSelector(cfg config.AIConfig, maxFiles int) *Selector {
	if maxFiles <= 0 {
		maxFiles = 4
	}
	return &Selector{cfg: cfg, maxFiles: maxFiles}
}

// ChooseFiles asks the model which files matter given the tree listing. The
// result is ordered by importance and bounded to the configured maximum.
func (s *Selector) ChooseFiles(ctx context.Context, treeText string) ([]string, error) {
	slog.Info("Selecting important files", "treeLines", strings.Count(treeText, "\n")+1)

	prompt := fmt.Sprintf(chooseFilesPrompt, treeText, s.maxFiles)
	result, err := generateWithGemini(ctx, s.cfg, prompt)
	if err != nil {
		return nil, err
	}

	var response struct {
		Files []string `json:"files"`
	}
	var files []string
	if err := json.Unmarshal([]byte(stripCodeFences(result)), &response); err != nil {
		// Models occasionally ignore the JSON contract; salvage paths
		// from the raw text instead of failing the whole run.
		slog.Warn("Failed to parse selection response as JSON, extracting paths manually")
		files = extractFilesFromText(result)
	} else {
		files = response.Files
	}

	if len(files) > s.maxFiles {
		files = files[:s.maxFiles]
	}

	slog.Info("Selected important files", "files", files)
	return files, nil
}

// stripCodeFences removes a surrounding markdown code fence if present.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// extractFilesFromText scrapes path-looking tokens out of free-form model
// output, preserving first-seen order.
func extractFilesFromText(text string) []string {
	var files []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "/") && !strings.Contains(line, ".") {
			continue
		}

		// Remove markdown emphasis before tokenizing.
		line = strings.NewReplacer("**", "", "__", "", "*", "", "`", "").Replace(line)

		for _, part := range strings.Fields(line) {
			part = strings.Trim(part, `"',.;:[]{}()`)
			part = strings.TrimPrefix(part, "->")

			if !strings.Contains(part, ".") || strings.ContainsAny(part, `*[]{}"'`) {
				continue
			}
			if !seen[part] {
				seen[part] = true
				files = append(files, part)
			}
		}
	}
	return files
}
