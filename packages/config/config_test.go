package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	content := `analysis:
  max_depth: 3
  max_files: 6
ai:
  model: gemini-2.0-flash
  temperature: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Analysis.MaxDepth)
	assert.Equal(t, 6, cfg.Analysis.MaxFiles)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, float32(0.5), cfg.AI.Temperature)

	// Unspecified fields fall back to defaults.
	assert.Equal(t, 5, cfg.Analysis.FetchWorkers)
	assert.Equal(t, int32(8192), cfg.AI.MaxOutputTokens)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis: [not: valid"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 2, cfg.Analysis.MaxDepth)
	assert.Equal(t, 4, cfg.Analysis.MaxFiles)
	assert.Equal(t, 512, cfg.Analysis.ContentCacheSize)
	assert.Equal(t, 128, cfg.Analysis.PatternCacheSize)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 5*time.Minute, cfg.Timeout())
}
