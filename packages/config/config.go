package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	AI       AIConfig       `yaml:"ai"`
}

// AnalysisConfig contains repository traversal and fetch configuration
type AnalysisConfig struct {
	// MaxDepth bounds the remote tree traversal. Deeper entries are never
	// listed, which caps API cost on large repositories.
	MaxDepth int `yaml:"max_depth"`

	// MaxFiles bounds how many files the selection stage may hand to the
	// analysis stage.
	MaxFiles int `yaml:"max_files"`

	// FetchWorkers is the fan-out limit for concurrent content fetches
	// and per-file analyses.
	FetchWorkers int `yaml:"fetch_workers"`

	ContentCacheSize int `yaml:"content_cache_size"`
	PatternCacheSize int `yaml:"pattern_cache_size"`

	// TimeoutSeconds is the overall deadline for one repository analysis.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// AIConfig contains AI-related configuration
type AIConfig struct {
	Model           string  `yaml:"model"`
	Temperature     float32 `yaml:"temperature"`
	TopK            int32   `yaml:"top_k"`
	TopP            float32 `yaml:"top_p"`
	MaxOutputTokens int32   `yaml:"max_output_tokens"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// If no path provided, use default
	if configPath == "" {
		configPath = "config/development.yaml"
	}

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()

	return &config, nil
}

// Default returns a configuration with every field at its default value,
// usable without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Analysis.MaxDepth <= 0 {
		c.Analysis.MaxDepth = 2
	}
	if c.Analysis.MaxFiles <= 0 {
		c.Analysis.MaxFiles = 4
	}
	if c.Analysis.FetchWorkers <= 0 {
		c.Analysis.FetchWorkers = 5
	}
	if c.Analysis.ContentCacheSize <= 0 {
		c.Analysis.ContentCacheSize = 512
	}
	if c.Analysis.PatternCacheSize <= 0 {
		c.Analysis.PatternCacheSize = 128
	}
	if c.Analysis.TimeoutSeconds <= 0 {
		c.Analysis.TimeoutSeconds = 300
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.AI.Temperature <= 0 {
		c.AI.Temperature = 0.2
	}
	if c.AI.TopK <= 0 {
		c.AI.TopK = 40
	}
	if c.AI.TopP <= 0 {
		c.AI.TopP = 0.95
	}
	if c.AI.MaxOutputTokens <= 0 {
		c.AI.MaxOutputTokens = 8192
	}
}

// Timeout returns the overall analysis deadline as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Analysis.TimeoutSeconds) * time.Second
}
