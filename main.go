package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"repoinsight/packages/ai"
	"repoinsight/packages/config"
	"repoinsight/packages/githost"
	"repoinsight/packages/pipeline"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using system environment variables")
	}

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <repository-url>\n", os.Args[0])
		os.Exit(1)
	}
	repoURL := os.Args[1]

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Warn("Failed to load config file, using defaults", "error", err)
		cfg = config.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	host := githost.NewClient(ctx, os.Getenv("GITHUB_TOKEN"))
	selector := ai.NewSelector(cfg.AI, cfg.Analysis.MaxFiles)
	summarizer := ai.NewSummarizer(cfg.AI)

	p, err := pipeline.New(host, selector, summarizer, cfg)
	if err != nil {
		slog.Error("Failed to initialize pipeline", "error", err)
		os.Exit(1)
	}

	if meta, err := host.Metadata(ctx, repoURL); err == nil {
		slog.Info("Repository metadata",
			"name", meta.FullName, "language", meta.Language, "stars", meta.Stars)
	}

	slog.Info("Starting repository analysis", "repo", repoURL)
	state, err := p.AnalyzeRepo(ctx, repoURL)
	if err != nil {
		var perr *pipeline.Error
		if errors.As(err, &perr) {
			slog.Error("Analysis failed", "code", perr.Code, "error", perr)
		} else {
			slog.Error("Analysis failed", "error", err)
		}
		os.Exit(1)
	}

	fmt.Println("Repository structure:")
	fmt.Println(state.RepoTree)
	fmt.Println()

	for _, fa := range state.Analysis {
		fmt.Printf("=== %s ===\n", fa.Path)
		fmt.Println(fa.Analysis)
		fmt.Println()
	}

	slog.Info("Analysis complete", "repo", repoURL, "files", len(state.Analysis))
}
