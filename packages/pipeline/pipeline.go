// Package pipeline orchestrates a repository analysis as two sequential
// stages: select the files worth reading, then fetch and analyze each one.
// Host traversal, content fetching, structural analysis, and the LLM
// collaborators are owned by their own packages; this one only wires them.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"repoinsight/packages/analyzers"
	"repoinsight/packages/config"
	"repoinsight/packages/githost"
	"repoinsight/packages/ignore"
	"repoinsight/packages/repository"
)

// Selector chooses which files matter given a rendered repository tree.
type Selector interface {
	ChooseFiles(ctx context.Context, treeText string) ([]string, error)
}

// Summarizer turns a structural report into a narrative analysis.
type Summarizer interface {
	Summarize(ctx context.Context, path, structuralReport string) (string, error)
}

// Pipeline runs the two-stage repository analysis. One Pipeline serves one
// session; its caches are not shared across instances.
type Pipeline struct {
	walker     *repository.Walker
	fetcher    *repository.Fetcher
	selector   Selector
	summarizer Summarizer

	maxDepth int
	maxFiles int
	workers  int
}

// New wires a pipeline from its collaborators and configuration.
func New(host repository.Host, selector Selector, summarizer Summarizer, cfg *config.Config) (*Pipeline, error) {
	filters, err := ignore.NewEngine(host, cfg.Analysis.PatternCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create ignore engine: %w", err)
	}
	fetcher, err := repository.NewFetcher(host, filters, cfg.Analysis.FetchWorkers, cfg.Analysis.ContentCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetcher: %w", err)
	}

	return &Pipeline{
		walker:     repository.NewWalker(host, filters),
		fetcher:    fetcher,
		selector:   selector,
		summarizer: summarizer,
		maxDepth:   cfg.Analysis.MaxDepth,
		maxFiles:   cfg.Analysis.MaxFiles,
		workers:    cfg.Analysis.FetchWorkers,
	}, nil
}

// AnalyzeRepo runs the full analysis for one repository and returns the final
// state. Host and selection failures are returned as *Error with a code;
// per-file analysis failures degrade to placeholder text instead of failing
// the run.
func (p *Pipeline) AnalyzeRepo(ctx context.Context, repoURL string) (*State, error) {
	if _, _, err := githost.ParseRepoURL(repoURL); err != nil {
		return nil, &Error{
			Code:    CodeInvalidRepositoryReference,
			Message: fmt.Sprintf("cannot parse repository reference %q", repoURL),
			Err:     err,
		}
	}

	state := State{RepoURL: repoURL}

	slog.Info("Walking repository tree", "repo", repoURL, "maxDepth", p.maxDepth)
	nodes, err := p.walker.Walk(ctx, repoURL, p.maxDepth)
	if err != nil {
		return nil, classifyHostError(err, "failed to walk repository")
	}
	state.RepoTree = repository.RenderTree(nodes)

	state, err = p.selectFiles(ctx, state)
	if err != nil {
		return nil, err
	}

	state, err = p.analyzeFiles(ctx, state)
	if err != nil {
		return nil, err
	}

	return &state, nil
}

// selectFiles is the first stage: it fills ImportantFiles from RepoTree.
func (p *Pipeline) selectFiles(ctx context.Context, state State) (State, error) {
	files, err := p.selector.ChooseFiles(ctx, state.RepoTree)
	if err != nil {
		return state, &Error{
			Code:    CodeSelectionFailed,
			Message: "file selection failed",
			Err:     err,
		}
	}
	if len(files) == 0 {
		return state, &Error{
			Code:    CodeSelectionFailed,
			Message: "file selection returned no files",
		}
	}
	if len(files) > p.maxFiles {
		files = files[:p.maxFiles]
	}

	state.ImportantFiles = files
	return state, nil
}

// analyzeFiles is the second stage: it fills Analysis from ImportantFiles.
// Files whose content could not be fetched are skipped; files whose
// summarization fails get placeholder text. Output order follows
// ImportantFiles regardless of completion order.
func (p *Pipeline) analyzeFiles(ctx context.Context, state State) (State, error) {
	contents := p.fetcher.FetchAll(ctx, state.RepoURL, state.ImportantFiles)
	if len(contents) == 0 {
		return state, &Error{
			Code:    CodeNoFilesReadable,
			Message: fmt.Sprintf("none of the %d selected files could be read", len(state.ImportantFiles)),
		}
	}

	byPath := make(map[string]string, len(contents))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, path := range state.ImportantFiles {
		content, ok := contents[path]
		if !ok {
			slog.Warn("Skipping unreadable file", "path", path)
			continue
		}

		path := path
		g.Go(func() error {
			text := p.analyzeOne(gctx, path, content)
			mu.Lock()
			byPath[path] = text
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	analysis := make([]FileAnalysis, 0, len(byPath))
	for _, path := range state.ImportantFiles {
		if text, ok := byPath[path]; ok {
			analysis = append(analysis, FileAnalysis{Path: path, Analysis: text})
		}
	}

	state.Analysis = analysis
	return state, nil
}

// analyzeOne runs the structural analyzer and summarizer for a single file.
// It always returns usable text.
func (p *Pipeline) analyzeOne(ctx context.Context, path, content string) string {
	report := analyzers.ForPath(path).Analyze(content, path)

	text, err := p.summarizer.Summarize(ctx, path, report.Text)
	if err != nil {
		slog.Error("Summarization failed", "code", CodePerFileAnalysisFailed, "path", path, "error", err)
		return fmt.Sprintf("Analysis failed: %v", err)
	}
	return text
}
