package repository

import (
	"context"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"repoinsight/packages/ignore"
)

// Fetcher retrieves file contents concurrently with per-path memoization.
// A Fetcher is owned by one pipeline session; its cache is keyed by
// (repoURL, path) so sessions touching several repositories never collide.
type Fetcher struct {
	host    Host
	filters *ignore.Engine
	cache   *lru.Cache[string, string]
	workers int
}

// NewFetcher creates a fetcher with the given fan-out limit and cache size.
func NewFetcher(host Host, filters *ignore.Engine, workers, cacheSize int) (*Fetcher, error) {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}
	return &Fetcher{host: host, filters: filters, cache: cache, workers: workers}, nil
}

// FetchAll retrieves content for every requested path, fanning out with a
// bounded worker count. Failed paths are logged and absent from the result;
// no single failure aborts the batch. Callers must treat an empty result for
// a non-empty request as fatal.
//
// Paths still re-check ignore status here: the selection stage may request
// files the walker never rendered.
func (f *Fetcher) FetchAll(ctx context.Context, repoURL string, paths []string) map[string]string {
	results := make(map[string]string, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true

		path := p
		g.Go(func() error {
			content, ok := f.fetchOne(ctx, repoURL, path)
			if !ok {
				return nil
			}
			mu.Lock()
			results[path] = content
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; partial failure is expressed by absence.
	_ = g.Wait()
	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, repoURL, path string) (string, bool) {
	key := repoURL + "\x00" + path
	if content, ok := f.cache.Get(key); ok {
		return content, true
	}

	if err := ctx.Err(); err != nil {
		slog.Warn("Fetch abandoned", "path", path, "error", err)
		return "", false
	}

	if f.filters.IsIgnored(ctx, repoURL, path) {
		slog.Info("Refusing to fetch ignored path", "path", path)
		return "", false
	}

	content, err := f.host.ReadFile(ctx, repoURL, path)
	if err != nil {
		slog.Error("Failed to read file", "path", path, "error", err)
		return "", false
	}

	f.cache.Add(key, content)
	return content, true
}
