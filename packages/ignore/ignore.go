// Package ignore decides which repository paths are excluded from analysis.
//
// A path's rule set is the union of a static binary-extension denylist and
// every .gitignore found on the path's ancestor chain, fetched on demand from
// the host and memoized. Patterns stay scoped to the directory of the
// .gitignore that declared them: src/.gitignore's "generated/" covers
// src/generated/ and nothing outside src/. Matching uses full glob semantics
// including "**" (via doublestar); additionally a pattern is tried against
// the path's base name, mirroring plain fnmatch-on-name behavior. Negation
// patterns ("!pattern") are parsed but dropped, so a negation never
// re-includes a previously excluded path, and a leading "/" is stripped
// rather than treated as an anchor, so "/build" also matches nested build
// entries via the base-name try.
package ignore

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"
)

// FileReader reads one small file from a repository. Implemented by
// githost.Client and by test fakes.
type FileReader interface {
	ReadFile(ctx context.Context, repoURL, path string) (string, error)
}

// scopedPattern is one gitignore pattern together with the directory of the
// .gitignore that declared it. The pattern only applies beneath that
// directory and is matched against paths relative to it.
type scopedPattern struct {
	dir     string
	pattern string
}

// PatternSet holds the ignore rules resolved for one path. The binary
// extension denylist is implicit in every set.
type PatternSet struct {
	patterns []scopedPattern
}

// Patterns returns the resolved gitignore-style patterns, rebased onto the
// repository root, in root-to-leaf collection order.
func (s *PatternSet) Patterns() []string {
	out := make([]string, 0, len(s.patterns))
	for _, sp := range s.patterns {
		out = append(out, path.Join(sp.dir, sp.pattern))
	}
	return out
}

// Matches reports whether the given repository-relative path is ignored.
func (s *PatternSet) Matches(filePath string) bool {
	filePath = strings.TrimPrefix(filePath, "/")
	ext := strings.ToLower(path.Ext(filePath))

	if _, ok := alwaysAnalyze[ext]; !ok {
		if _, ok := binaryExtensions[ext]; ok {
			return true
		}
	}

	for _, sp := range s.patterns {
		rel := filePath
		if sp.dir != "" {
			if !strings.HasPrefix(filePath, sp.dir+"/") {
				continue
			}
			rel = filePath[len(sp.dir)+1:]
		}
		if matchPattern(sp.pattern, rel, path.Base(rel)) {
			return true
		}
	}
	return false
}

// matchPattern evaluates one gitignore-style pattern against a path. A
// malformed pattern never matches.
func matchPattern(pattern, filePath, name string) bool {
	if ok, err := doublestar.Match(pattern, filePath); err == nil && ok {
		return true
	}
	// Bare names ("*.log", "Thumbs.db") match any path segment.
	if !strings.Contains(pattern, "/") {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	// Directory patterns cover everything beneath them.
	if ok, err := doublestar.Match(pattern+"/**", filePath); err == nil && ok {
		return true
	}
	return false
}

// Engine resolves PatternSets for repository paths, memoizing per-directory
// gitignore parses so sibling lookups cost one remote read. An Engine is
// owned by a single pipeline session and keys its cache by (repoURL, path).
type Engine struct {
	reader FileReader
	memo   *lru.Cache[string, []string]
}

// NewEngine creates a filter engine backed by reader.
func NewEngine(reader FileReader, cacheSize int) (*Engine, error) {
	memo, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Engine{reader: reader, memo: memo}, nil
}

// ResolvePatterns collects the ignore rules applicable to filePath: the
// parsed contents of every .gitignore at or above the file's directory, each
// scoped to the directory it was declared in. A missing or unreadable ignore
// file contributes no patterns.
func (e *Engine) ResolvePatterns(ctx context.Context, repoURL, filePath string) *PatternSet {
	var patterns []scopedPattern
	for _, dir := range ancestorDirs(filePath) {
		ignorePath := path.Join(dir, ".gitignore")
		for _, p := range e.loadPatterns(ctx, repoURL, ignorePath) {
			patterns = append(patterns, scopedPattern{dir: dir, pattern: p})
		}
	}
	return &PatternSet{patterns: patterns}
}

// IsIgnored is a convenience combining ResolvePatterns and Matches.
func (e *Engine) IsIgnored(ctx context.Context, repoURL, filePath string) bool {
	return e.ResolvePatterns(ctx, repoURL, filePath).Matches(filePath)
}

func (e *Engine) loadPatterns(ctx context.Context, repoURL, ignorePath string) []string {
	key := repoURL + "\x00" + ignorePath
	if cached, ok := e.memo.Get(key); ok {
		return cached
	}

	content, err := e.reader.ReadFile(ctx, repoURL, ignorePath)
	if err != nil {
		// Absent ignore file: no patterns at this level.
		e.memo.Add(key, nil)
		return nil
	}

	patterns := parsePatterns(content)
	slog.Debug("Parsed ignore file", "path", ignorePath, "patterns", len(patterns))
	e.memo.Add(key, patterns)
	return patterns
}

// parsePatterns extracts usable patterns from gitignore content: blank lines
// and comments are skipped, trailing directory slashes are normalized, and
// negations are dropped.
func parsePatterns(content string) []string {
	var patterns []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "!") {
			// Known limitation: negations are not honored.
			continue
		}
		line = strings.TrimSuffix(line, "/")
		line = strings.TrimPrefix(line, "/")
		if line != "" {
			patterns = append(patterns, line)
		}
	}
	return patterns
}

// ancestorDirs returns the directory chain from the repository root down to
// (but excluding) the file itself: "a/b/c.go" -> ["", "a", "a/b"].
func ancestorDirs(filePath string) []string {
	filePath = strings.TrimPrefix(filePath, "/")
	dirs := []string{""}
	parts := strings.Split(filePath, "/")
	for i := 0; i < len(parts)-1; i++ {
		dirs = append(dirs, strings.Join(parts[:i+1], "/"))
	}
	return dirs
}
