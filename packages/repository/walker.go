// Package repository traverses a remote repository tree and fetches file
// contents. It talks to the hosting provider only through the Host interface
// so the network can be replaced in tests.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"repoinsight/packages/githost"
	"repoinsight/packages/ignore"
)

// Host is the subset of the hosting provider API the walker and fetcher need.
// githost.Client satisfies it.
type Host interface {
	ListDirectory(ctx context.Context, repoURL, path string) ([]githost.Entry, error)
	ReadFile(ctx context.Context, repoURL, path string) (string, error)
}

// NodeKind distinguishes files from directories in a tree listing.
type NodeKind string

const (
	KindFile NodeKind = "file"
	KindDir  NodeKind = "dir"
)

// TreeNode is one entry of a repository tree listing. Nodes are never
// mutated after the walk that produced them.
type TreeNode struct {
	Path  string
	Name  string
	Kind  NodeKind
	Depth int
}

// Walker produces depth-bounded tree listings of a remote repository.
type Walker struct {
	host    Host
	filters *ignore.Engine
}

// NewWalker creates a walker that filters files through the given engine.
func NewWalker(host Host, filters *ignore.Engine) *Walker {
	return &Walker{host: host, filters: filters}
}

// Walk lists the repository tree breadth-first down to maxDepth. Depth is the
// number of path separators in an entry's full path, so root entries have
// depth 0 and a directory at depth d only has its children listed while
// d < maxDepth. Ignored files are omitted. A failure on the root listing is
// fatal; a failure on any subdirectory is logged and that subtree skipped.
func (w *Walker) Walk(ctx context.Context, repoURL string, maxDepth int) ([]TreeNode, error) {
	root, err := w.listSorted(ctx, repoURL, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list repository root: %w", err)
	}

	var nodes []TreeNode

	// Explicit queue, no recursion: each element is a directory whose
	// children have already been listed.
	type dirEntry struct {
		path    string
		entries []githost.Entry
	}
	queue := []dirEntry{{path: "", entries: root}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, entry := range current.entries {
			if err := ctx.Err(); err != nil {
				return nodes, err
			}

			depth := strings.Count(entry.Path, "/")
			if depth > maxDepth {
				continue
			}

			switch entry.Kind {
			case "dir":
				nodes = append(nodes, TreeNode{
					Path:  entry.Path,
					Name:  entry.Name,
					Kind:  KindDir,
					Depth: depth,
				})
				if depth < maxDepth {
					children, err := w.listSorted(ctx, repoURL, entry.Path)
					if err != nil {
						slog.Warn("Skipping unreadable directory", "path", entry.Path, "error", err)
						continue
					}
					queue = append(queue, dirEntry{path: entry.Path, entries: children})
				}
			case "file":
				if w.filters.IsIgnored(ctx, repoURL, entry.Path) {
					continue
				}
				nodes = append(nodes, TreeNode{
					Path:  entry.Path,
					Name:  entry.Name,
					Kind:  KindFile,
					Depth: depth,
				})
			}
		}
	}

	return nodes, nil
}

// listSorted lists a directory with directories before files, each group
// alphabetical, for deterministic rendering.
func (w *Walker) listSorted(ctx context.Context, repoURL, path string) ([]githost.Entry, error) {
	entries, err := w.host.ListDirectory(ctx, repoURL, path)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind == "dir"
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// RenderTree formats a tree listing as connector lines, one node per line:
//
//	+-- src/ (src)
//	|   +-- main.py (src/main.py)
//
// The format is parsed downstream as semi-structured text, so it must stay
// one entry per line with the full path in parentheses.
func RenderTree(nodes []TreeNode) string {
	var b strings.Builder
	for i, node := range nodes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("|   ", node.Depth))
		b.WriteString("+-- ")
		b.WriteString(node.Name)
		if node.Kind == KindDir {
			b.WriteString("/")
		}
		b.WriteString(" (")
		b.WriteString(node.Path)
		b.WriteString(")")
	}
	return b.String()
}
