package repository

import (
	"context"
	"fmt"
	"path"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoinsight/packages/githost"
	"repoinsight/packages/ignore"
)

// fakeHost serves directory listings and file contents from maps. It counts
// reads per path and can be told to fail specific listings.
type fakeHost struct {
	mu       sync.Mutex
	dirs     map[string][]githost.Entry
	files    map[string]string
	listErrs map[string]error
	readErrs map[string]error
	reads    map[string]int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		dirs:     make(map[string][]githost.Entry),
		files:    make(map[string]string),
		listErrs: make(map[string]error),
		readErrs: make(map[string]error),
		reads:    make(map[string]int),
	}
}

func (h *fakeHost) ListDirectory(_ context.Context, _, path string) ([]githost.Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err, ok := h.listErrs[path]; ok {
		return nil, err
	}
	entries, ok := h.dirs[path]
	if !ok {
		return nil, fmt.Errorf("no such directory: %q", path)
	}
	out := make([]githost.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (h *fakeHost) ReadFile(_ context.Context, _, path string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reads[path]++
	if err, ok := h.readErrs[path]; ok {
		return "", err
	}
	content, ok := h.files[path]
	if !ok {
		return "", fmt.Errorf("no such file: %q", path)
	}
	return content, nil
}

func (h *fakeHost) readCount(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reads[path]
}

func newTestEngine(t *testing.T, host *fakeHost) *ignore.Engine {
	t.Helper()
	engine, err := ignore.NewEngine(host, 32)
	require.NoError(t, err)
	return engine
}

func file(p string) githost.Entry {
	return githost.Entry{Name: path.Base(p), Path: p, Kind: "file"}
}

func dir(p string) githost.Entry {
	return githost.Entry{Name: path.Base(p), Path: p, Kind: "dir"}
}

func TestWalkBoundsDepth(t *testing.T) {
	host := newFakeHost()
	host.dirs[""] = []githost.Entry{dir("a"), file("root.go")}
	host.dirs["a"] = []githost.Entry{dir("a/b"), file("a/one.go")}
	host.dirs["a/b"] = []githost.Entry{dir("a/b/c"), file("a/b/two.go")}
	host.dirs["a/b/c"] = []githost.Entry{file("a/b/c/three.go")}

	w := NewWalker(host, newTestEngine(t, host))
	nodes, err := w.Walk(context.Background(), "owner/repo", 2)
	require.NoError(t, err)

	var paths []string
	for _, n := range nodes {
		paths = append(paths, n.Path)
	}
	assert.Contains(t, paths, "a/b/two.go")
	assert.Contains(t, paths, "a/b/c")
	assert.NotContains(t, paths, "a/b/c/three.go")
}

func TestWalkOrdersDirectoriesBeforeFiles(t *testing.T) {
	host := newFakeHost()
	host.dirs[""] = []githost.Entry{file("zz.go"), dir("src"), file("aa.go"), dir("cmd")}
	host.dirs["src"] = nil
	host.dirs["cmd"] = nil

	w := NewWalker(host, newTestEngine(t, host))
	nodes, err := w.Walk(context.Background(), "owner/repo", 1)
	require.NoError(t, err)

	var paths []string
	for _, n := range nodes {
		paths = append(paths, n.Path)
	}
	assert.Equal(t, []string{"cmd", "src", "aa.go", "zz.go"}, paths)
}

func TestWalkFiltersIgnoredFiles(t *testing.T) {
	host := newFakeHost()
	host.dirs[""] = []githost.Entry{file(".gitignore"), file("app.log"), file("main.go"), file("logo.png")}
	host.files[".gitignore"] = "*.log\n"

	w := NewWalker(host, newTestEngine(t, host))
	nodes, err := w.Walk(context.Background(), "owner/repo", 1)
	require.NoError(t, err)

	var paths []string
	for _, n := range nodes {
		paths = append(paths, n.Path)
	}
	assert.Contains(t, paths, "main.go")
	assert.Contains(t, paths, ".gitignore")
	assert.NotContains(t, paths, "app.log")
	assert.NotContains(t, paths, "logo.png") // binary extension denylist
}

func TestWalkRootListingErrorIsFatal(t *testing.T) {
	host := newFakeHost()
	host.listErrs[""] = fmt.Errorf("boom")

	w := NewWalker(host, newTestEngine(t, host))
	_, err := w.Walk(context.Background(), "owner/repo", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list repository root")
}

func TestWalkSkipsUnreadableSubdirectory(t *testing.T) {
	host := newFakeHost()
	host.dirs[""] = []githost.Entry{dir("good"), dir("bad"), file("main.go")}
	host.dirs["good"] = []githost.Entry{file("good/a.go")}
	host.listErrs["bad"] = fmt.Errorf("forbidden")

	w := NewWalker(host, newTestEngine(t, host))
	nodes, err := w.Walk(context.Background(), "owner/repo", 1)
	require.NoError(t, err)

	var paths []string
	for _, n := range nodes {
		paths = append(paths, n.Path)
	}
	assert.Contains(t, paths, "bad") // the directory itself still appears
	assert.Contains(t, paths, "good/a.go")
	assert.NotContains(t, paths, "bad/anything")
}

func TestRenderTreeFormat(t *testing.T) {
	nodes := []TreeNode{
		{Path: "src", Name: "src", Kind: KindDir, Depth: 0},
		{Path: "src/main.py", Name: "main.py", Kind: KindFile, Depth: 1},
		{Path: "src/deep/util.py", Name: "util.py", Kind: KindFile, Depth: 2},
		{Path: "README.md", Name: "README.md", Kind: KindFile, Depth: 0},
	}

	want := "+-- src/ (src)\n" +
		"|   +-- main.py (src/main.py)\n" +
		"|   |   +-- util.py (src/deep/util.py)\n" +
		"+-- README.md (README.md)"
	assert.Equal(t, want, RenderTree(nodes))
}

func TestRenderTreeEmpty(t *testing.T) {
	assert.Equal(t, "", RenderTree(nil))
}
