package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, host *fakeHost, workers int) *Fetcher {
	t.Helper()
	f, err := NewFetcher(host, newTestEngine(t, host), workers, 64)
	require.NoError(t, err)
	return f
}

func TestFetchAllReturnsRequestedContents(t *testing.T) {
	host := newFakeHost()
	host.files["a.go"] = "package a"
	host.files["b.go"] = "package b"

	f := newTestFetcher(t, host, 3)
	got := f.FetchAll(context.Background(), "owner/repo", []string{"a.go", "b.go"})

	assert.Equal(t, map[string]string{
		"a.go": "package a",
		"b.go": "package b",
	}, got)
}

func TestFetchAllCachesPerPath(t *testing.T) {
	host := newFakeHost()
	host.files["a.go"] = "package a"

	f := newTestFetcher(t, host, 2)
	ctx := context.Background()

	f.FetchAll(ctx, "owner/repo", []string{"a.go"})
	f.FetchAll(ctx, "owner/repo", []string{"a.go"})
	f.FetchAll(ctx, "owner/repo", []string{"a.go"})

	assert.Equal(t, 1, host.readCount("a.go"))
}

func TestFetchAllDeduplicatesRequests(t *testing.T) {
	host := newFakeHost()
	host.files["a.go"] = "package a"

	f := newTestFetcher(t, host, 4)
	got := f.FetchAll(context.Background(), "owner/repo", []string{"a.go", "a.go", "", "a.go"})

	assert.Len(t, got, 1)
	assert.Equal(t, 1, host.readCount("a.go"))
}

func TestFetchAllPartialFailure(t *testing.T) {
	host := newFakeHost()
	host.files["ok1.go"] = "x"
	host.files["ok2.go"] = "y"
	host.readErrs["broken.go"] = fmt.Errorf("server error")

	f := newTestFetcher(t, host, 2)
	got := f.FetchAll(context.Background(), "owner/repo", []string{"ok1.go", "broken.go", "ok2.go"})

	assert.Len(t, got, 2)
	assert.NotContains(t, got, "broken.go")
}

func TestFetchAllRefusesIgnoredPaths(t *testing.T) {
	host := newFakeHost()
	host.files[".gitignore"] = "*.env\n"
	host.files["prod.env"] = "SECRET=1"
	host.files["main.go"] = "package main"

	f := newTestFetcher(t, host, 2)
	got := f.FetchAll(context.Background(), "owner/repo", []string{"prod.env", "main.go"})

	assert.NotContains(t, got, "prod.env")
	assert.Contains(t, got, "main.go")
	assert.Equal(t, 0, host.readCount("prod.env"))
}

func TestFetchAllCacheIsolatedByRepo(t *testing.T) {
	host := newFakeHost()
	host.files["a.go"] = "package a"

	f := newTestFetcher(t, host, 2)
	ctx := context.Background()

	f.FetchAll(ctx, "owner/repo-one", []string{"a.go"})
	f.FetchAll(ctx, "owner/repo-two", []string{"a.go"})

	assert.Equal(t, 2, host.readCount("a.go"))
}

// cancelingHost cancels the batch context after the first content read,
// simulating a deadline expiring mid-batch. Ignore-file reads pass through
// untouched.
type cancelingHost struct {
	*fakeHost
	cancel context.CancelFunc
	once   sync.Once
}

func (h *cancelingHost) ReadFile(ctx context.Context, repoURL, path string) (string, error) {
	content, err := h.fakeHost.ReadFile(ctx, repoURL, path)
	if !strings.HasSuffix(path, ".gitignore") {
		h.once.Do(h.cancel)
	}
	return content, err
}

func TestFetchAllCancelMidBatchKeepsCompleted(t *testing.T) {
	host := newFakeHost()
	host.files["a.go"] = "package a"
	host.files["b.go"] = "package b"
	host.files["c.go"] = "package c"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := &cancelingHost{fakeHost: host, cancel: cancel}

	// One worker keeps the batch sequential, so the cancellation lands
	// between the first fetch and the rest.
	f, err := NewFetcher(ch, newTestEngine(t, host), 1, 64)
	require.NoError(t, err)

	got := f.FetchAll(ctx, "owner/repo", []string{"a.go", "b.go", "c.go"})

	assert.Equal(t, map[string]string{"a.go": "package a"}, got)
}

func TestFetchAllEmptyRequest(t *testing.T) {
	host := newFakeHost()
	f := newTestFetcher(t, host, 2)

	got := f.FetchAll(context.Background(), "owner/repo", nil)
	assert.Empty(t, got)
}
