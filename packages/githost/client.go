// Package githost is a thin client over the GitHub contents API. It exposes
// the three operations the analysis pipeline needs (list a directory, read a
// file, fetch repository metadata) and maps the host's failure modes onto
// distinguishable sentinel errors.
package githost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

// Sentinel errors for the host failure conditions callers need to tell apart.
var (
	ErrNotFound     = errors.New("repository or path not found")
	ErrAccessDenied = errors.New("access denied")
	ErrRateLimited  = errors.New("rate limited")
	ErrInvalidRepo  = errors.New("invalid repository reference")
)

// Entry is one child of a repository directory.
type Entry struct {
	Name string
	Path string
	Kind string // "file" or "dir"
}

// Metadata describes a repository as reported by the host.
type Metadata struct {
	FullName    string
	Description string
	Language    string
	Stars       int
	Forks       int
	OpenIssues  int
}

// Client wraps an authenticated GitHub API client.
type Client struct {
	gh *github.Client
}

// NewClient creates a host client. An empty token yields an unauthenticated
// client, which works for public repositories at a lower rate limit.
func NewClient(ctx context.Context, token string) *Client {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		slog.Warn("No GitHub token configured, using unauthenticated client")
		return &Client{gh: github.NewClient(nil)}
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{gh: github.NewClient(oauth2.NewClient(ctx, ts))}
}

// ParseRepoURL extracts owner and repository name from a GitHub URL or an
// "owner/repo" shorthand.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	clean := strings.TrimSuffix(strings.TrimRight(raw, "/"), ".git")

	if strings.Contains(clean, "://") || strings.Contains(clean, "github.com") {
		parsed, perr := url.Parse(clean)
		if perr != nil {
			return "", "", fmt.Errorf("%w: %s", ErrInvalidRepo, raw)
		}
		clean = strings.Trim(parsed.Path, "/")
	}

	parts := strings.Split(clean, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRepo, raw)
	}
	return parts[0], parts[1], nil
}

// ListDirectory returns the children of path within the repository. The root
// directory is addressed with an empty path.
func (c *Client) ListDirectory(ctx context.Context, repoURL, path string) ([]Entry, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	_, dirContent, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, mapError(err, path)
	}
	if dirContent == nil {
		return nil, fmt.Errorf("path %q is not a directory", path)
	}

	entries := make([]Entry, 0, len(dirContent))
	for _, item := range dirContent {
		entries = append(entries, Entry{
			Name: item.GetName(),
			Path: item.GetPath(),
			Kind: item.GetType(),
		})
	}
	return entries, nil
}

// ReadFile returns the decoded content of one file.
func (c *Client) ReadFile(ctx context.Context, repoURL, path string) (string, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return "", err
	}

	fileContent, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return "", mapError(err, path)
	}
	if fileContent == nil {
		return "", fmt.Errorf("path %q is a directory, not a file", path)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return content, nil
}

// Metadata fetches repository-level metadata.
func (c *Client) Metadata(ctx context.Context, repoURL string) (*Metadata, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	r, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, mapError(err, "")
	}

	return &Metadata{
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		OpenIssues:  r.GetOpenIssuesCount(),
	}, nil
}

// mapError translates go-github errors into the package sentinels so callers
// can classify failures without importing go-github.
func mapError(err error, path string) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			if path != "" {
				return fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}
	return err
}
