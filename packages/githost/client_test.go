package githost

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-github/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		in        string
		owner     string
		repo      string
		wantError bool
	}{
		{"https://github.com/owner/project", "owner", "project", false},
		{"https://github.com/owner/project/", "owner", "project", false},
		{"https://github.com/owner/project.git", "owner", "project", false},
		{"http://github.com/owner/project", "owner", "project", false},
		{"owner/project", "owner", "project", false},
		{"owner/project.git", "owner", "project", false},
		{"", "", "", true},
		{"just-a-name", "", "", true},
		{"too/many/parts", "", "", true},
		{"https://github.com/owner", "", "", true},
		{"/project", "", "", true},
	}

	for _, tt := range tests {
		owner, repo, err := ParseRepoURL(tt.in)
		if tt.wantError {
			require.Error(t, err, tt.in)
			assert.True(t, errors.Is(err, ErrInvalidRepo), tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.owner, owner, tt.in)
		assert.Equal(t, tt.repo, repo, tt.in)
	}
}

// apiError builds an ErrorResponse the way go-github produces one, with the
// request attached so its Error method can render.
func apiError(status int) *github.ErrorResponse {
	return &github.ErrorResponse{
		Response: &http.Response{
			StatusCode: status,
			Request:    &http.Request{Method: "GET"},
		},
	}
}

func TestMapError(t *testing.T) {
	assert.True(t, errors.Is(mapError(apiError(http.StatusNotFound), "src/main.py"), ErrNotFound))
	assert.True(t, errors.Is(mapError(apiError(http.StatusForbidden), ""), ErrAccessDenied))
	assert.True(t, errors.Is(mapError(apiError(http.StatusUnauthorized), ""), ErrAccessDenied))

	rate := &github.RateLimitError{}
	assert.True(t, errors.Is(mapError(rate, ""), ErrRateLimited))

	plain := fmt.Errorf("connection reset")
	assert.Equal(t, plain, mapError(plain, ""))
}

func TestMapErrorIncludesPath(t *testing.T) {
	err := mapError(apiError(http.StatusNotFound), "docs/missing.md")
	assert.Contains(t, err.Error(), "docs/missing.md")
}
