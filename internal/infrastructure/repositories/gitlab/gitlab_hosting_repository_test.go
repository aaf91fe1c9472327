//go:build unit

package gitlab_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
	"github.com/rios0rios0/releaser/internal/infrastructure/repositories/gitlab"
)

var demoRepo = entities.HostedRepository{ //nolint:gochecknoglobals // shared fixture
	URL:          "https://gitlab.example.com/group/demo.git",
	Domain:       "gitlab.example.com",
	Organization: "group",
	Name:         "demo",
}

// newTestHosting routes every request whose escaped path ends with suffix to handler.
func newTestHosting(t *testing.T, suffix string, handler http.HandlerFunc) repositories.HostingRepository {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.EscapedPath(), suffix) {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	hosting, err := gitlab.NewHostingRepository("token", server.URL+"/api/v4")
	require.NoError(t, err)
	return hosting
}

func TestGitLabHostingRepository(t *testing.T) {
	t.Parallel()

	t.Run("should identify itself as gitlab", func(t *testing.T) {
		t.Parallel()

		// given
		hosting, err := gitlab.NewHostingRepository("token", "")
		require.NoError(t, err)

		// when
		name := hosting.Name()

		// then
		assert.Equal(t, "gitlab", name)
	})

	t.Run("should follow pages when listing releases", func(t *testing.T) {
		t.Parallel()

		// given
		hosting := newTestHosting(t, "/projects/group%2Fdemo/releases", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "token", r.Header.Get("PRIVATE-TOKEN"))
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `[{"tag_name":"1.0.0","name":"1.0.0","description":"* Initial release."}]`)
				return
			}
			w.Header().Set("X-Next-Page", "2")
			fmt.Fprint(w, `[{"tag_name":"1.1.0","description":"* More."}]`)
		})

		// when
		releases, err := hosting.ListReleases(context.Background(), demoRepo)

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.HostedRelease{
			{TagName: "1.1.0", Body: "* More."},
			{TagName: "1.0.0", Name: "1.0.0", Body: "* Initial release."},
		}, releases)
	})

	t.Run("should create a release with the changelog as description", func(t *testing.T) {
		t.Parallel()

		// given
		var received map[string]any
		hosting := newTestHosting(t, "/projects/group%2Fdemo/releases", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"tag_name":"1.0.0"}`)
		})

		// when
		err := hosting.CreateRelease(context.Background(), demoRepo, entities.ReleaseInput{
			TagName: "1.0.0", Name: "1.0.0", Body: "* Initial release.",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", received["tag_name"])
		assert.Equal(t, "* Initial release.", received["description"])
	})

	t.Run("should open a merge request that removes the source branch", func(t *testing.T) {
		t.Parallel()

		// given
		var received map[string]any
		hosting := newTestHosting(t, "/projects/group%2Fdemo/merge_requests", func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"iid":7,"title":"Update demo to 1.0.0","web_url":"https://gitlab.example.com/group/demo/-/merge_requests/7","state":"opened"}`)
		})

		// when
		pr, err := hosting.CreatePullRequest(context.Background(), demoRepo, entities.PullRequestInput{
			SourceBranch: "refs/heads/release-1.0.0",
			TargetBranch: "refs/heads/main",
			Title:        "Update demo to 1.0.0",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 7, pr.ID)
		assert.Equal(t, "opened", pr.Status)
		assert.Equal(t, "release-1.0.0", received["source_branch"])
		assert.Equal(t, "main", received["target_branch"])
		assert.Equal(t, true, received["remove_source_branch"])
	})

	t.Run("should list project member usernames", func(t *testing.T) {
		t.Parallel()

		// given
		hosting := newTestHosting(t, "/projects/group%2Fdemo/members/all", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `[{"id":1,"username":"alice"},{"id":2,"username":"bob"}]`)
		})

		// when
		usernames, err := hosting.ListCollaborators(context.Background(), demoRepo)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, usernames)
	})

	t.Run("should return an error when the API refuses access", func(t *testing.T) {
		t.Parallel()

		// given
		hosting := newTestHosting(t, "/projects/group%2Fdemo/members/all", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message":"403 Forbidden"}`)
		})

		// when
		_, err := hosting.ListCollaborators(context.Background(), demoRepo)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list project members")
	})
}
