package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitget/internal/domain"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestProvidersSupport(t *testing.T) {
	s := OpenSession(Credentials{})
	defer s.Close()

	tests := []struct {
		host string
		want string
	}{
		{"gist.github.com", "gist"},
		{"github.com", "github"},
		{"gitlab.com", "gitlab"},
		{"bitbucket.org", ""},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			got := ""
			for _, p := range s.Providers() {
				if p.Supports(tt.host) {
					got = p.Name()
					break
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGitHubProvider(t *testing.T) {
	var auth string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/repos/owner/repo", r.URL.Path)
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "4990")
		w.Header().Set("X-RateLimit-Used", "10")
		w.Header().Set("X-RateLimit-Reset", "1700000000")
		fmt.Fprint(w, `{
			"description": "a repo",
			"homepage": "https://example.org",
			"language": "Go",
			"size": 321,
			"stargazers_count": 42,
			"watchers_count": 42,
			"subscribers_count": 7,
			"forks_count": 3,
			"topics": ["cli", "git"],
			"license": {"key": "mit", "name": "MIT License", "spdx_id": "MIT", "url": "https://api.github.com/licenses/mit"},
			"created_at": "2015-01-02T03:04:05Z",
			"updated_at": "2024-01-02T03:04:05Z",
			"pushed_at": "2024-02-03T04:05:06Z"
		}`)
	})

	s := OpenSession(Credentials{GitHubToken: "tok"}, WithGitHubAPI(srv.URL))
	defer s.Close()

	ref, err := domain.ParseRepoRef("https://github.com/owner/repo.git")
	require.NoError(t, err)

	md, limit, err := (&GitHubProvider{session: s}).FetchMetadata(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "a repo", md.Description)
	assert.Equal(t, "https://example.org", md.Homepage)
	assert.Equal(t, []string{"Go"}, md.Languages)
	assert.Equal(t, 321, md.SizeKB)
	assert.Equal(t, 42, md.Stars)
	assert.Equal(t, 7, md.Watchers, "watchers are subscribers")
	assert.Equal(t, 3, md.Forks)
	assert.Equal(t, []string{"cli", "git"}, md.Topics)
	assert.Equal(t, &domain.License{Name: "MIT License", Key: "MIT", URL: "https://api.github.com/licenses/mit"}, md.License)
	require.NotNil(t, md.LastCommitAt)
	assert.True(t, md.LastCommitAt.Equal(domain.Timestamp{Time: time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)}))

	require.NotNil(t, limit)
	assert.Equal(t, 5000, limit.Limit)
	assert.Equal(t, 4990, limit.Remaining)
	assert.Equal(t, 10, limit.Used)
}

func TestGitHubProvider_Error(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	})

	s := OpenSession(Credentials{}, WithGitHubAPI(srv.URL))
	defer s.Close()

	_, _, err := (&GitHubProvider{session: s}).FetchMetadata(context.Background(),
		domain.RepoRef{URL: "https://github.com/o/r", Owner: "o", Repo: "r"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMetadataFetchFailed)

	var merr *domain.MetadataError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "github", merr.Provider)
}

func TestGistProvider(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/gists/abc123":
			w.Header().Set("Last-Modified", "Sat, 02 Jan 2021 03:04:05 GMT")
			fmt.Fprint(w, `{"id": "abc123", "description": "snippet",
				"created_at": "2020-01-01T00:00:00Z", "updated_at": "2021-01-01T00:00:00Z"}`)
		case r.URL.Path == "/gists/abc123/forks" && r.URL.Query().Get("page") == "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/gists/abc123/forks?page=2>; rel="next"`, "http://"+r.Host))
			fmt.Fprint(w, `[{"id": "f1"}, {"id": "f2"}]`)
		case r.URL.Path == "/gists/abc123/forks":
			fmt.Fprint(w, `[{"id": "f3"}]`)
		default:
			http.NotFound(w, r)
		}
	})

	s := OpenSession(Credentials{}, WithGitHubAPI(srv.URL))
	defer s.Close()

	ref, err := domain.ParseRepoRef("https://gist.github.com/someone/abc123")
	require.NoError(t, err)

	md, _, err := (&GistProvider{session: s}).FetchMetadata(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, "snippet", md.Description)
	assert.Equal(t, 3, md.Forks)
	assert.Zero(t, md.Stars)
	assert.Nil(t, md.License)
	assert.Empty(t, md.Languages)
	assert.Empty(t, md.Topics)
	require.NotNil(t, md.CreatedAt)
	assert.Equal(t, 2020, md.CreatedAt.Year())
	require.NotNil(t, md.LastCommitAt)
	assert.True(t, md.LastCommitAt.Time.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)), "last commit is the gist's updated_at")
	require.NotNil(t, md.UpdatedAt)
	assert.True(t, md.UpdatedAt.Time.Equal(time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC)), "updated is Last-Modified")
}

func TestGitLabProvider(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("RateLimit-Limit", "2000")
		w.Header().Set("RateLimit-Remaining", "1998")
		w.Header().Set("RateLimit-Observed", "2")
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/languages") {
			fmt.Fprint(w, `{"Shell": 10.5, "Go": 80.25, "Makefile": 9.25}`)
			return
		}
		assert.Equal(t, "true", r.URL.Query().Get("license"))
		fmt.Fprint(w, `{
			"id": 1,
			"description": "a project",
			"star_count": 9,
			"forks_count": 2,
			"topics": ["infra"],
			"license": {"key": "apache-2.0", "name": "Apache License 2.0", "html_url": "https://www.apache.org/licenses/LICENSE-2.0"},
			"created_at": "2018-05-06T07:08:09Z",
			"last_activity_at": "2024-05-06T07:08:09Z"
		}`)
	})

	s := OpenSession(Credentials{GitLabToken: "glpat"}, WithGitLabAPI(srv.URL))
	defer s.Close()

	ref, err := domain.ParseRepoRef("https://gitlab.com/group/project.git")
	require.NoError(t, err)

	md, limit, err := (&GitLabProvider{session: s}).FetchMetadata(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, "a project", md.Description)
	assert.Equal(t, []string{"Go", "Shell", "Makefile"}, md.Languages)
	assert.Equal(t, 9, md.Stars)
	assert.Zero(t, md.Watchers)
	assert.Zero(t, md.SizeKB)
	assert.Empty(t, md.Homepage)
	assert.Equal(t, 2, md.Forks)
	assert.Equal(t, []string{"infra"}, md.Topics)
	assert.Equal(t, "apache-2.0", md.License.Key)
	assert.Equal(t, "https://www.apache.org/licenses/LICENSE-2.0", md.License.URL)
	require.NotNil(t, md.LastCommitAt)
	assert.Equal(t, 2024, md.LastCommitAt.Year())

	require.NotNil(t, limit)
	assert.Equal(t, 2000, limit.Limit)
	assert.Equal(t, 2, limit.Used)
}

func TestSessionClose(t *testing.T) {
	s := OpenSession(Credentials{})
	_, err := s.githubClient()
	require.NoError(t, err)

	require.NoError(t, s.Close())

	_, _, err = (&GitHubProvider{session: s}).FetchMetadata(context.Background(),
		domain.RepoRef{URL: "https://github.com/o/r", Owner: "o", Repo: "r"})
	assert.ErrorIs(t, err, domain.ErrMetadataFetchFailed)
}

func TestSessionLazyClients(t *testing.T) {
	s := OpenSession(Credentials{})
	defer s.Close()

	assert.Nil(t, s.github)
	assert.Nil(t, s.gitlab)

	first, err := s.githubClient()
	require.NoError(t, err)
	second, err := s.githubClient()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Nil(t, s.gitlab)
}

func TestSessionAuthenticate(t *testing.T) {
	s := OpenSession(Credentials{GitLabToken: "from-env"})
	defer s.Close()

	s.Authenticate(domain.Options{
		domain.OptGitHubToken: "from-config",
		domain.OptGitLabToken: "ignored",
	})
	assert.Equal(t, "from-config", s.creds.GitHubToken)
	assert.Equal(t, "from-env", s.creds.GitLabToken)
}
