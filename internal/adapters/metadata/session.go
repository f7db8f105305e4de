package metadata

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v66/github"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"gitget/internal/domain"
	"gitget/internal/ports"
)

// Credentials holds optional API tokens
type Credentials struct {
	GitHubToken string
	GitLabToken string
}

// Session owns the API clients of one command invocation. Clients are
// built on first use; Close releases their connections.
type Session struct {
	creds      Credentials
	httpClient *http.Client
	githubURL  string
	gitlabURL  string

	mu     sync.Mutex
	github *github.Client
	gitlab *gitlab.Client
	closed bool
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithHTTPClient sets the HTTP client shared by all API clients
func WithHTTPClient(c *http.Client) SessionOption {
	return func(s *Session) { s.httpClient = c }
}

// WithGitHubAPI points the GitHub client at another API root
func WithGitHubAPI(baseURL string) SessionOption {
	return func(s *Session) { s.githubURL = baseURL }
}

// WithGitLabAPI points the GitLab client at another API root
func WithGitLabAPI(baseURL string) SessionOption {
	return func(s *Session) { s.gitlabURL = baseURL }
}

// OpenSession returns a session; no network traffic happens until a
// provider fetches.
func OpenSession(creds Credentials, opts ...SessionOption) *Session {
	s := &Session{
		creds:      creds,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate fills missing tokens from merged command options. It has
// no effect on clients that were already built.
func (s *Session) Authenticate(opts domain.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds.GitHubToken == "" && s.github == nil {
		s.creds.GitHubToken = opts.String(domain.OptGitHubToken)
	}
	if s.creds.GitLabToken == "" && s.gitlab == nil {
		s.creds.GitLabToken = opts.String(domain.OptGitLabToken)
	}
}

// Providers returns the metadata providers in lookup order
func (s *Session) Providers() []ports.MetadataProvider {
	return []ports.MetadataProvider{
		&GistProvider{session: s},
		&GitHubProvider{session: s},
		&GitLabProvider{session: s},
	}
}

// Close drops the clients and idle connections
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.github = nil
	s.gitlab = nil
	s.closed = true
	s.httpClient.CloseIdleConnections()
	return nil
}

func (s *Session) githubClient() (*github.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("metadata session closed")
	}
	if s.github != nil {
		return s.github, nil
	}

	c := github.NewClient(s.httpClient)
	if s.creds.GitHubToken != "" {
		c = c.WithAuthToken(s.creds.GitHubToken)
	}
	if s.githubURL != "" {
		base := s.githubURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		c.BaseURL = u
	}
	s.github = c
	return c, nil
}

func (s *Session) gitlabClient() (*gitlab.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("metadata session closed")
	}
	if s.gitlab != nil {
		return s.gitlab, nil
	}

	opts := []gitlab.ClientOptionFunc{
		gitlab.WithHTTPClient(s.httpClient),
		gitlab.WithoutRetries(),
	}
	if s.gitlabURL != "" {
		opts = append(opts, gitlab.WithBaseURL(s.gitlabURL))
	}
	c, err := gitlab.NewClient(s.creds.GitLabToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}
	s.gitlab = c
	return c, nil
}
