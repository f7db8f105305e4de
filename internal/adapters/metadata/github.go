package metadata

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/go-github/v66/github"

	"gitget/internal/domain"
)

// GitHubProvider reads repository metadata from the GitHub REST API
type GitHubProvider struct {
	session *Session
}

func (p *GitHubProvider) Name() string { return "github" }

func (p *GitHubProvider) Supports(host string) bool {
	return host == "github.com" || host == "www.github.com"
}

// FetchMetadata maps a repository onto Metadata. Watchers are the
// subscriber count, not the stargazer-mirroring watchers_count.
func (p *GitHubProvider) FetchMetadata(ctx context.Context, ref domain.RepoRef) (*domain.Metadata, *domain.RateLimit, error) {
	client, err := p.session.githubClient()
	if err != nil {
		return nil, nil, p.fail(ref, err)
	}

	repo, resp, err := client.Repositories.Get(ctx, ref.Owner, ref.Repo)
	limit := githubRate(resp)
	if err != nil {
		return nil, limit, p.fail(ref, err)
	}

	md := &domain.Metadata{
		Description:  repo.GetDescription(),
		Homepage:     repo.GetHomepage(),
		Languages:    []string{},
		SizeKB:       repo.GetSize(),
		Stars:        repo.GetStargazersCount(),
		Watchers:     repo.GetSubscribersCount(),
		Forks:        repo.GetForksCount(),
		Topics:       repo.Topics,
		CreatedAt:    domain.NewTimestamp(repo.GetCreatedAt().Time),
		UpdatedAt:    domain.NewTimestamp(repo.GetUpdatedAt().Time),
		LastCommitAt: domain.NewTimestamp(repo.GetPushedAt().Time),
	}
	if lang := repo.GetLanguage(); lang != "" {
		md.Languages = []string{lang}
	}
	if lic := repo.GetLicense(); lic != nil {
		md.License = &domain.License{
			Name: lic.GetName(),
			Key:  lic.GetSPDXID(),
			URL:  lic.GetURL(),
		}
	}
	return md, limit, nil
}

func (p *GitHubProvider) fail(ref domain.RepoRef, err error) error {
	return &domain.MetadataError{Provider: p.Name(), URL: ref.URL, Err: err}
}

func githubRate(resp *github.Response) *domain.RateLimit {
	if resp == nil {
		return nil
	}
	limit := &domain.RateLimit{
		Resource:  "github",
		Limit:     resp.Rate.Limit,
		Remaining: resp.Rate.Remaining,
		Reset:     resp.Rate.Reset.Time,
	}
	limit.Used = usedFromHeader(resp.Response, "X-RateLimit-Used", limit.Limit-limit.Remaining)
	return limit
}

func usedFromHeader(resp *http.Response, header string, fallback int) int {
	if resp == nil {
		return fallback
	}
	if n, err := strconv.Atoi(resp.Header.Get(header)); err == nil {
		return n
	}
	return fallback
}
