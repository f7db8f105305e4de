package metadata

import (
	"context"
	"net/http"

	"github.com/google/go-github/v66/github"

	"gitget/internal/domain"
)

// GistProvider reads gist metadata. Gists have no stars, license,
// languages or topics.
type GistProvider struct {
	session *Session
}

func (p *GistProvider) Name() string { return "gist" }

func (p *GistProvider) Supports(host string) bool {
	return host == "gist.github.com"
}

// FetchMetadata looks the gist up by the second path segment of its URL
func (p *GistProvider) FetchMetadata(ctx context.Context, ref domain.RepoRef) (*domain.Metadata, *domain.RateLimit, error) {
	client, err := p.session.githubClient()
	if err != nil {
		return nil, nil, p.fail(ref, err)
	}

	gist, resp, err := client.Gists.Get(ctx, ref.Repo)
	limit := githubRate(resp)
	if err != nil {
		return nil, limit, p.fail(ref, err)
	}

	// The gist's own updated_at marks its last revision; the response's
	// Last-Modified header, when present, is the record's update time.
	updated := gist.GetUpdatedAt().Time
	if lm, perr := http.ParseTime(resp.Header.Get("Last-Modified")); perr == nil {
		updated = lm
	}

	forks := 0
	opts := &github.ListOptions{PerPage: 100}
	for {
		page, resp, err := client.Gists.ListForks(ctx, ref.Repo, opts)
		if rl := githubRate(resp); rl != nil {
			limit = rl
		}
		if err != nil {
			return nil, limit, p.fail(ref, err)
		}
		forks += len(page)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return &domain.Metadata{
		Description:  gist.GetDescription(),
		Languages:    []string{},
		Forks:        forks,
		Topics:       []string{},
		CreatedAt:    domain.NewTimestamp(gist.GetCreatedAt().Time),
		UpdatedAt:    domain.NewTimestamp(updated),
		LastCommitAt: domain.NewTimestamp(gist.GetUpdatedAt().Time),
	}, limit, nil
}

func (p *GistProvider) fail(ref domain.RepoRef, err error) error {
	return &domain.MetadataError{Provider: p.Name(), URL: ref.URL, Err: err}
}
