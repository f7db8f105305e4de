package metadata

import (
	"context"
	"slices"
	"strconv"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"gitget/internal/domain"
)

// GitLabProvider reads project metadata from the GitLab REST API
type GitLabProvider struct {
	session *Session
}

func (p *GitLabProvider) Name() string { return "gitlab" }

func (p *GitLabProvider) Supports(host string) bool {
	return host == "gitlab.com" || host == "www.gitlab.com"
}

// FetchMetadata maps a project onto Metadata. GitLab reports no size,
// homepage or watcher count, so those stay zero; languages are ordered by
// their share of the code base.
func (p *GitLabProvider) FetchMetadata(ctx context.Context, ref domain.RepoRef) (*domain.Metadata, *domain.RateLimit, error) {
	client, err := p.session.gitlabClient()
	if err != nil {
		return nil, nil, p.fail(ref, err)
	}

	pid := ref.Owner + "/" + ref.Repo
	project, resp, err := client.Projects.GetProject(pid,
		&gitlab.GetProjectOptions{License: gitlab.Ptr(true)},
		gitlab.WithContext(ctx))
	limit := gitlabRate(resp)
	if err != nil {
		return nil, limit, p.fail(ref, err)
	}

	langs, resp, err := client.Projects.GetProjectLanguages(pid, gitlab.WithContext(ctx))
	if rl := gitlabRate(resp); rl != nil {
		limit = rl
	}
	if err != nil {
		return nil, limit, p.fail(ref, err)
	}

	md := &domain.Metadata{
		Description:  project.Description,
		Languages:    orderedLanguages(langs),
		Stars:        project.StarCount,
		Forks:        project.ForksCount,
		Topics:       project.Topics,
		CreatedAt:    timestamp(project.CreatedAt),
		UpdatedAt:    timestamp(project.UpdatedAt),
		LastCommitAt: timestamp(project.LastActivityAt),
	}
	if project.License != nil {
		md.License = &domain.License{
			Name: project.License.Name,
			Key:  project.License.Key,
			URL:  project.License.HTMLURL,
		}
	}
	return md, limit, nil
}

func (p *GitLabProvider) fail(ref domain.RepoRef, err error) error {
	return &domain.MetadataError{Provider: p.Name(), URL: ref.URL, Err: err}
}

// orderedLanguages sorts language names by descending share, then by name
func orderedLanguages(langs *gitlab.ProjectLanguages) []string {
	out := []string{}
	if langs == nil {
		return out
	}
	for name := range *langs {
		out = append(out, name)
	}
	slices.SortFunc(out, func(a, b string) int {
		sa, sb := (*langs)[a], (*langs)[b]
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	return out
}

func timestamp(t *time.Time) *domain.Timestamp {
	if t == nil {
		return nil
	}
	return domain.NewTimestamp(*t)
}

func gitlabRate(resp *gitlab.Response) *domain.RateLimit {
	if resp == nil || resp.Response == nil {
		return nil
	}
	h := resp.Header
	limit := &domain.RateLimit{Resource: "gitlab"}
	limit.Limit, _ = strconv.Atoi(h.Get("RateLimit-Limit"))
	limit.Remaining, _ = strconv.Atoi(h.Get("RateLimit-Remaining"))
	limit.Used = usedFromHeader(resp.Response, "RateLimit-Observed", limit.Limit-limit.Remaining)
	if reset, err := strconv.ParseInt(h.Get("RateLimit-Reset"), 10, 64); err == nil {
		limit.Reset = time.Unix(reset, 0)
	}
	return limit
}
