package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// RepoRef is the structural parse of a repository URL
type RepoRef struct {
	URL   string
	Host  string
	Owner string
	Repo  string
}

// scpLike matches git@host:owner/repo.git
var scpLike = regexp.MustCompile(`^([A-Za-z0-9_.\-]+@)?([A-Za-z0-9.\-]+):([^/].*)$`)

// ParseRepoRef extracts host, owner and repo from a clone or web URL.
// Owner and repo are the first two non-empty path segments after a
// trailing .git has been removed; anything after them is ignored.
func ParseRepoRef(raw string) (RepoRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RepoRef{}, fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	normalized := raw
	if !strings.Contains(raw, "://") {
		if m := scpLike.FindStringSubmatch(raw); m != nil {
			normalized = "ssh://" + m[1] + m[2] + "/" + m[3]
		}
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return RepoRef{}, fmt.Errorf("%w: %s: %v", ErrInvalidURL, raw, err)
	}

	path := strings.TrimSuffix(strings.TrimRight(u.Path, "/"), ".git")
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return RepoRef{}, fmt.Errorf("%w: %s: expected owner and repository in path", ErrInvalidURL, raw)
	}

	return RepoRef{
		URL:   raw,
		Host:  strings.ToLower(u.Hostname()),
		Owner: segments[0],
		Repo:  segments[1],
	}, nil
}

// DefaultName is the package name used when install is given none
func (r RepoRef) DefaultName() string {
	return r.Owner + "_" + r.Repo
}
