package commands

import (
	"context"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitget/internal/application"
	"gitget/internal/domain"
	"gitget/internal/version"
)

// memStore is an in-memory ports.ManifestStore
type memStore struct {
	m        *domain.Manifest
	loadErr  error
	persists int
	created  []string
}

func newMemStore(records ...domain.PackageRecord) *memStore {
	m := domain.NewManifest(version.SchemaVersion)
	for _, rec := range records {
		m.Put(rec)
	}
	return &memStore{m: m}
}

func cloneManifest(m *domain.Manifest) *domain.Manifest {
	out := &domain.Manifest{
		Configuration: m.Configuration,
		Packages:      maps.Clone(m.Packages),
	}
	out.Configuration.Options = maps.Clone(m.Configuration.Options)
	out.Configuration.Extra = maps.Clone(m.Configuration.Extra)
	return out
}

func (s *memStore) Load(_ context.Context, _ string, cli domain.Options) (*domain.Manifest, domain.Options, error) {
	if s.loadErr != nil {
		return nil, nil, s.loadErr
	}
	m := cloneManifest(s.m)
	return m, domain.MergeOptions(cli, m.Configuration.Options), nil
}

func (s *memStore) Persist(_ string, m *domain.Manifest) error {
	s.persists++
	s.m = cloneManifest(m)
	return nil
}

func (s *memStore) Create(path string) error {
	s.created = append(s.created, path)
	return nil
}

func newWorkspace(store *memStore, opts domain.Options) *application.Workspace {
	return application.NewWorkspace(store, "/work/.gitget.yaml", opts)
}

// fakeBuilder builds records from a URL table
type fakeBuilder struct {
	remotes map[string]string // path -> url
	fail    map[string]error  // url or path -> error
	built   []string
}

func (b *fakeBuilder) BuildFromPath(ctx context.Context, name, path string) (domain.PackageRecord, error) {
	if err, ok := b.fail[path]; ok {
		return domain.PackageRecord{}, err
	}
	url, ok := b.remotes[path]
	if !ok {
		return domain.PackageRecord{}, errors.New("no remote configured")
	}
	return b.BuildFromURL(ctx, url, name, path)
}

func (b *fakeBuilder) BuildFromURL(_ context.Context, url, name, path string) (domain.PackageRecord, error) {
	if err, ok := b.fail[url]; ok {
		return domain.PackageRecord{}, err
	}
	ref, err := domain.ParseRepoRef(url)
	if err != nil {
		return domain.PackageRecord{}, err
	}
	b.built = append(b.built, name)
	rec := domain.NewRecord(name, path, ref)
	rec.Description = "about " + ref.Repo
	return rec, nil
}

// fakeGit records calls and creates clone directories
type fakeGit struct {
	failClone map[string]bool // url
	failPull  map[string]bool // path
	missing   bool
	cloned    []string
	pulled    []string
	pullArgs  [][]string
	cloneArgs [][]string
}

func (g *fakeGit) RemoteURL(context.Context, string) (string, error) {
	return "", errors.New("not used")
}

func (g *fakeGit) Clone(_ context.Context, url, dest string, args []string) error {
	if g.failClone[url] {
		return errors.New("fatal: repository not found")
	}
	g.cloned = append(g.cloned, dest)
	g.cloneArgs = append(g.cloneArgs, args)
	return os.MkdirAll(dest, 0o755)
}

func (g *fakeGit) Pull(_ context.Context, path string, args []string) error {
	if g.failPull[path] {
		return errors.New("fatal: not possible to fast-forward")
	}
	g.pulled = append(g.pulled, path)
	g.pullArgs = append(g.pullArgs, args)
	return nil
}

func (g *fakeGit) Version(context.Context) (string, error) {
	if g.missing {
		return "", errors.New(`exec: "git": executable file not found in $PATH`)
	}
	return "git version 2.45.0", nil
}

// fakeProber refuses hosts listed in down
type fakeProber struct {
	down map[string]bool
}

func (p *fakeProber) Reachable(_ context.Context, url string) error {
	for host := range p.down {
		if strings.Contains(url, host) {
			return domain.ErrRemoteUnreachable
		}
	}
	return nil
}

// fakePrompter answers with a fixed reply
type fakePrompter struct {
	answer bool
	err    error
	asked  []string
}

func (p *fakePrompter) Confirm(question string) (bool, error) {
	p.asked = append(p.asked, question)
	return p.answer, p.err
}

// repoDir creates a directory under t.TempDir and returns its absolute path
func repoDir(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(append([]string{t.TempDir()}, parts...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func record(name, path string) domain.PackageRecord {
	return domain.PackageRecord{
		Name: name, Path: path, Owner: "owner", Repo: name,
		URL: "https://github.com/owner/" + name, Languages: []string{}, Topics: []string{},
	}
}
