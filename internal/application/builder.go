package application

import (
	"context"
	"errors"
	"fmt"

	"gitget/internal/domain"
	"gitget/internal/logging"
	"gitget/internal/ports"
)

// Builder turns a URL or a local clone into a PackageRecord, asking the
// first provider that supports the URL's host for metadata.
type Builder struct {
	git       ports.GitClient
	providers []ports.MetadataProvider
}

// Ensure Builder implements RecordBuilder
var _ ports.RecordBuilder = (*Builder)(nil)

// NewBuilder creates a Builder. Providers are tried in order.
func NewBuilder(git ports.GitClient, providers ...ports.MetadataProvider) *Builder {
	return &Builder{git: git, providers: providers}
}

// BuildFromPath reads the clone's remote URL and builds from it
func (b *Builder) BuildFromPath(ctx context.Context, name, path string) (domain.PackageRecord, error) {
	url, err := b.git.RemoteURL(ctx, path)
	if err != nil {
		return domain.PackageRecord{}, fmt.Errorf("failed to read remote of %s: %w", path, err)
	}
	return b.BuildFromURL(ctx, url, name, path)
}

// BuildFromURL parses url and fetches its metadata. A fetch failure
// produces no record.
func (b *Builder) BuildFromURL(ctx context.Context, url, name, path string) (domain.PackageRecord, error) {
	ref, err := domain.ParseRepoRef(url)
	if err != nil {
		return domain.PackageRecord{}, err
	}
	rec := domain.NewRecord(name, path, ref)

	provider := b.providerFor(ref.Host)
	if provider == nil {
		logging.FromContext(ctx).Warn("no metadata provider for host, storing minimal record",
			"host", ref.Host, "name", name)
		return rec, nil
	}

	md, limit, err := provider.FetchMetadata(ctx, ref)
	if limit != nil {
		logging.FromContext(ctx).Debug(limit.String())
	}
	if err != nil {
		if errors.Is(err, domain.ErrMetadataFetchFailed) {
			return domain.PackageRecord{}, err
		}
		return domain.PackageRecord{}, &domain.MetadataError{Provider: provider.Name(), URL: url, Err: err}
	}
	return rec.WithMetadata(*md), nil
}

func (b *Builder) providerFor(host string) ports.MetadataProvider {
	for _, p := range b.providers {
		if p.Supports(host) {
			return p
		}
	}
	return nil
}
