package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"gitget/internal/domain"
	"gitget/internal/logging"
	"gitget/internal/ports"
	"gitget/internal/version"
)

// Migration upgrades the package mapping of a manifest stored at a version
// below From.
type Migration struct {
	From  string
	Name  string
	Apply func(ctx context.Context, entries map[string]domain.Entry) (map[string]domain.Entry, error)
}

// DefaultMigrations returns the registry shipped with this binary
func DefaultMigrations(builder ports.RecordBuilder) []Migration {
	return []Migration{
		{
			From:  "4.0.0",
			Name:  "build records for bare paths",
			Apply: buildBareEntries(builder),
		},
	}
}

// pending returns the migrations that apply to a manifest at stored, in
// ascending From order.
func pending(migrations []Migration, stored string) []Migration {
	var out []Migration
	for _, m := range migrations {
		if version.Compare(m.From, stored) > 0 {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b Migration) int {
		return version.Compare(a.From, b.From)
	})
	return out
}

// buildBareEntries turns every name -> path entry into a full record built
// from the clone's remote. Clones that are gone or have no remote keep a
// path-only record; metadata fetch failures abort the migration.
func buildBareEntries(builder ports.RecordBuilder) func(context.Context, map[string]domain.Entry) (map[string]domain.Entry, error) {
	return func(ctx context.Context, entries map[string]domain.Entry) (map[string]domain.Entry, error) {
		logger := logging.FromContext(ctx)
		out := make(map[string]domain.Entry, len(entries))

		for _, name := range sortedKeys(entries) {
			entry := entries[name]
			if !entry.IsBare() {
				out[name] = entry
				continue
			}

			if info, err := os.Stat(entry.Path); err != nil || !info.IsDir() {
				logger.Warn("package directory missing, keeping path only", "name", name, "path", entry.Path)
				out[name] = pathOnly(name, entry.Path)
				continue
			}

			logger.Info("fetching metadata for legacy entry", "name", name, "path", entry.Path)
			rec, err := builder.BuildFromPath(ctx, name, entry.Path)
			if err != nil {
				if errors.Is(err, domain.ErrMetadataFetchFailed) {
					return nil, fmt.Errorf("failed to upgrade %s: %w", name, err)
				}
				logger.Warn("could not build record, keeping path only", "name", name, "error", err)
				out[name] = pathOnly(name, entry.Path)
				continue
			}
			logger.Info("upgraded package entry", "name", name)
			out[name] = domain.Entry{Path: rec.Path, Record: &rec}
		}
		return out, nil
	}
}

func pathOnly(name, path string) domain.Entry {
	rec := domain.PackageRecord{Name: name, Path: path, Languages: []string{}, Topics: []string{}}
	return domain.Entry{Path: path, Record: &rec}
}

func sortedKeys(entries map[string]domain.Entry) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
