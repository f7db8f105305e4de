package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gitget/internal/domain"
	"gitget/internal/logging"
	"gitget/internal/ports"
	"gitget/internal/version"
)

// Store implements ports.ManifestStore on YAML files
type Store struct {
	schemaVersion string
	migrations    []Migration
	observers     []func(domain.Options)
}

// Ensure Store implements ManifestStore
var _ ports.ManifestStore = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithSchemaVersion overrides the running schema version
func WithSchemaVersion(v string) Option {
	return func(s *Store) { s.schemaVersion = v }
}

// WithMigrations replaces the migration registry
func WithMigrations(m ...Migration) Option {
	return func(s *Store) { s.migrations = m }
}

// WithOptionsObserver registers fn to receive the merged options of every
// load before any migration runs.
func WithOptionsObserver(fn func(domain.Options)) Option {
	return func(s *Store) { s.observers = append(s.observers, fn) }
}

// NewStore creates a Store that upgrades old manifests through the
// default migrations, building records with builder.
func NewStore(builder ports.RecordBuilder, opts ...Option) *Store {
	s := &Store{
		schemaVersion: version.SchemaVersion,
		migrations:    DefaultMigrations(builder),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// document is the on-disk shape of a current-format manifest
type document struct {
	Configuration domain.Configuration    `yaml:"configuration"`
	Packages      map[string]domain.Entry `yaml:"packages"`
}

// Load reads the manifest at path. Older formats are migrated and written
// back before returning.
func (s *Store) Load(ctx context.Context, path string, cliOptions domain.Options) (*domain.Manifest, domain.Options, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, &domain.ManifestError{Path: path, Kind: domain.ErrManifestMissing, Err: err}
		}
		return nil, nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, nil, &domain.ManifestError{Path: path, Kind: domain.ErrManifestIsDirectory}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	m, upgraded, err := s.decode(ctx, data, cliOptions)
	if err != nil {
		var merr *domain.ManifestError
		if errors.As(err, &merr) {
			merr.Path = path
		}
		return nil, nil, err
	}

	if upgraded {
		if err := s.Persist(path, m); err != nil {
			return nil, nil, err
		}
		logging.FromContext(ctx).Info("upgraded package file", "path", path, "version", m.Configuration.Version)
	}

	return m, domain.MergeOptions(cliOptions, m.Configuration.Options), nil
}

// decode parses data into a manifest and reports whether it was migrated
func (s *Store) decode(ctx context.Context, data []byte, cliOptions domain.Options) (*domain.Manifest, bool, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, false, corrupt(err)
	}
	if isEmpty(&root) {
		for _, fn := range s.observers {
			fn(domain.MergeOptions(cliOptions, nil))
		}
		return domain.NewManifest(s.schemaVersion), false, nil
	}

	body := root.Content[0]
	if body.Kind != yaml.MappingNode {
		return nil, false, corrupt(fmt.Errorf("line %d: top level must be a mapping", body.Line))
	}

	var doc document
	if isCurrentFormat(body) {
		if err := body.Decode(&doc); err != nil {
			return nil, false, corrupt(err)
		}
	} else {
		if err := body.Decode(&doc.Packages); err != nil {
			return nil, false, corrupt(err)
		}
		doc.Configuration = domain.DefaultConfiguration(version.Baseline)
		logging.FromContext(ctx).Info("package file has no configuration, treating it as legacy", "entries", len(doc.Packages))
	}

	merged := domain.MergeOptions(cliOptions, doc.Configuration.Options)
	for _, fn := range s.observers {
		fn(merged)
	}

	stored := doc.Configuration.Version
	upgraded := false
	if version.Less(stored, s.schemaVersion) {
		entries := doc.Packages
		for _, m := range pending(s.migrations, stored) {
			logging.FromContext(ctx).Debug("applying migration", "from", m.From, "name", m.Name)
			var err error
			if entries, err = m.Apply(ctx, entries); err != nil {
				return nil, false, fmt.Errorf("migration %q: %w", m.Name, err)
			}
		}
		doc.Packages = entries
		doc.Configuration.Version = s.schemaVersion
		upgraded = true
	} else if version.Compare(stored, s.schemaVersion) > 0 {
		logging.FromContext(ctx).Warn("package file was written by a newer gitget", "version", stored, "running", s.schemaVersion)
	}

	m := &domain.Manifest{
		Configuration: doc.Configuration,
		Packages:      make(map[string]domain.PackageRecord, len(doc.Packages)),
	}
	if m.Configuration.Options == nil {
		m.Configuration.Options = domain.Options{}
	}
	for name, entry := range doc.Packages {
		rec := domain.PackageRecord{Name: name, Path: entry.Path, Languages: []string{}, Topics: []string{}}
		if entry.Record != nil {
			rec = *entry.Record
		}
		m.Packages[name] = rec
	}
	if n := m.RepairNames(); n > 0 {
		logging.FromContext(ctx).Debug("repaired package names", "count", n)
	}
	return m, upgraded, nil
}

// Persist writes the manifest as block-style YAML with two-space indent
func (s *Store) Persist(path string, m *domain.Manifest) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode package file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode package file: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write package file: %w", err)
	}
	return nil
}

// Create writes an empty manifest at path
func (s *Store) Create(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return &domain.ManifestError{Path: path, Kind: domain.ErrManifestIsDirectory}
	case err == nil:
		return fmt.Errorf("package file %s already exists", path)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return s.Persist(path, domain.NewManifest(s.schemaVersion))
}

func corrupt(err error) error {
	return &domain.ManifestError{Kind: domain.ErrManifestCorrupt, Err: err}
}

func isEmpty(root *yaml.Node) bool {
	if root.Kind == 0 || len(root.Content) == 0 {
		return true
	}
	body := root.Content[0]
	return body.Kind == yaml.ScalarNode && body.ShortTag() == "!!null"
}

// isCurrentFormat reports whether the mapping has a packages key and a
// configuration mapping carrying a version.
func isCurrentFormat(body *yaml.Node) bool {
	var hasPackages, hasVersion bool
	for i := 0; i+1 < len(body.Content); i += 2 {
		key, val := body.Content[i], body.Content[i+1]
		switch key.Value {
		case "packages":
			hasPackages = true
		case "configuration":
			if val.Kind != yaml.MappingNode {
				continue
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				if val.Content[j].Value == "version" {
					hasVersion = true
				}
			}
		}
	}
	return hasPackages && hasVersion
}
