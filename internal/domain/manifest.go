package domain

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the persisted document: configuration plus tracked packages
type Manifest struct {
	Configuration Configuration            `yaml:"configuration"`
	Packages      map[string]PackageRecord `yaml:"packages"`
}

// NewManifest returns an empty manifest at the given schema version
func NewManifest(version string) *Manifest {
	return &Manifest{
		Configuration: DefaultConfiguration(version),
		Packages:      map[string]PackageRecord{},
	}
}

// Get returns the record stored under name
func (m *Manifest) Get(name string) (PackageRecord, bool) {
	rec, ok := m.Packages[name]
	return rec, ok
}

// Lookup finds a package by name, falling back to its path
func (m *Manifest) Lookup(nameOrPath string) (PackageRecord, error) {
	if rec, ok := m.Packages[nameOrPath]; ok {
		return rec, nil
	}
	if abs, err := filepath.Abs(nameOrPath); err == nil {
		if name, ok := m.NameForPath(abs); ok {
			return m.Packages[name], nil
		}
	}
	return PackageRecord{}, fmt.Errorf("%w: %s", ErrPackageNotFound, nameOrPath)
}

// NameForPath returns the name of the package tracked at path
func (m *Manifest) NameForPath(path string) (string, bool) {
	clean := filepath.Clean(path)
	for _, name := range SortedNames(m.Packages) {
		if filepath.Clean(m.Packages[name].Path) == clean {
			return name, true
		}
	}
	return "", false
}

// Put stores rec under its own name
func (m *Manifest) Put(rec PackageRecord) {
	if m.Packages == nil {
		m.Packages = map[string]PackageRecord{}
	}
	m.Packages[rec.Name] = rec
}

// Delete drops the package stored under name
func (m *Manifest) Delete(name string) {
	delete(m.Packages, name)
}

// Records returns all records ordered by name
func (m *Manifest) Records() []PackageRecord {
	names := SortedNames(m.Packages)
	out := make([]PackageRecord, 0, len(names))
	for _, n := range names {
		out = append(out, m.Packages[n])
	}
	return out
}

// RepairNames makes every record's name equal its map key
func (m *Manifest) RepairNames() int {
	repaired := 0
	for key, rec := range m.Packages {
		if rec.Name != key {
			rec.Name = key
			m.Packages[key] = rec
			repaired++
		}
	}
	return repaired
}

// DuplicatePaths maps each path tracked more than once to the names using it
func (m *Manifest) DuplicatePaths() map[string][]string {
	byPath := map[string][]string{}
	for _, name := range SortedNames(m.Packages) {
		p := filepath.Clean(m.Packages[name].Path)
		byPath[p] = append(byPath[p], name)
	}
	for p, names := range byPath {
		if len(names) < 2 {
			delete(byPath, p)
		}
	}
	return byPath
}

// Entry is one value of a package mapping as older manifests stored it:
// either a bare path or a (possibly partial) record.
type Entry struct {
	Path   string
	Record *PackageRecord
}

// IsBare reports whether the entry still needs to be built into a record.
// A mapping carrying only a path counts as bare.
func (e Entry) IsBare() bool {
	if e.Record == nil {
		return true
	}
	return e.Record.Owner == "" && e.Record.Repo == "" && e.Record.URL == ""
}

func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		e.Path = node.Value
		return nil
	case yaml.MappingNode:
		var rec PackageRecord
		if err := node.Decode(&rec); err != nil {
			return err
		}
		if rec.Languages == nil {
			rec.Languages = []string{}
		}
		rec.Topics = UniqueTopics(rec.Topics)
		e.Path = rec.Path
		e.Record = &rec
		return nil
	}
	return fmt.Errorf("line %d: package entry must be a path or a mapping", node.Line)
}

func (e Entry) MarshalYAML() (any, error) {
	if e.Record != nil {
		return e.Record, nil
	}
	return e.Path, nil
}
