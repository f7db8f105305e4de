package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleManifest() *Manifest {
	m := NewManifest("4.1.0")
	m.Put(PackageRecord{Name: "alpha", Path: "/src/alpha"})
	m.Put(PackageRecord{Name: "beta", Path: "/src/beta"})
	return m
}

func TestManifestLookup(t *testing.T) {
	m := sampleManifest()

	rec, err := m.Lookup("alpha")
	require.NoError(t, err)
	assert.Equal(t, "/src/alpha", rec.Path)

	rec, err = m.Lookup("/src/beta/")
	require.NoError(t, err)
	assert.Equal(t, "beta", rec.Name)

	_, err = m.Lookup("gamma")
	assert.True(t, errors.Is(err, ErrPackageNotFound))
}

func TestManifestRepairNames(t *testing.T) {
	m := NewManifest("4.1.0")
	m.Packages["alpha"] = PackageRecord{Path: "/src/alpha"}
	m.Packages["beta"] = PackageRecord{Name: "wrong", Path: "/src/beta"}
	m.Packages["gamma"] = PackageRecord{Name: "gamma", Path: "/src/gamma"}

	assert.Equal(t, 2, m.RepairNames())
	for key, rec := range m.Packages {
		assert.Equal(t, key, rec.Name)
	}
}

func TestManifestDuplicatePaths(t *testing.T) {
	m := sampleManifest()
	assert.Empty(t, m.DuplicatePaths())

	m.Put(PackageRecord{Name: "alpha2", Path: "/src/alpha/"})
	assert.Equal(t, map[string][]string{"/src/alpha": {"alpha", "alpha2"}}, m.DuplicatePaths())
}

func TestManifestRecordsSorted(t *testing.T) {
	m := sampleManifest()
	m.Put(PackageRecord{Name: "aardvark", Path: "/src/aardvark"})

	var names []string
	for _, r := range m.Records() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"aardvark", "alpha", "beta"}, names)
}

func TestEntryUnmarshal(t *testing.T) {
	doc := `
bare: /src/bare
pathonly:
  path: /src/pathonly
full:
  name: full
  path: /src/full
  owner: o
  repo: full
  topics: [a, a, b]
`
	var entries map[string]Entry
	require.NoError(t, yaml.Unmarshal([]byte(doc), &entries))

	assert.True(t, entries["bare"].IsBare())
	assert.Equal(t, "/src/bare", entries["bare"].Path)

	assert.True(t, entries["pathonly"].IsBare())
	assert.Equal(t, "/src/pathonly", entries["pathonly"].Path)

	full := entries["full"]
	assert.False(t, full.IsBare())
	assert.Equal(t, []string{"a", "b"}, full.Record.Topics)
	assert.Equal(t, []string{}, full.Record.Languages)

	var bad map[string]Entry
	assert.Error(t, yaml.Unmarshal([]byte("x: [1, 2]\n"), &bad))
}
