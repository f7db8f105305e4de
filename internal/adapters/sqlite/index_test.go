package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitget/internal/domain"
)

func openIndex(t *testing.T, manifestPath string) *Index {
	t.Helper()
	idx := NewIndex(WithDataDir(t.TempDir()))
	require.NoError(t, idx.Open(manifestPath))
	t.Cleanup(func() { idx.Close() })
	return idx
}

func sampleRecords() []domain.PackageRecord {
	return []domain.PackageRecord{
		{
			Name: "cobra", Path: "/src/cobra", Owner: "spf13", Repo: "cobra",
			Description: "A Commander for modern Go CLI interactions",
			Topics:      []string{"cli", "go"}, Languages: []string{"Go"}, Stars: 38000,
		},
		{
			Name: "ripgrep", Path: "/src/ripgrep", Owner: "BurntSushi", Repo: "ripgrep",
			Description: "recursively searches directories for a regex pattern",
			Topics:      []string{"search"}, Languages: []string{"Rust"}, Stars: 47000,
		},
		{
			Name: "dotfiles", Path: "/src/dotfiles", Owner: "me", Repo: "dotfiles",
			Topics: []string{}, Languages: []string{}, Stars: 0,
		},
	}
}

func TestIndex_NeedsFullRebuild(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), ".gitget.yaml")
	idx := openIndex(t, manifest)
	mtime := time.Unix(1700000000, 0)

	assert.True(t, idx.NeedsFullRebuild(mtime), "fresh index")

	_, err := idx.SyncFull(sampleRecords(), mtime)
	require.NoError(t, err)
	assert.False(t, idx.NeedsFullRebuild(mtime))
}

func TestIndex_SyncFullAndSearch(t *testing.T) {
	idx := openIndex(t, filepath.Join(t.TempDir(), ".gitget.yaml"))

	stats, err := idx.SyncFull(sampleRecords(), time.Unix(1, 0))
	require.NoError(t, err)
	assert.True(t, stats.Full)
	assert.Equal(t, 3, stats.Added)

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"by name", "cob", []string{"cobra"}},
		{"by owner case insensitive", "burntsushi", []string{"ripgrep"}},
		{"by description", "regex", []string{"ripgrep"}},
		{"by topic", "cli", []string{"cobra"}},
		{"by language", "rust", []string{"ripgrep"}},
		{"empty query lists all by stars", "", []string{"ripgrep", "cobra", "dotfiles"}},
		{"like wildcards are literal", "%", nil},
		{"no match", "haskell", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := idx.Search(tt.query, 0)
			require.NoError(t, err)
			var got []string
			for _, e := range entries {
				got = append(got, e.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndex_SearchLimitAndLists(t *testing.T) {
	idx := openIndex(t, filepath.Join(t.TempDir(), ".gitget.yaml"))
	_, err := idx.SyncFull(sampleRecords(), time.Unix(1, 0))
	require.NoError(t, err)

	entries, err := idx.Search("", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ripgrep", entries[0].Name)

	entries, err = idx.Search("cobra", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"cli", "go"}, entries[0].Topics)
	assert.Equal(t, []string{"Go"}, entries[0].Languages)

	entries, err = idx.Search("dotfiles", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{}, entries[0].Topics)
}

func TestIndex_SyncIncremental(t *testing.T) {
	idx := openIndex(t, filepath.Join(t.TempDir(), ".gitget.yaml"))
	records := sampleRecords()
	_, err := idx.SyncFull(records, time.Unix(1, 0))
	require.NoError(t, err)

	// unchanged mtime skips the scan
	stats, err := idx.SyncIncremental(records, time.Unix(1, 0))
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStats{Duration: stats.Duration}, *stats)

	// one changed, one removed, one added
	changed := []domain.PackageRecord{records[0], records[1], {
		Name: "fzf", Path: "/src/fzf", Owner: "junegunn", Repo: "fzf",
		Topics: []string{}, Languages: []string{"Go"},
	}}
	changed[1].Description = "line-oriented search tool"

	stats, err = idx.SyncIncremental(changed, time.Unix(2, 0))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Scanned)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 1, stats.Deleted)

	entries, err := idx.Search("line-oriented", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ripgrep", entries[0].Name)

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestIndex_Tx(t *testing.T) {
	idx := openIndex(t, filepath.Join(t.TempDir(), ".gitget.yaml"))
	_, err := idx.SyncFull(sampleRecords(), time.Unix(1, 0))
	require.NoError(t, err)

	tx, err := idx.BeginTx()
	require.NoError(t, err)
	require.NoError(t, tx.RenameEntry("cobra", "spf13_cobra"))
	require.NoError(t, tx.DeleteEntry("dotfiles"))
	require.NoError(t, tx.UpsertEntry(&domain.IndexEntry{Name: "fzf", Path: "/src/fzf"}))
	require.NoError(t, tx.Commit())

	entries, err := idx.Search("", 0)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"ripgrep", "spf13_cobra", "fzf"}, names)

	tx, err = idx.BeginTx()
	require.NoError(t, err)
	require.NoError(t, tx.DeleteEntry("ripgrep"))
	require.NoError(t, tx.Rollback())

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestIndex_DatabasePerManifest(t *testing.T) {
	dataDir := t.TempDir()
	a := NewIndex(WithDataDir(dataDir))
	require.NoError(t, a.Open("/projects/a/.gitget.yaml"))
	defer a.Close()
	b := NewIndex(WithDataDir(dataDir))
	require.NoError(t, b.Open("/projects/b/.gitget.yaml"))
	defer b.Close()

	assert.NotEqual(t, a.Path(), b.Path())
	assert.Equal(t, dataDir, filepath.Dir(a.Path()))
	assert.Len(t, filepath.Base(a.Path()), len("0123456789abcdef.db"))
}

func TestIndex_XDGDataHome(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	idx := NewIndex()
	require.NoError(t, idx.Open(filepath.Join(t.TempDir(), ".gitget.yaml")))
	defer idx.Close()

	assert.Equal(t, filepath.Join(dataHome, "gitget"), filepath.Dir(idx.Path()))
}
