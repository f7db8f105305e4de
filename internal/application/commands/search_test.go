package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitget/internal/application"
	"gitget/internal/domain"
	"gitget/internal/ports"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "Theatre",
			query:     "Theatre",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "Theatre Season",
			query:     "Theatre",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "substring match",
			target:    "My Theatre",
			query:     "Theatre",
			wantScore: 100, // contains only
		},
		{
			name:    "fuzzy match all chars at start",
			target:  "Theatre",
			query:   "the",
			wantMin: 100, // should be high due to prefix
		},
		{
			name:      "no match",
			target:    "Theatre",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "Theatre",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "THEATRE",
			query:   "theatre",
			wantMin: 100,
		},
		{
			name:    "owner_repo match",
			target:  "spf13_cobra",
			query:   "cobra",
			wantMin: 100,
		},
		{
			name:    "fuzzy after separator",
			target:  "charmbracelet_bubble-tea",
			query:   "cbt",
			wantMin: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzyScore_Ordering(t *testing.T) {
	// Test that better matches score higher
	query := "theatre"

	exactScore := FuzzyScore("theatre", query)         // exact + prefix = 150
	prefixScore := FuzzyScore("theatre season", query) // contains + prefix = 150
	containsScore := FuzzyScore("my theatre", query)   // contains only = 100
	fuzzyScore := FuzzyScore("t.h.e.a.t.r.e", query)   // fuzzy match only

	if exactScore < prefixScore {
		t.Errorf("exact match should score >= prefix: %d < %d", exactScore, prefixScore)
	}
	if prefixScore < containsScore {
		t.Errorf("prefix match should score >= contains: %d < %d", prefixScore, containsScore)
	}
	if containsScore <= fuzzyScore {
		t.Errorf("contains match should score higher than fuzzy: %d <= %d", containsScore, fuzzyScore)
	}
}

func TestFuzzySort(t *testing.T) {
	entries := []domain.IndexEntry{
		{Name: "random", Description: "nothing"},
		{Name: "theatre-season", Description: "theatre"},
		{Name: "cooking", Description: "recipes"},
		{Name: "my-theatre", Description: "old theatre"},
		{Name: "stage", Topics: []string{"theatre"}},
	}

	sorted := FuzzySort(entries, "theatre")

	var names []string
	for _, r := range sorted {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"theatre-season", "my-theatre", "stage"}, names)

	// Verify results are sorted by score descending
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Score > sorted[i-1].Score {
			t.Errorf("results not sorted by score: %d > %d at index %d",
				sorted[i].Score, sorted[i-1].Score, i)
		}
	}
}

func TestFuzzySort_StarsBreakTies(t *testing.T) {
	entries := []domain.IndexEntry{
		{Name: "a-cli", Stars: 3},
		{Name: "b-cli", Stars: 30},
	}
	sorted := FuzzySort(entries, "cli")
	require.Len(t, sorted, 2)
	assert.Equal(t, "b-cli", sorted[0].Name)
}

// memIndex is an in-memory ports.PackageIndex
type memIndex struct {
	entries   map[string]domain.IndexEntry
	synced    time.Time
	fullSyncs int
	incSyncs  int
}

func (x *memIndex) Open(string) error { return nil }
func (x *memIndex) Close() error      { return nil }

func (x *memIndex) NeedsFullRebuild(time.Time) bool { return x.synced.IsZero() }

func (x *memIndex) SyncFull(records []domain.PackageRecord, mtime time.Time) (*domain.SyncStats, error) {
	x.fullSyncs++
	x.entries = map[string]domain.IndexEntry{}
	for _, rec := range records {
		x.entries[rec.Name] = domain.IndexEntryFromRecord(rec)
	}
	x.synced = mtime
	return &domain.SyncStats{Full: true, Added: len(records)}, nil
}

func (x *memIndex) SyncIncremental(records []domain.PackageRecord, mtime time.Time) (*domain.SyncStats, error) {
	x.incSyncs++
	return x.SyncFull(records, mtime)
}

func (x *memIndex) Search(query string, limit int) ([]domain.IndexEntry, error) {
	var out []domain.IndexEntry
	for _, name := range domain.SortedNames(x.entries) {
		e := x.entries[name]
		if strings.Contains(strings.ToLower(e.Name+" "+e.Description), strings.ToLower(query)) {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (x *memIndex) Count() (int, error)             { return len(x.entries), nil }
func (x *memIndex) BeginTx() (ports.IndexTx, error) { return nil, nil }

func TestSearchCommand_Execute(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), ".gitget.yaml")
	require.NoError(t, os.WriteFile(manifest, nil, 0o644))

	tool := record("tool", "/src/tool")
	tool.Description = "a command line tool"
	store := newMemStore(tool, record("toolkit", "/src/toolkit"), record("other", "/src/other"))
	ws := application.NewWorkspace(store, manifest, nil)
	index := &memIndex{}

	results, err := NewSearchCommand(ws, index, "tool").Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "tool", results[0].Name)
	assert.Equal(t, "toolkit", results[1].Name)
	assert.Equal(t, 1, index.fullSyncs)

	_, err = NewSearchCommand(ws, index, "kit").Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, index.incSyncs)
}

func TestSearchCommand_ShortQuery(t *testing.T) {
	index := &memIndex{}
	results, err := NewSearchCommand(nil, index, "t").Execute(context.Background())
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Equal(t, 0, index.fullSyncs)
}
