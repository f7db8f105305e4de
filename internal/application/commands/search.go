package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"gitget/internal/application"
	"gitget/internal/domain"
	"gitget/internal/logging"
	"gitget/internal/ports"
)

// DefaultSearchLimit caps the rows read from the index
const DefaultSearchLimit = 50

// SearchResult wraps domain.IndexEntry with a relevance score
type SearchResult struct {
	domain.IndexEntry
	Score int
}

// SearchCommand searches the package index with fuzzy ranking
type SearchCommand struct {
	ws    *application.Workspace
	index ports.PackageIndex
	Query string
	Limit int
}

// NewSearchCommand creates a new SearchCommand. index must be open.
func NewSearchCommand(ws *application.Workspace, index ports.PackageIndex, query string) *SearchCommand {
	return &SearchCommand{
		ws:    ws,
		index: index,
		Query: query,
		Limit: DefaultSearchLimit,
	}
}

// Execute syncs the index with the manifest and returns scored, sorted
// results. Queries shorter than two characters return nothing.
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(strings.TrimSpace(c.Query)) < 2 {
		return nil, nil
	}

	if err := SyncIndex(ctx, c.ws, c.index); err != nil {
		return nil, err
	}

	entries, err := c.index.Search(strings.TrimSpace(c.Query), c.Limit)
	if err != nil {
		return nil, err
	}

	return FuzzySort(entries, c.Query), nil
}

// SyncIndex brings index up to date with the workspace manifest, rebuilding
// it when it was built by another schema or never synced
func SyncIndex(ctx context.Context, ws *application.Workspace, index ports.PackageIndex) error {
	m, _, err := ws.Load(ctx)
	if err != nil {
		return err
	}
	info, err := os.Stat(ws.Path)
	if err != nil {
		return fmt.Errorf("failed to stat manifest: %w", err)
	}

	var stats *domain.SyncStats
	if index.NeedsFullRebuild(info.ModTime()) {
		stats, err = index.SyncFull(m.Records(), info.ModTime())
	} else {
		stats, err = index.SyncIncremental(m.Records(), info.ModTime())
	}
	if err != nil {
		return fmt.Errorf("failed to sync index: %w", err)
	}

	logging.FromContext(ctx).Debug("index synced",
		"full", stats.Full, "added", stats.Added, "updated", stats.Updated,
		"deleted", stats.Deleted, "duration", stats.Duration)
	return nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '_' || target[i-1] == '-' || target[i-1] == '/') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort ranks index entries by their best field score. The name counts
// in full, owner and description at a discount; topics and languages only
// keep an entry in the results.
func FuzzySort(entries []domain.IndexEntry, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(entries))

	for _, e := range entries {
		best := max(
			FuzzyScore(e.Name, query),
			FuzzyScore(e.Owner, query)*3/4,
			FuzzyScore(e.Description, query)/2,
		)
		for _, tag := range append(append([]string{}, e.Topics...), e.Languages...) {
			best = max(best, FuzzyScore(tag, query)/2)
		}

		if best > 0 {
			scored = append(scored, SearchResult{
				IndexEntry: e,
				Score:      best,
			})
		}
	}

	// Sort by score descending, stars breaking ties
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Stars > scored[j].Stars
	})

	return scored
}
