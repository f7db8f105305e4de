package domain

import "time"

// IndexEntry is one package row in the search index
type IndexEntry struct {
	Name        string
	Path        string
	Owner       string
	Repo        string
	URL         string
	Description string
	Topics      []string
	Languages   []string
	Stars       int
}

// IndexEntryFromRecord flattens a record into its searchable fields
func IndexEntryFromRecord(rec PackageRecord) IndexEntry {
	return IndexEntry{
		Name:        rec.Name,
		Path:        rec.Path,
		Owner:       rec.Owner,
		Repo:        rec.Repo,
		URL:         rec.URL,
		Description: rec.Description,
		Topics:      rec.Topics,
		Languages:   rec.Languages,
		Stars:       rec.Stars,
	}
}

// SyncStats holds statistics from an index sync
type SyncStats struct {
	Added    int
	Updated  int
	Deleted  int
	Scanned  int
	Full     bool
	Duration time.Duration
}
