package ports

import (
	"time"

	"gitget/internal/domain"
)

// PackageIndex is a searchable cache of the manifest's packages
type PackageIndex interface {
	// Lifecycle
	Open(manifestPath string) error
	Close() error

	// Sync operations
	NeedsFullRebuild(manifestModTime time.Time) bool
	SyncFull(records []domain.PackageRecord, manifestModTime time.Time) (*domain.SyncStats, error)
	SyncIncremental(records []domain.PackageRecord, manifestModTime time.Time) (*domain.SyncStats, error)

	// Queries
	Search(query string, limit int) ([]domain.IndexEntry, error)
	Count() (int, error)

	// Batch updates
	BeginTx() (IndexTx, error)
}

// IndexTx groups index writes into one transaction
type IndexTx interface {
	UpsertEntry(entry *domain.IndexEntry) error
	DeleteEntry(name string) error
	RenameEntry(oldName, newName string) error

	Commit() error
	Rollback() error
}
