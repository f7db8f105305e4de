package sqlite

import (
	"database/sql"

	"gitget/internal/domain"
	"gitget/internal/ports"
)

// indexTx implements ports.IndexTx
type indexTx struct {
	tx *sql.Tx
}

// Ensure indexTx implements IndexTx
var _ ports.IndexTx = (*indexTx)(nil)

// UpsertEntry inserts or replaces a package row
func (t *indexTx) UpsertEntry(entry *domain.IndexEntry) error {
	return upsert(t.tx, entry)
}

// DeleteEntry removes a package by name
func (t *indexTx) DeleteEntry(name string) error {
	_, err := t.tx.Exec(`DELETE FROM packages WHERE name = ?`, name)
	return err
}

// RenameEntry updates a package's name
func (t *indexTx) RenameEntry(oldName, newName string) error {
	_, err := t.tx.Exec(`UPDATE packages SET name = ? WHERE name = ?`, newName, oldName)
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}

// upsert writes entry with its fingerprint through tx
func upsert(tx *sql.Tx, entry *domain.IndexEntry) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO packages (name, path, owner, repo, url, description, topics, languages, stars, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.Name, entry.Path, entry.Owner, entry.Repo, entry.URL, entry.Description,
		joinList(entry.Topics), joinList(entry.Languages), entry.Stars, fingerprint(entry))
	return err
}
