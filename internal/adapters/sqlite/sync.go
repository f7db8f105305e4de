package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"gitget/internal/domain"
)

// SyncFull replaces every row with the given records
func (idx *Index) SyncFull(records []domain.PackageRecord, manifestModTime time.Time) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{Full: true}

	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM packages`); err != nil {
		return nil, err
	}
	for _, rec := range records {
		stats.Scanned++
		entry := domain.IndexEntryFromRecord(rec)
		if err := upsert(tx, &entry); err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", rec.Name, err)
		}
		stats.Added++
	}
	if err := idx.writeMeta(tx, manifestModTime); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// SyncIncremental writes only the records whose fingerprint changed and
// drops rows for packages no longer in the manifest. Nothing is read when
// the manifest has not been modified since the last sync.
func (idx *Index) SyncIncremental(records []domain.PackageRecord, manifestModTime time.Time) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	synced, err := idx.meta("manifest_mtime")
	if err != nil {
		return nil, err
	}
	if synced == strconv.FormatInt(manifestModTime.UnixNano(), 10) {
		stats.Duration = time.Since(start)
		return stats, nil
	}

	existing, err := idx.fingerprints()
	if err != nil {
		return nil, err
	}

	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		stats.Scanned++
		seen[rec.Name] = true
		entry := domain.IndexEntryFromRecord(rec)

		old, ok := existing[rec.Name]
		if ok && old == fingerprint(&entry) {
			continue
		}
		if err := upsert(tx, &entry); err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", rec.Name, err)
		}
		if ok {
			stats.Updated++
		} else {
			stats.Added++
		}
	}

	for name := range existing {
		if seen[name] {
			continue
		}
		if _, err := tx.Exec(`DELETE FROM packages WHERE name = ?`, name); err != nil {
			return nil, err
		}
		stats.Deleted++
	}

	if err := idx.writeMeta(tx, manifestModTime); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// fingerprints returns the stored fingerprint of every row
func (idx *Index) fingerprints() (map[string]string, error) {
	rows, err := idx.db.Query(`SELECT name, fingerprint FROM packages`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var name, fp string
		if err := rows.Scan(&name, &fp); err != nil {
			return nil, err
		}
		out[name] = fp
	}
	return out, rows.Err()
}

// writeMeta records the schema, manifest identity and synced mtime
func (idx *Index) writeMeta(tx *sql.Tx, manifestModTime time.Time) error {
	values := map[string]string{
		"schema_version":     schemaVersion,
		"manifest_path_hash": hashManifestPath(idx.manifestPath),
		"manifest_mtime":     strconv.FormatInt(manifestModTime.UnixNano(), 10),
	}
	for key, value := range values {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to update metadata: %w", err)
		}
	}
	return nil
}

// fingerprint hashes the indexed fields of entry
func fingerprint(entry *domain.IndexEntry) string {
	h := sha256.New()
	for _, field := range []string{
		entry.Path, entry.Owner, entry.Repo, entry.URL, entry.Description,
		joinList(entry.Topics), joinList(entry.Languages), strconv.Itoa(entry.Stars),
	} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}
