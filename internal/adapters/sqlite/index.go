package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"gitget/internal/config"
	"gitget/internal/domain"
	"gitget/internal/ports"
)

const schemaVersion = "1"

// listSeparator joins topics and languages in a single column
const listSeparator = ","

// Index implements ports.PackageIndex using SQLite
type Index struct {
	db           *sql.DB
	manifestPath string
	dbPath       string
	dataDir      string
}

// Ensure Index implements PackageIndex
var _ ports.PackageIndex = (*Index)(nil)

// Option configures an Index
type Option func(*Index)

// WithDataDir stores the database under dir instead of the XDG data directory
func WithDataDir(dir string) Option {
	return func(idx *Index) { idx.dataDir = dir }
}

// NewIndex creates a new SQLite index
func NewIndex(opts ...Option) *Index {
	idx := &Index{}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Open initializes the index for the manifest at manifestPath
func (idx *Index) Open(manifestPath string) error {
	abs, err := filepath.Abs(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	idx.manifestPath = abs

	dataDir := idx.dataDir
	if dataDir == "" {
		if dataDir, err = config.DataDir(); err != nil {
			return err
		}
	}
	idx.dbPath = filepath.Join(dataDir, hashManifestPath(abs)+".db")

	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", idx.dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS packages (
			name TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			owner TEXT NOT NULL DEFAULT '',
			repo TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			topics TEXT NOT NULL DEFAULT '',
			languages TEXT NOT NULL DEFAULT '',
			stars INTEGER NOT NULL DEFAULT 0,
			fingerprint TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_packages_owner ON packages(owner);
	`)
	if err != nil {
		db.Close()
		idx.db = nil
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		err := idx.db.Close()
		idx.db = nil
		return err
	}
	return nil
}

// Path returns the database file backing the index
func (idx *Index) Path() string {
	return idx.dbPath
}

// NeedsFullRebuild returns true if the index was built by another schema
// or for another manifest, or has never been synced
func (idx *Index) NeedsFullRebuild(manifestModTime time.Time) bool {
	version, _ := idx.meta("schema_version")
	hash, _ := idx.meta("manifest_path_hash")
	synced, _ := idx.meta("manifest_mtime")

	return version != schemaVersion || hash != hashManifestPath(idx.manifestPath) || synced == ""
}

// Search returns packages whose name, owner, repo, description, topics or
// languages contain query, most starred first
func (idx *Index) Search(query string, limit int) ([]domain.IndexEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	rows, err := idx.db.Query(`
		SELECT name, path, owner, repo, url, description, topics, languages, stars
		FROM packages
		WHERE lower(name) LIKE ?1 ESCAPE '\'
			OR lower(owner) LIKE ?1 ESCAPE '\'
			OR lower(repo) LIKE ?1 ESCAPE '\'
			OR lower(description) LIKE ?1 ESCAPE '\'
			OR lower(topics) LIKE ?1 ESCAPE '\'
			OR lower(languages) LIKE ?1 ESCAPE '\'
		ORDER BY stars DESC, name
		LIMIT ?2
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}
	defer rows.Close()

	var entries []domain.IndexEntry
	for rows.Next() {
		var e domain.IndexEntry
		var topics, languages string
		if err := rows.Scan(&e.Name, &e.Path, &e.Owner, &e.Repo, &e.URL, &e.Description, &topics, &languages, &e.Stars); err != nil {
			return nil, err
		}
		e.Topics = splitList(topics)
		e.Languages = splitList(languages)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of indexed packages
func (idx *Index) Count() (int, error) {
	var n int
	err := idx.db.QueryRow(`SELECT COUNT(*) FROM packages`).Scan(&n)
	return n, err
}

// BeginTx starts a new transaction
func (idx *Index) BeginTx() (ports.IndexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}

// hashManifestPath returns a short hash of the manifest path
func hashManifestPath(manifestPath string) string {
	h := sha256.Sum256([]byte(manifestPath))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

func (idx *Index) meta(key string) (string, error) {
	var value string
	err := idx.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func joinList(items []string) string {
	return strings.Join(items, listSeparator)
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, listSeparator)
}
