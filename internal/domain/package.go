package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PackageRecord is the full metadata snapshot for one tracked repository
type PackageRecord struct {
	Name         string     `yaml:"name" validate:"required"`
	Path         string     `yaml:"path" validate:"required"`
	Owner        string     `yaml:"owner"`
	Repo         string     `yaml:"repo"`
	URL          string     `yaml:"url"`
	Description  string     `yaml:"description"`
	Homepage     string     `yaml:"homepage"`
	Languages    []string   `yaml:"languages"`
	SizeKB       int        `yaml:"size_kb" validate:"gte=0"`
	Stars        int        `yaml:"stars" validate:"gte=0"`
	Watchers     int        `yaml:"watchers" validate:"gte=0"`
	Forks        int        `yaml:"forks" validate:"gte=0"`
	Topics       []string   `yaml:"topics"`
	License      *License   `yaml:"license"`
	CreatedAt    *Timestamp `yaml:"created_at"`
	UpdatedAt    *Timestamp `yaml:"updated_at"`
	LastCommitAt *Timestamp `yaml:"last_commit_at"`
}

// License identifies the license of a repository
type License struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
	URL  string `yaml:"url"`
}

// Metadata is what a hosting provider knows about a repository. It is
// merged into a PackageRecord by the record builder.
type Metadata struct {
	Description  string
	Homepage     string
	Languages    []string
	SizeKB       int
	Stars        int
	Watchers     int
	Forks        int
	Topics       []string
	License      *License
	CreatedAt    *Timestamp
	UpdatedAt    *Timestamp
	LastCommitAt *Timestamp
}

// RateLimit is a snapshot of an API quota taken from a provider response
type RateLimit struct {
	Resource  string
	Limit     int
	Remaining int
	Used      int
	Reset     time.Time
}

func (r RateLimit) String() string {
	if r.Limit == 0 && r.Remaining == 0 {
		return r.Resource + " rate limit: unknown"
	}
	reset := "unknown"
	if !r.Reset.IsZero() {
		reset = r.Reset.Format("Monday, 02. January 2006 03:04PM MST")
	}
	return fmt.Sprintf("%s rate limit: %d/%d, %d remaining (reset: %s)",
		r.Resource, r.Used, r.Limit, r.Remaining, reset)
}

// NewRecord returns a record carrying only identity fields
func NewRecord(name, path string, ref RepoRef) PackageRecord {
	return PackageRecord{
		Name:      name,
		Path:      path,
		Owner:     ref.Owner,
		Repo:      ref.Repo,
		URL:       ref.URL,
		Languages: []string{},
		Topics:    []string{},
	}
}

// WithMetadata returns a copy of r with all metadata fields replaced by md
func (r PackageRecord) WithMetadata(md Metadata) PackageRecord {
	r.Description = md.Description
	r.Homepage = md.Homepage
	r.Languages = nonNil(md.Languages)
	r.SizeKB = md.SizeKB
	r.Stars = md.Stars
	r.Watchers = md.Watchers
	r.Forks = md.Forks
	r.Topics = UniqueTopics(md.Topics)
	r.License = md.License
	r.CreatedAt = md.CreatedAt
	r.UpdatedAt = md.UpdatedAt
	r.LastCommitAt = md.LastCommitAt
	return r
}

// UniqueTopics de-duplicates topics while keeping their first-seen order
func UniqueTopics(topics []string) []string {
	out := make([]string, 0, len(topics))
	seen := make(map[string]bool, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// SortedNames returns the keys of m in ascending order
func SortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Timestamp is a point in time stored as an RFC 3339 string. It also reads
// the space separated form older manifests were written with.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns a pointer to t in UTC, or nil for the zero time
func NewTimestamp(t time.Time) *Timestamp {
	if t.IsZero() {
		return nil
	}
	return &Timestamp{Time: t.UTC()}
}

// Equal reports whether both timestamps denote the same instant
func (t Timestamp) Equal(o Timestamp) bool {
	return t.Time.Equal(o.Time)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses any of the layouts a manifest may contain
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) MarshalYAML() (any, error) {
	return t.UTC().Format(time.RFC3339Nano), nil
}

func (t *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: timestamp must be a scalar", node.Line)
	}
	parsed, err := ParseTimestamp(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*t = parsed
	return nil
}
