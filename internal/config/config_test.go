package config

import (
	"path/filepath"
	"testing"
)

func TestGitHubToken(t *testing.T) {
	tests := []struct {
		name     string
		specific string
		generic  string
		want     string
	}{
		{"specific wins", "a", "b", "a"},
		{"generic fallback", "", "b", "b"},
		{"none", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITGET_GITHUB_TOKEN", tt.specific)
			t.Setenv("GITHUB_TOKEN", tt.generic)
			if got := GitHubToken(); got != tt.want {
				t.Errorf("GitHubToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGitLabToken(t *testing.T) {
	t.Setenv("GITGET_GITLAB_TOKEN", "")
	t.Setenv("GITLAB_TOKEN", "glpat")
	if got := GitLabToken(); got != "glpat" {
		t.Errorf("GitLabToken() = %q, want %q", got, "glpat")
	}
}

func TestDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir() error: %v", err)
	}
	if want := filepath.Join(dir, "gitget"); got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
}
