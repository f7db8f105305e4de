package config

import (
	"os"
	"path/filepath"
)

// ManifestFilename is the name searched for from the working directory up
const ManifestFilename = ".gitget.yaml"

// GitHubToken returns the GitHub API token from GITGET_GITHUB_TOKEN,
// falling back to GITHUB_TOKEN.
func GitHubToken() string {
	return firstEnv("GITGET_GITHUB_TOKEN", "GITHUB_TOKEN")
}

// GitLabToken returns the GitLab API token from GITGET_GITLAB_TOKEN,
// falling back to GITLAB_TOKEN.
func GitLabToken() string {
	return firstEnv("GITGET_GITLAB_TOKEN", "GITLAB_TOKEN")
}

// DataDir returns $XDG_DATA_HOME/gitget, defaulting XDG_DATA_HOME to
// ~/.local/share.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gitget"), nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
