package manifest

import (
	"os"
	"path/filepath"

	"gitget/internal/config"
)

// Locate walks from startDir up to the filesystem root looking for a
// regular file named .gitget.yaml. The first hit wins; without one the
// manifest in homeDir is used.
func Locate(startDir, homeDir string) string {
	dir := filepath.Clean(startDir)
	for {
		candidate := filepath.Join(dir, config.ManifestFilename)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return filepath.Join(homeDir, config.ManifestFilename)
}
