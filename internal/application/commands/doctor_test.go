package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statuses(checks []CheckResult) map[string]string {
	out := map[string]string{}
	for _, c := range checks {
		out[c.Name] = c.Status
	}
	return out
}

func TestDoctorCommand_Healthy(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitget.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packages: {}\nconfiguration:\n  version: 4.1.0\n"), 0o644))
	dir := repoDir(t, "tool")
	store := newMemStore(record("tool", dir))

	result, err := NewDoctorCommand(store, &fakeGit{}, path).Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Healthy)
	assert.Equal(t, map[string]string{
		"Git": StatusOK, "Manifest": StatusOK, "YAML": StatusOK, "Load": StatusOK,
		"Records": StatusOK, "Paths": StatusOK, "Duplicates": StatusOK,
	}, statuses(result.Checks))
}

func TestDoctorCommand_Problems(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitget.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packages: {}\n"), 0o644))
	dir := repoDir(t, "tool")

	bad := record("bad", "relative/path")
	store := newMemStore(record("tool", dir), record("twin", dir), bad)

	result, err := NewDoctorCommand(store, &fakeGit{missing: true}, path).Execute(context.Background())
	assert.ErrorIs(t, err, ErrUnhealthy)
	assert.False(t, result.Healthy)

	got := statuses(result.Checks)
	assert.Equal(t, StatusError, got["Git"])
	assert.Equal(t, StatusError, got["Records"])
	assert.Equal(t, StatusError, got["Paths"])
	assert.Equal(t, StatusWarn, got["Duplicates"])
}

func TestDoctorCommand_ManifestChecks(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T) string
		failing   string
		notRun    []string
		detailHas string
	}{
		{
			name:      "missing",
			setup:     func(t *testing.T) string { return filepath.Join(t.TempDir(), ".gitget.yaml") },
			failing:   "Manifest",
			notRun:    []string{"YAML", "Load"},
			detailHas: "gitget setup",
		},
		{
			name:      "directory",
			setup:     func(t *testing.T) string { return repoDir(t, ".gitget.yaml") },
			failing:   "Manifest",
			notRun:    []string{"YAML"},
			detailHas: "is a directory",
		},
		{
			name: "invalid yaml",
			setup: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), ".gitget.yaml")
				require.NoError(t, os.WriteFile(p, []byte("packages: [\n"), 0o644))
				return p
			},
			failing: "YAML",
			notRun:  []string{"Load", "Records"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewDoctorCommand(newMemStore(), &fakeGit{}, tt.setup(t)).Execute(context.Background())
			assert.ErrorIs(t, err, ErrUnhealthy)

			got := statuses(result.Checks)
			assert.Equal(t, StatusError, got[tt.failing])
			for _, name := range tt.notRun {
				assert.NotContains(t, got, name)
			}
			if tt.detailHas != "" {
				last := result.Checks[len(result.Checks)-1]
				assert.Contains(t, last.Details, tt.detailHas)
			}
		})
	}
}
