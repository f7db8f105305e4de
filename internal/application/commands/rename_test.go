package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitget/internal/domain"
)

func TestRenameCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		newName string
		wantErr bool
		errMsg  string
	}{
		{name: "valid", old: "a", newName: "b"},
		{name: "empty name", old: "", newName: "b", wantErr: true, errMsg: "name is required"},
		{name: "empty new name", old: "a", newName: " ", wantErr: true, errMsg: "new name is required"},
		{name: "new name with slash", old: "a", newName: "x/y", wantErr: true, errMsg: "invalid package name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRenameCommand(nil, tt.old, tt.newName).Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRenameCommand_Execute(t *testing.T) {
	dir := repoDir(t, "tool")
	store := newMemStore(record("tool", dir))

	result, err := NewRenameCommand(newWorkspace(store, nil), "tool", "renamed").Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tool", result.OldName)
	assert.Equal(t, "renamed", result.NewName)
	rec, ok := store.m.Get("renamed")
	require.True(t, ok)
	assert.Equal(t, "renamed", rec.Name)
	assert.Equal(t, dir, rec.Path)
	_, ok = store.m.Get("tool")
	assert.False(t, ok)
	assert.DirExists(t, dir)
}

func TestRenameCommand_CollisionLeavesManifestUntouched(t *testing.T) {
	a, b := repoDir(t, "a"), repoDir(t, "b")
	store := newMemStore(record("a", a), record("b", b))
	before := cloneManifest(store.m)

	_, err := NewRenameCommand(newWorkspace(store, domain.Options{domain.OptMoveFiles: true}), "a", "b").Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackageNameCollision)

	assert.Equal(t, 0, store.persists)
	if diff := cmp.Diff(before, store.m); diff != "" {
		t.Errorf("manifest changed (-before +after):\n%s", diff)
	}
	assert.DirExists(t, a)
}

func TestRenameCommand_MoveFiles(t *testing.T) {
	dir := repoDir(t, "tool")
	store := newMemStore(record("tool", dir))

	result, err := NewRenameCommand(newWorkspace(store, domain.Options{domain.OptMoveFiles: true}), "tool", "tool2").Execute(context.Background())
	require.NoError(t, err)

	want := filepath.Join(filepath.Dir(dir), "tool2")
	assert.Equal(t, want, result.Path)
	assert.DirExists(t, want)
	assert.NoDirExists(t, dir)
	rec, _ := store.m.Get("tool2")
	assert.Equal(t, want, rec.Path)
}

func TestRenameCommand_MoveFilesDestinationExists(t *testing.T) {
	dir := repoDir(t, "tool")
	taken := filepath.Join(filepath.Dir(dir), "tool2")
	require.NoError(t, os.Mkdir(taken, 0o755))
	store := newMemStore(record("tool", dir))

	_, err := NewRenameCommand(newWorkspace(store, domain.Options{domain.OptMoveFiles: true}), "tool", "tool2").Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrPathCollision)
	assert.Equal(t, 0, store.persists)
	assert.DirExists(t, dir)
}
