package commands

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitget/internal/domain"
	"gitget/internal/ports"
)

type recordingOpener struct {
	opened []string
}

func (o *recordingOpener) OpenFile(path string) error {
	o.opened = append(o.opened, path)
	return nil
}

func (o *recordingOpener) Command(path string) (*exec.Cmd, error) {
	return exec.Command("true", path), nil
}

func TestEditCommand_UsesConfiguredEditor(t *testing.T) {
	store := newMemStore()
	store.m.Configuration.Editor = "nvim"
	opener := &recordingOpener{}
	var configured string
	factory := func(editor string) ports.EditorOpener {
		configured = editor
		return opener
	}

	result, err := NewEditCommand(newWorkspace(store, nil), factory).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nvim", configured)
	assert.Equal(t, []string{"/work/.gitget.yaml"}, opener.opened)
	assert.Equal(t, "/work/.gitget.yaml", result.Path)
}

func TestEditCommand_CorruptManifestStillOpens(t *testing.T) {
	store := newMemStore()
	store.loadErr = &domain.ManifestError{Path: "/work/.gitget.yaml", Kind: domain.ErrManifestCorrupt}
	opener := &recordingOpener{}
	configured := "unset"
	factory := func(editor string) ports.EditorOpener {
		configured = editor
		return opener
	}

	_, err := NewEditCommand(newWorkspace(store, nil), factory).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", configured)
	assert.Len(t, opener.opened, 1)
}

func TestEditCommand_MissingManifest(t *testing.T) {
	store := newMemStore()
	store.loadErr = &domain.ManifestError{Path: "/work/.gitget.yaml", Kind: domain.ErrManifestMissing}
	opener := &recordingOpener{}

	_, err := NewEditCommand(newWorkspace(store, nil), func(string) ports.EditorOpener { return opener }).Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrManifestMissing)
	assert.Empty(t, opener.opened)
}

func TestSetupCommand(t *testing.T) {
	store := newMemStore()

	result, err := NewSetupCommand(store, "/home/me/.gitget.yaml").Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/home/me/.gitget.yaml"}, store.created)
	assert.Contains(t, result.Message, "/home/me/.gitget.yaml")

	_, err = NewSetupCommand(store, "").Execute(context.Background())
	assert.Error(t, err)
}

func TestShowCommand(t *testing.T) {
	store := newMemStore(record("tool", "/src/tool"))

	result, err := NewShowCommand(newWorkspace(store, nil), "tool").Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/src/tool", result.Record.Path)

	_, err = NewShowCommand(newWorkspace(store, nil), "nope").Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}
