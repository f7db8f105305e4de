package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitget/internal/adapters/manifest"
	"gitget/internal/adapters/sqlite"
	"gitget/internal/application"
	"gitget/internal/domain"
	"gitget/internal/ports"
)

const fixture = `configuration:
  version: 4.1.0
  editor: nvim
  options:
    --git-args: --depth 1
packages:
  cobra:
    name: cobra
    path: /src/cobra
    owner: spf13
    repo: cobra
    url: https://github.com/spf13/cobra
    description: A Commander for modern Go CLI interactions
    languages: [Go]
    topics: [cli, go]
    stars: 38000
  ripgrep:
    name: ripgrep
    path: /src/ripgrep
    owner: BurntSushi
    repo: ripgrep
    url: https://github.com/BurntSushi/ripgrep
    description: recursively searches directories for a regex pattern
    languages: [Rust]
    topics: [search]
    stars: 47000
`

func setup(t *testing.T) (*application.Workspace, *sqlite.Index) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".gitget.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	ws := application.NewWorkspace(manifest.NewStore(nil), path, nil)
	index := sqlite.NewIndex(sqlite.WithDataDir(t.TempDir()))
	require.NoError(t, index.Open(path))
	t.Cleanup(func() { index.Close() })
	return ws, index
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return tc.Text
}

func TestPing(t *testing.T) {
	res, err := pingHandler(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Equal(t, "pong", text(t, res))
}

func TestNewServer(t *testing.T) {
	ws, index := setup(t)
	assert.NotNil(t, NewServer(ws, index, "test"))
}

func TestListPackages(t *testing.T) {
	ws, _ := setup(t)
	handler := listPackagesHandler(ws)

	tests := []struct {
		name     string
		args     map[string]any
		contains []string
		excludes []string
	}{
		{name: "all", contains: []string{"cobra  /src/cobra", "ripgrep  /src/ripgrep"}},
		{name: "by owner", args: map[string]any{"owner": "burntsushi"}, contains: []string{"ripgrep"}, excludes: []string{"cobra"}},
		{name: "by topic", args: map[string]any{"topic": "cli"}, contains: []string{"cobra"}, excludes: []string{"ripgrep"}},
		{name: "no match", args: map[string]any{"topic": "haskell"}, contains: []string{"No results."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := handler(context.Background(), call(tt.args))
			require.NoError(t, err)
			out := text(t, res)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestGetPackage(t *testing.T) {
	ws, _ := setup(t)

	res, err := getPackageHandler(ws)(context.Background(), call(map[string]any{"name": "cobra"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	out := text(t, res)
	assert.Contains(t, out, "owner: spf13")
	assert.Contains(t, out, "stars: 38000")

	res, err = getPackageHandler(ws)(context.Background(), call(map[string]any{"name": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "package not found")
}

func TestSearchPackages(t *testing.T) {
	ws, index := setup(t)
	handler := searchPackagesHandler(ws, index)

	res, err := handler(context.Background(), call(map[string]any{"query": "regex"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "ripgrep")

	res, err = handler(context.Background(), call(map[string]any{"query": "zzzz"}))
	require.NoError(t, err)
	assert.Equal(t, "No results found.", text(t, res))

	res, err = handler(context.Background(), call(map[string]any{"query": "r"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGetConfig(t *testing.T) {
	ws, _ := setup(t)
	handler := getConfigHandler(ws)

	res, err := handler(context.Background(), call(nil))
	require.NoError(t, err)
	out := text(t, res)
	assert.Contains(t, out, "editor: nvim")
	assert.Contains(t, out, "--git-args: --depth 1")
	assert.Contains(t, out, "version: 4.1.0")

	res, err = handler(context.Background(), call(map[string]any{"key": "missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestUntrackPackage(t *testing.T) {
	ws, index := setup(t)
	_, err := searchPackagesHandler(ws, index)(context.Background(), call(map[string]any{"query": "cobra"}))
	require.NoError(t, err)

	res, err := untrackHandler(ws, index)(context.Background(), call(map[string]any{"name": "cobra"}))
	require.NoError(t, err)
	assert.False(t, res.IsError, text(t, res))

	m, _, err := ws.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ripgrep"}, domain.SortedNames(m.Packages))

	n, err := index.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRenamePackage(t *testing.T) {
	ws, index := setup(t)
	_, err := searchPackagesHandler(ws, index)(context.Background(), call(map[string]any{"query": "cobra"}))
	require.NoError(t, err)

	res, err := renameHandler(ws, index)(context.Background(), call(map[string]any{"name": "cobra", "new_name": "spf13_cobra"}))
	require.NoError(t, err)
	assert.False(t, res.IsError, text(t, res))

	m, _, err := ws.Load(context.Background())
	require.NoError(t, err)
	_, ok := m.Get("spf13_cobra")
	assert.True(t, ok)

	entries, err := index.Search("spf13_cobra", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	res, err = renameHandler(ws, index)(context.Background(), call(map[string]any{"name": "ripgrep", "new_name": "spf13_cobra"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "already exists")
}

func TestUpdateIndexNil(t *testing.T) {
	called := false
	err := updateIndex(nil, func(_ ports.IndexTx) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.False(t, called)
}
