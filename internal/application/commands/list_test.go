package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitget/internal/domain"
)

func TestListCommand_Rows(t *testing.T) {
	rec := record("tool", "/src/tool")
	rec.Description = "does things"
	rec.Topics = []string{"cli", "go"}
	rec.License = &domain.License{Name: "MIT License", Key: "mit"}
	rec.LastCommitAt = domain.NewTimestamp(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	store := newMemStore(rec, record("another", "/src/another"))

	result, err := NewListCommand(newWorkspace(store, nil)).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, FormatTable, result.Format)
	assert.Equal(t, ListHeaders, result.Headers)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "another", result.Rows[0][0])
	assert.Equal(t, []string{
		"tool", "/src/tool", "2024-03-05", "https://github.com/owner/tool",
		"does things", "cli, go", "MIT License",
	}, result.Rows[1])
}

func TestListCommand_Options(t *testing.T) {
	tests := []struct {
		name       string
		cli        domain.Options
		configured domain.Options
		wantFormat string
		wantWidth  int
		wantNoWrap bool
		wantErr    bool
	}{
		{name: "defaults", wantFormat: FormatTable},
		{name: "tsv flag", cli: domain.Options{domain.OptFormat: "TSV"}, wantFormat: FormatTSV},
		{
			name:       "configured defaults",
			configured: domain.Options{domain.OptWidth: 100, domain.OptNoWrap: true},
			wantFormat: FormatTable, wantWidth: 100, wantNoWrap: true,
		},
		{
			name:       "flag beats configured",
			cli:        domain.Options{domain.OptWidth: 80},
			configured: domain.Options{domain.OptWidth: 100},
			wantFormat: FormatTable, wantWidth: 80,
		},
		{name: "unknown format", cli: domain.Options{domain.OptFormat: "xml"}, wantErr: true},
		{name: "negative width", cli: domain.Options{domain.OptWidth: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			if tt.configured != nil {
				store.m.Configuration.Options = tt.configured
			}
			result, err := NewListCommand(newWorkspace(store, tt.cli)).Execute(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, result.Format)
			assert.Equal(t, tt.wantWidth, result.Width)
			assert.Equal(t, tt.wantNoWrap, result.NoWrap)
		})
	}
}
