package commands

import (
	"context"
	"fmt"
	"strings"

	"gitget/internal/application"
	"gitget/internal/domain"
)

// List output formats
const (
	FormatTable = "table"
	FormatTSV   = "tsv"
)

// ListHeaders are the columns printed by list
var ListHeaders = []string{"Name", "Path", "Last commit", "URL", "Description", "Topics", "License"}

// ListResult contains the rows to print and how to print them
type ListResult struct {
	Headers []string
	Rows    [][]string
	Format  string
	Width   int
	NoWrap  bool
}

// ListCommand lists the tracked packages
type ListCommand struct {
	ws *application.Workspace
}

// NewListCommand creates a new ListCommand
func NewListCommand(ws *application.Workspace) *ListCommand {
	return &ListCommand{ws: ws}
}

// Execute loads the manifest and builds one row per package
func (c *ListCommand) Execute(ctx context.Context) (*ListResult, error) {
	m, opts, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(opts.String(domain.OptFormat))
	if format == "" {
		format = FormatTable
	}
	if format != FormatTable && format != FormatTSV {
		return nil, &application.ValidationError{
			Field:   domain.OptFormat,
			Message: fmt.Sprintf("unknown format %q, expected %s or %s", format, FormatTable, FormatTSV),
		}
	}
	width := opts.Int(domain.OptWidth, 0)
	if width < 0 {
		return nil, &application.ValidationError{Field: domain.OptWidth, Message: "width must not be negative"}
	}

	records := m.Records()
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, ListRow(rec))
	}

	return &ListResult{
		Headers: ListHeaders,
		Rows:    rows,
		Format:  format,
		Width:   width,
		NoWrap:  opts.Bool(domain.OptNoWrap),
	}, nil
}

// ListRow renders rec as the cells of ListHeaders
func ListRow(rec domain.PackageRecord) []string {
	lastCommit := ""
	if rec.LastCommitAt != nil {
		lastCommit = rec.LastCommitAt.Format("2006-01-02")
	}
	license := ""
	if rec.License != nil {
		license = rec.License.Name
	}
	return []string{
		rec.Name,
		rec.Path,
		lastCommit,
		rec.URL,
		rec.Description,
		strings.Join(rec.Topics, ", "),
		license,
	}
}
