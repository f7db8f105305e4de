package terminal

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
)

// TableOptions controls RenderTable
type TableOptions struct {
	Width  int  // total width; 0 means no limit
	NoWrap bool // truncate cells instead of wrapping them
	Color  bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	plainHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// RenderTable draws rows under headers with rounded borders
func RenderTable(w io.Writer, headers []string, rows [][]string, opts TableOptions) error {
	if opts.NoWrap && opts.Width > 0 {
		rows = truncateRows(headers, rows, opts.Width)
	}

	hs := plainHeader
	if opts.Color {
		hs = headerStyle
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return hs
			}
			return cellStyle
		})
	if opts.Width > 0 {
		t = t.Width(opts.Width)
	}

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

// RenderTSV writes headers and rows separated by tabs
func RenderTSV(w io.Writer, headers []string, rows [][]string) error {
	if _, err := io.WriteString(w, strings.Join(headers, "\t")+"\n"); err != nil {
		return err
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.NewReplacer("\t", " ", "\n", " ").Replace(c)
		}
		if _, err := io.WriteString(w, strings.Join(cells, "\t")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// truncateRows shortens cells so every column fits an even share of width
func truncateRows(headers []string, rows [][]string, width int) [][]string {
	cols := len(headers)
	if cols == 0 {
		return rows
	}
	// 3 = one border plus one padding cell on each side
	share := (width - 1) / cols
	share -= 3
	if share < 4 {
		share = 4
	}

	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			cell = strings.ReplaceAll(cell, "\n", " ")
			out[i][j] = runewidth.Truncate(cell, share, "…")
		}
	}
	return out
}
