package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gitget/internal/adapters/editor"
	"gitget/internal/adapters/sqlite"
	"gitget/internal/adapters/tui"
	"gitget/internal/logging"
	"gitget/internal/ports"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse packages interactively",
	Long: `Open an interactive package browser. Filter the list with /, search
the index with s, open a package in your editor with e, copy its path with y
and untrack it with u. Press ? for all keys.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd)
		if err != nil {
			return err
		}
		m, _, err := ws.Load(ctx)
		if err != nil {
			return err
		}

		var index ports.PackageIndex
		db := sqlite.NewIndex()
		if err := db.Open(ws.Path); err != nil {
			logging.FromContext(ctx).Warn("search disabled", "error", err)
		} else {
			defer db.Close()
			index = db
		}

		app := tui.NewApp(ws, index, editor.NewOpener(m.Configuration.Editor))
		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
