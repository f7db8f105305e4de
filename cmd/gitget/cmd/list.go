package cmd

import (
	"github.com/spf13/cobra"

	"gitget/internal/adapters/terminal"
	"gitget/internal/application/commands"
	"gitget/internal/logging"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked packages",
	Long: `Print every tracked package as a table, or as tab separated values
with --format tsv.

Examples:
  gitget list
  gitget list --width 120 --no-wrap
  gitget list --format tsv | cut -f1,2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd, "format", "width", "no-wrap")
		if err != nil {
			return err
		}

		result, err := commands.NewListCommand(ws).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Format == commands.FormatTSV {
			return terminal.RenderTSV(out, result.Headers, result.Rows)
		}
		return terminal.RenderTable(out, result.Headers, result.Rows, terminal.TableOptions{
			Width:  result.Width,
			NoWrap: result.NoWrap,
			Color:  !noColor && logging.IsTerminal(out),
		})
	},
}

func init() {
	listCmd.Flags().String("format", commands.FormatTable, "output format: table or tsv")
	listCmd.Flags().Int("width", 0, "maximum table width, 0 for no limit")
	listCmd.Flags().Bool("no-wrap", false, "truncate cells instead of wrapping them")
	rootCmd.AddCommand(listCmd)
}
