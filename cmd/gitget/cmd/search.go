package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gitget/internal/adapters/sqlite"
	"gitget/internal/adapters/terminal"
	"gitget/internal/application/commands"
	"gitget/internal/logging"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search packages by name, owner, description, topic or language",
	Long: `Search the tracked packages. Results come from an index kept next to
your other gitget data and refreshed from the manifest on every search.

Examples:
  gitget search cobra
  gitget search "command line"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if len(strings.TrimSpace(query)) < 2 {
			return fmt.Errorf("query must be at least 2 characters")
		}

		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd)
		if err != nil {
			return err
		}

		index := sqlite.NewIndex()
		if err := index.Open(ws.Path); err != nil {
			return err
		}
		defer index.Close()

		search := commands.NewSearchCommand(ws, index, query)
		search.Limit = searchLimit
		results, err := search.Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			logging.FromContext(cmd.Context()).Info("no packages match", "query", query)
			return nil
		}

		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{r.Name, r.Path, r.Description})
		}
		out := cmd.OutOrStdout()
		return terminal.RenderTable(out, []string{"Name", "Path", "Description"}, rows, terminal.TableOptions{
			Color: !noColor && logging.IsTerminal(out),
		})
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", commands.DefaultSearchLimit, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
