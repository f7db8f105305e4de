package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitget/internal/application/commands"
)

var trackCmd = &cobra.Command{
	Use:   "track <path-or-glob>",
	Short: "Track repositories that are already cloned",
	Long: `Add existing clones to the manifest. The argument is a directory or a
glob matching directories; each package is named after its directory.

Examples:
  gitget track ~/src/cobra
  gitget track '~/src/*'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd)
		if err != nil {
			return err
		}

		result, err := commands.NewTrackCommand(ws, d.builder, args[0]).Execute(cmd.Context())
		if result != nil {
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
}
