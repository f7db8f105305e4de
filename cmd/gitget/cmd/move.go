package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitget/internal/application/commands"
)

var moveCmd = &cobra.Command{
	Use:   "move <name> <location>",
	Short: "Move a package's directory",
	Long: `Move the clone of a package and update its path. When location is an
existing directory the clone is moved into it.

Examples:
  gitget move cobra ~/src/archive/
  gitget move cobra ~/src/spf13-cobra`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd)
		if err != nil {
			return err
		}

		result, err := commands.NewMoveCommand(ws, args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
