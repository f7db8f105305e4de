package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitget/internal/application/commands"
)

var renameCmd = &cobra.Command{
	Use:   "rename <name> <new-name>",
	Short: "Rename a package",
	Long: `Rename a package in the manifest. With --move-files its directory is
renamed to a sibling called new-name as well.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd, "move-files")
		if err != nil {
			return err
		}

		result, err := commands.NewRenameCommand(ws, args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	renameCmd.Flags().Bool("move-files", false, "rename the directory too")
	rootCmd.AddCommand(renameCmd)
}
