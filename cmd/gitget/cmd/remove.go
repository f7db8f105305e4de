package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitget/internal/adapters/terminal"
	"gitget/internal/application/commands"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name-or-path>",
	Short: "Delete a package and its files",
	Long: `Remove a package from the manifest and delete its directory after
asking for confirmation. With --soft the files are kept and nothing is asked.

Warning: deleted files cannot be recovered.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd, "soft")
		if err != nil {
			return err
		}
		prompter := terminal.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

		result, err := commands.NewRemoveCommand(ws, prompter, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	removeCmd.Flags().Bool("soft", false, "keep the files on disk")
	rootCmd.AddCommand(removeCmd)
}
