package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitget/internal/application/commands"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh metadata and pull every package",
	Long: `Refresh the metadata of every tracked package, then run git pull in
its clone. Packages are processed one at a time; failures are reported at
the end.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd, "git-pull-args")
		if err != nil {
			return err
		}

		result, err := commands.NewUpdateCommand(ws, d.builder, d.git).Execute(cmd.Context())
		if result != nil && result.Message != "" {
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().String("git-pull-args", "", "extra arguments for git pull")
	rootCmd.AddCommand(updateCmd)
}
