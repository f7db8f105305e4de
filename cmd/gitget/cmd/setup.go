package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitget/internal/application/commands"
)

var setupGlobal bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create an empty manifest",
	Long: `Create an empty .gitget.yaml in the working directory, or in your
home directory with --global. An existing manifest is never overwritten.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := setupPath(setupGlobal)
		if err != nil {
			return err
		}

		d := newDeps()
		defer d.Close()

		result, err := commands.NewSetupCommand(d.store, path).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	setupCmd.Flags().BoolVar(&setupGlobal, "global", false, "create the manifest in the home directory")
	rootCmd.AddCommand(setupCmd)
}
