package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitget/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gitget and manifest schema versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
