package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gitget/internal/application/commands"
)

var showCmd = &cobra.Command{
	Use:   "show <name-or-path>",
	Short: "Print the record of one package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd)
		if err != nil {
			return err
		}

		result, err := commands.NewShowCommand(ws, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(result.Record)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", result.Record.Name, err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
