package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gitget/internal/application"
	"gitget/internal/application/commands"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change the manifest configuration",
	Long: `Read and change the configuration stored in the manifest. Keys starting
with a dash set defaults for command flags; put -- before them.

Examples:
  gitget config list
  gitget config set editor "code --wait"
  gitget config set -- --git-args "--depth 1"
  gitget config unset -- --git-args`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every configuration key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd, func(ws *application.Workspace) (*commands.ConfigResult, error) {
			return commands.NewConfigListCommand(ws).Execute(cmd.Context())
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd, func(ws *application.Workspace) (*commands.ConfigResult, error) {
			return commands.NewConfigGetCommand(ws, args[0]).Execute(cmd.Context())
		})
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd, func(ws *application.Workspace) (*commands.ConfigResult, error) {
			return commands.NewConfigSetCommand(ws, args[0], args[1]).Execute(cmd.Context())
		})
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd, func(ws *application.Workspace) (*commands.ConfigResult, error) {
			return commands.NewConfigUnsetCommand(ws, args[0]).Execute(cmd.Context())
		})
	},
}

func runConfig(cmd *cobra.Command, run func(*application.Workspace) (*commands.ConfigResult, error)) error {
	d := newDeps()
	defer d.Close()

	ws, err := d.workspace(cmd)
	if err != nil {
		return err
	}

	result, err := run(ws)
	if err != nil {
		return err
	}
	printConfig(cmd.OutOrStdout(), cmd.Name(), result)
	return nil
}

// printConfig prints a bare value for get and key = value lines otherwise
func printConfig(w io.Writer, verb string, result *commands.ConfigResult) {
	if result.Message != "" {
		fmt.Fprintln(w, result.Message)
		return
	}
	if verb == "get" && len(result.Entries) == 1 {
		fmt.Fprintln(w, formatValue(result.Entries[0].Value))
		return
	}
	for _, e := range result.Entries {
		fmt.Fprintf(w, "%s = %s\n", e.Key, formatValue(e.Value))
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}
