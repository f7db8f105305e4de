package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitget/internal/adapters/network"
	"gitget/internal/application/commands"
)

var installCmd = &cobra.Command{
	Use:   "install <url> [name]",
	Short: "Clone a repository and track it",
	Long: `Clone a repository into the working directory and add it to the
manifest. The name defaults to owner_repo.

Examples:
  gitget install https://github.com/spf13/cobra
  gitget install git@github.com:spf13/cobra.git cobra
  gitget install --git-args="--depth 1" https://gitlab.com/gitlab-org/cli`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 2 {
			name = args[1]
		}

		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd, "git-args")
		if err != nil {
			return err
		}
		installer, err := newInstaller(d)
		if err != nil {
			return err
		}

		result, err := commands.NewInstallCommand(ws, installer, args[0], name).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var installBatchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Install every repository listed in a file",
	Long: `Install the repositories listed in file, one url or name=url per
line. Progress is kept in <file>.remaining so an interrupted run can be
resumed from it; failed lines end up in <file>.failed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd, "git-args")
		if err != nil {
			return err
		}
		installer, err := newInstaller(d)
		if err != nil {
			return err
		}

		result, err := commands.NewBatchInstallCommand(ws, installer, args[0]).Execute(cmd.Context())
		if result != nil && result.Message != "" {
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		}
		return err
	},
}

// newInstaller clones into the working directory
func newInstaller(d *deps) (*commands.Installer, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return commands.NewInstaller(d.builder, d.git, network.NewProber(), root), nil
}

func init() {
	installCmd.PersistentFlags().String("git-args", "", "extra arguments for git clone")
	installCmd.AddCommand(installBatchCmd)
	rootCmd.AddCommand(installCmd)
}
