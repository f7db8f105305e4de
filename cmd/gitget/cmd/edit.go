package cmd

import (
	"github.com/spf13/cobra"

	"gitget/internal/adapters/editor"
	"gitget/internal/application/commands"
	"gitget/internal/logging"
	"gitget/internal/ports"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the manifest in an editor",
	Long: `Open the manifest in the editor set with "gitget config set editor",
else $VISUAL or $EDITOR, else the platform's default opener.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()
		defer d.Close()

		ws, err := d.workspace(cmd)
		if err != nil {
			return err
		}

		result, err := commands.NewEditCommand(ws, newEditor).Execute(cmd.Context())
		if err != nil {
			return err
		}
		logging.FromContext(cmd.Context()).Debug(result.Message)
		return nil
	},
}

func newEditor(configured string) ports.EditorOpener {
	return editor.NewOpener(configured)
}

func init() {
	rootCmd.AddCommand(editCmd)
}
