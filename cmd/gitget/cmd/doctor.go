package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitget/internal/application/commands"
)

var doctorQuiet bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check git and the manifest for problems",
	Long: `Check that git is installed and that the manifest can be found, parsed
and loaded, that every record is valid, that every path is an existing
directory and that no two packages share a path.

With --quiet only problems are printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := locateManifest()
		if err != nil {
			return err
		}

		d := newDeps()
		defer d.Close()

		result, err := commands.NewDoctorCommand(d.store, d.git, path).Execute(cmd.Context())
		if result != nil {
			out := cmd.OutOrStdout()
			for _, check := range result.Checks {
				if doctorQuiet && check.Status == commands.StatusOK {
					continue
				}
				fmt.Fprintf(out, "%s %s\n", check.Status, check.Name)
				if check.Details != "" && (check.Status != commands.StatusOK || debug) {
					fmt.Fprintln(out, check.Details)
				}
			}
		}
		return err
	},
}

func init() {
	doctorCmd.Flags().BoolVarP(&doctorQuiet, "quiet", "q", false, "only print problems")
	rootCmd.AddCommand(doctorCmd)
}
