package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"gitget/internal/logging"
)

var (
	debug       bool
	noColor     bool
	githubToken string
	gitlabToken string
)

var rootCmd = &cobra.Command{
	Use:   "gitget",
	Short: "Keep track of the git repositories cloned on this machine",
	Long: `gitget records every repository you clone in a manifest file,
together with metadata fetched from GitHub or GitLab.

The manifest is the first .gitget.yaml found from the working directory
upwards, or the one in your home directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(os.Stderr, logging.Options{Debug: debug, NoColor: noColor})
		slog.SetDefault(logger)
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "nocolor", false, "disable colored log output")
	rootCmd.PersistentFlags().StringVar(&githubToken, "github-auth-token", "", "GitHub API token (default $GITGET_GITHUB_TOKEN or $GITHUB_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&gitlabToken, "gitlab-auth-token", "", "GitLab API token (default $GITGET_GITLAB_TOKEN or $GITLAB_TOKEN)")
}
