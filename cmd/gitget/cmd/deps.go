package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"gitget/internal/adapters/git"
	"gitget/internal/adapters/manifest"
	"gitget/internal/adapters/metadata"
	"gitget/internal/application"
	"gitget/internal/config"
	"gitget/internal/domain"
)

// deps holds the adapters one invocation works with
type deps struct {
	git     *git.Client
	session *metadata.Session
	builder *application.Builder
	store   *manifest.Store
}

// newDeps wires the adapters. Callers must Close the result.
func newDeps() *deps {
	creds := metadata.Credentials{
		GitHubToken: firstNonEmpty(githubToken, config.GitHubToken()),
		GitLabToken: firstNonEmpty(gitlabToken, config.GitLabToken()),
	}
	session := metadata.OpenSession(creds)
	client := git.NewClient()
	builder := application.NewBuilder(client, session.Providers()...)

	return &deps{
		git:     client,
		session: session,
		builder: builder,
		store:   manifest.NewStore(builder, manifest.WithOptionsObserver(session.Authenticate)),
	}
}

// Close releases the API clients
func (d *deps) Close() error {
	return d.session.Close()
}

// workspace resolves the manifest for the working directory and attaches
// the flags cmd was given explicitly
func (d *deps) workspace(cmd *cobra.Command, flags ...string) (*application.Workspace, error) {
	path, err := locateManifest()
	if err != nil {
		return nil, err
	}
	return application.NewWorkspace(d.store, path, cliOptions(cmd, flags...)), nil
}

func locateManifest() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return manifest.Locate(cwd, home), nil
}

// setupPath is where setup creates the manifest
func setupPath(global bool) (string, error) {
	dir, err := os.Getwd()
	if global {
		dir, err = os.UserHomeDir()
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve manifest directory: %w", err)
	}
	return filepath.Join(dir, config.ManifestFilename), nil
}

// cliOptions collects the flags that were set on the command line. Flags
// left at their default stay out so configured defaults apply.
func cliOptions(cmd *cobra.Command, flags ...string) domain.Options {
	opts := domain.Options{}
	names := append([]string{"github-auth-token", "gitlab-auth-token"}, flags...)
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		switch f.Value.Type() {
		case "bool":
			opts["--"+name] = f.Value.String() == "true"
		case "int":
			n, _ := strconv.Atoi(f.Value.String())
			opts["--"+name] = n
		default:
			opts["--"+name] = f.Value.String()
		}
	}
	return opts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
