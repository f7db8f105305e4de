package ports

import "context"

// GitClient runs the git operations gitget delegates to
type GitClient interface {
	// RemoteURL returns the URL of origin, or of the first remote
	RemoteURL(ctx context.Context, path string) (string, error)

	// Clone clones url into dest with extra arguments
	Clone(ctx context.Context, url, dest string, args []string) error

	// Pull runs git pull inside path with extra arguments
	Pull(ctx context.Context, path string, args []string) error

	// Version returns the installed git version, failing when git is missing
	Version(ctx context.Context) (string, error)
}

// RemoteProber checks that a repository host answers before cloning
type RemoteProber interface {
	Reachable(ctx context.Context, url string) error
}

// Prompter asks the user a yes/no question
type Prompter interface {
	// Confirm returns the answer; an empty answer counts as no and an
	// unparseable one returns domain.ErrInvalidResponse.
	Confirm(question string) (bool, error)
}
