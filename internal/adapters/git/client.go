package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"gitget/internal/ports"
)

// Client runs the git binary found on PATH
type Client struct {
	binary string
	stderr io.Writer
}

// Ensure Client implements GitClient
var _ ports.GitClient = (*Client)(nil)

// NewClient returns a client that streams clone and pull progress to stderr
func NewClient() *Client {
	return &Client{binary: "git", stderr: os.Stderr}
}

// RemoteURL returns the fetch URL of origin, or of the first configured
// remote when there is no origin.
func (c *Client) RemoteURL(ctx context.Context, path string) (string, error) {
	out, err := c.output(ctx, "-C", path, "remote")
	if err != nil {
		return "", err
	}
	remotes := strings.Fields(out)
	if len(remotes) == 0 {
		return "", fmt.Errorf("%s has no git remote", path)
	}

	remote := remotes[0]
	for _, r := range remotes {
		if r == "origin" {
			remote = r
			break
		}
	}

	url, err := c.output(ctx, "-C", path, "remote", "get-url", remote)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(url), nil
}

// Clone runs git clone [args...] url dest
func (c *Client) Clone(ctx context.Context, url, dest string, args []string) error {
	argv := append([]string{"clone"}, args...)
	argv = append(argv, "--", url, dest)
	cmd := exec.CommandContext(ctx, c.binary, argv...)
	cmd.Stderr = c.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone %s: %w", url, err)
	}
	return nil
}

// Pull runs git pull [args...] inside path
func (c *Client) Pull(ctx context.Context, path string, args []string) error {
	argv := append([]string{"-C", path, "pull"}, args...)
	cmd := exec.CommandContext(ctx, c.binary, argv...)
	cmd.Stderr = c.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git pull %s: %w", path, err)
	}
	return nil
}

// Version returns the output of git --version
func (c *Client) Version(ctx context.Context) (string, error) {
	if _, err := exec.LookPath(c.binary); err != nil {
		return "", fmt.Errorf("git not found on PATH: %w", err)
	}
	out, err := c.output(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
		}
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), msg, err)
	}
	return string(out), nil
}
