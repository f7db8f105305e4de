package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/google/shlex"

	"gitget/internal/ports"
)

// Opener implements ports.EditorOpener. It prefers the editor set in the
// manifest configuration, then $VISUAL, then $EDITOR, then the platform's
// default file opener.
type Opener struct {
	configured string
	getenv     func(string) string
	goos       string
}

// Ensure Opener implements EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates an opener; configured may be empty or hold a command
// line such as "code --wait".
func NewOpener(configured string) *Opener {
	return &Opener{
		configured: configured,
		getenv:     os.Getenv,
		goos:       runtime.GOOS,
	}
}

// OpenFile opens a file and waits for the editor to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv, err := o.Argv(path)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// Argv returns the full command line used to open path
func (o *Opener) Argv(path string) ([]string, error) {
	for _, candidate := range []string{o.configured, o.getenv("VISUAL"), o.getenv("EDITOR")} {
		if candidate == "" {
			continue
		}
		words, err := shlex.Split(candidate)
		if err != nil {
			return nil, fmt.Errorf("invalid editor command %q: %w", candidate, err)
		}
		if len(words) > 0 {
			return append(words, path), nil
		}
	}

	switch o.goos {
	case "darwin":
		return []string{"open", path}, nil
	case "windows":
		return []string{"cmd", "/c", "start", "", path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{"xdg-open", path}, nil
	}
	return nil, fmt.Errorf("no editor found: set $EDITOR or `gitget config set editor <command>`")
}
