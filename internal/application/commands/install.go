package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/shlex"

	"gitget/internal/application"
	"gitget/internal/domain"
	"gitget/internal/logging"
	"gitget/internal/ports"
)

// InstallResult contains the result of an install operation
type InstallResult struct {
	Record  domain.PackageRecord
	Message string
}

// Installer clones repositories into the manifest. It is shared by the
// single and batch install commands.
type Installer struct {
	builder ports.RecordBuilder
	git     ports.GitClient
	prober  ports.RemoteProber
	// Root is the directory new clones are placed under
	Root string
}

// NewInstaller creates an Installer cloning under root
func NewInstaller(builder ports.RecordBuilder, git ports.GitClient, prober ports.RemoteProber, root string) *Installer {
	return &Installer{builder: builder, git: git, prober: prober, Root: root}
}

// Install adds url to m under name, cloning it to Root/name. The record is
// built before cloning so a failed metadata fetch leaves nothing on disk.
func (in *Installer) Install(ctx context.Context, m *domain.Manifest, opts domain.Options, url, name string) (domain.PackageRecord, error) {
	ref, err := domain.ParseRepoRef(url)
	if err != nil {
		return domain.PackageRecord{}, err
	}
	if name == "" {
		name = ref.DefaultName()
	}
	if err := application.ValidatePackageName("name", name); err != nil {
		return domain.PackageRecord{}, err
	}
	if _, ok := m.Get(name); ok {
		return domain.PackageRecord{}, application.NameCollision(name)
	}

	location, err := filepath.Abs(filepath.Join(in.Root, name))
	if err != nil {
		return domain.PackageRecord{}, fmt.Errorf("failed to resolve location: %w", err)
	}
	if owner, ok := m.NameForPath(location); ok {
		return domain.PackageRecord{}, application.PathCollision(location, owner)
	}
	if _, err := os.Stat(location); err == nil {
		return domain.PackageRecord{}, application.PathCollision(location, "")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return domain.PackageRecord{}, fmt.Errorf("failed to stat %s: %w", location, err)
	}

	if err := in.prober.Reachable(ctx, url); err != nil {
		return domain.PackageRecord{}, err
	}

	rec, err := in.builder.BuildFromURL(ctx, url, name, location)
	if err != nil {
		return domain.PackageRecord{}, err
	}

	args, err := shlex.Split(opts.String(domain.OptGitArgs))
	if err != nil {
		return domain.PackageRecord{}, &application.ValidationError{Field: domain.OptGitArgs, Message: err.Error()}
	}
	if err := os.MkdirAll(filepath.Dir(location), 0o755); err != nil {
		return domain.PackageRecord{}, &domain.FilesystemError{Op: "create", Path: filepath.Dir(location), Err: err}
	}
	logging.FromContext(ctx).Info("cloning", "url", url, "path", location)
	if err := in.git.Clone(ctx, url, location, args); err != nil {
		return domain.PackageRecord{}, &domain.FilesystemError{Op: "clone into", Path: location, Err: err}
	}

	m.Put(rec)
	return rec, nil
}

// InstallCommand clones a repository and tracks it
type InstallCommand struct {
	ws        *application.Workspace
	installer *Installer
	URL       string
	Name      string
}

// NewInstallCommand creates a new InstallCommand; name may be empty
func NewInstallCommand(ws *application.Workspace, installer *Installer, url, name string) *InstallCommand {
	return &InstallCommand{ws: ws, installer: installer, URL: url, Name: name}
}

// Validate checks if the install operation is valid
func (c *InstallCommand) Validate() error {
	if err := application.ValidateRequired("url", c.URL); err != nil {
		return err
	}
	if c.Name != "" {
		return application.ValidatePackageName("name", c.Name)
	}
	return nil
}

// Execute runs the install command
func (c *InstallCommand) Execute(ctx context.Context) (*InstallResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m, opts, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := c.installer.Install(ctx, m, opts, c.URL, c.Name)
	if err != nil {
		return nil, err
	}
	if err := c.ws.Save(m); err != nil {
		return nil, err
	}

	return &InstallResult{
		Record:  rec,
		Message: fmt.Sprintf("Installed %s to %s", rec.Name, rec.Path),
	}, nil
}
