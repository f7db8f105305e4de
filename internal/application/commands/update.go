package commands

import (
	"context"
	"fmt"

	"github.com/google/shlex"

	"gitget/internal/application"
	"gitget/internal/domain"
	"gitget/internal/logging"
	"gitget/internal/ports"
)

// UpdateResult contains the result of an update operation
type UpdateResult struct {
	Updated []string
	Failed  []string
	Total   int
	Message string
}

// UpdateCommand refreshes every record and pulls every clone
type UpdateCommand struct {
	ws      *application.Workspace
	builder ports.RecordBuilder
	git     ports.GitClient
}

// NewUpdateCommand creates a new UpdateCommand
func NewUpdateCommand(ws *application.Workspace, builder ports.RecordBuilder, git ports.GitClient) *UpdateCommand {
	return &UpdateCommand{ws: ws, builder: builder, git: git}
}

// Execute walks the packages in name order. A refreshed record is kept even
// when the pull that follows fails. The manifest is saved once at the end.
func (c *UpdateCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	m, opts, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}

	args, err := shlex.Split(opts.String(domain.OptGitPullArgs))
	if err != nil {
		return nil, &application.ValidationError{Field: domain.OptGitPullArgs, Message: err.Error()}
	}

	logger := logging.FromContext(ctx)
	records := m.Records()
	result := &UpdateResult{Total: len(records)}
	changed := false

	for i, rec := range records {
		logger.Info("updating", "package", rec.Name, "progress", fmt.Sprintf("%d/%d", i+1, len(records)))

		fresh, err := c.builder.BuildFromPath(ctx, rec.Name, rec.Path)
		if err != nil {
			logger.Error("refresh failed", "package", rec.Name, "error", err)
			result.Failed = append(result.Failed, rec.Name)
			continue
		}
		m.Put(fresh)
		changed = true

		if err := c.git.Pull(ctx, rec.Path, args); err != nil {
			logger.Error("pull failed", "package", rec.Name, "error", err)
			result.Failed = append(result.Failed, rec.Name)
			continue
		}
		result.Updated = append(result.Updated, rec.Name)
	}

	if changed {
		if err := c.ws.Save(m); err != nil {
			return result, err
		}
	}

	result.Message = fmt.Sprintf("Updated %d of %d packages", len(result.Updated), result.Total)
	if len(result.Failed) > 0 {
		return result, &application.BatchError{Op: "update", Failed: len(result.Failed), Total: result.Total}
	}
	return result, nil
}
