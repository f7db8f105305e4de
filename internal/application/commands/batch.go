package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"gitget/internal/application"
	"gitget/internal/logging"
)

// BatchEntry is one line of a batch install file
type BatchEntry struct {
	Line string
	Name string
	URL  string
}

// ParseBatchLine splits "name=url" or a bare "url"
func ParseBatchLine(line string) BatchEntry {
	line = strings.TrimSpace(line)
	entry := BatchEntry{Line: line, URL: line}
	if name, url, ok := strings.Cut(line, "="); ok && !strings.ContainsAny(name, "/:") {
		entry.Name = strings.TrimSpace(name)
		entry.URL = strings.TrimSpace(url)
	}
	return entry
}

// ReadBatchFile returns the non-blank entries of path
func ReadBatchFile(path string) ([]BatchEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	var entries []BatchEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		entries = append(entries, ParseBatchLine(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return entries, nil
}

// WriteSidecar writes lines joined by newlines with a trailing newline.
// An empty list produces an empty file.
func WriteSidecar(path string, lines []string) error {
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// BatchInstallResult contains the result of a batch install
type BatchInstallResult struct {
	Installed     []string
	Failed        []string
	Total         int
	RemainingFile string
	FailedFile    string
	Message       string
}

// BatchInstallCommand installs every entry of a file, one at a time
type BatchInstallCommand struct {
	ws        *application.Workspace
	installer *Installer
	File      string
}

// NewBatchInstallCommand creates a new BatchInstallCommand
func NewBatchInstallCommand(ws *application.Workspace, installer *Installer, file string) *BatchInstallCommand {
	return &BatchInstallCommand{ws: ws, installer: installer, File: file}
}

// Validate checks if the batch install operation is valid
func (c *BatchInstallCommand) Validate() error {
	return application.ValidateRequired("batchFile", c.File)
}

// Execute installs each entry. The manifest is saved after every success,
// <file>.remaining is rewritten after every attempt and <file>.failed is
// written at the end.
func (c *BatchInstallCommand) Execute(ctx context.Context) (*BatchInstallResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entries, err := ReadBatchFile(c.File)
	if err != nil {
		return nil, err
	}

	m, opts, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	result := &BatchInstallResult{
		Total:         len(entries),
		RemainingFile: c.File + ".remaining",
		FailedFile:    c.File + ".failed",
	}

	for i, entry := range entries {
		logger.Info("installing", "entry", entry.Line, "progress", fmt.Sprintf("%d/%d", i+1, len(entries)))

		rec, err := c.installer.Install(ctx, m, opts, entry.URL, entry.Name)
		if err != nil {
			logger.Error("install failed", "entry", entry.Line, "error", err)
			result.Failed = append(result.Failed, entry.Line)
		} else if err := c.ws.Save(m); err != nil {
			return result, err
		} else {
			result.Installed = append(result.Installed, rec.Name)
		}

		remaining := make([]string, 0, len(entries)-i-1)
		for _, e := range entries[i+1:] {
			remaining = append(remaining, e.Line)
		}
		if err := WriteSidecar(result.RemainingFile, remaining); err != nil {
			return result, err
		}
	}

	if err := WriteSidecar(result.FailedFile, result.Failed); err != nil {
		return result, err
	}

	result.Message = fmt.Sprintf("Installed %d of %d packages", len(result.Installed), result.Total)
	if len(result.Failed) > 0 {
		return result, &application.BatchError{Op: "install", Failed: len(result.Failed), Total: result.Total}
	}
	return result, nil
}
