package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gitget/internal/application"
	"gitget/internal/domain"
	"gitget/internal/ports"
)

// Check statuses
const (
	StatusOK    = "✓"
	StatusWarn  = "⚠"
	StatusError = "✗"
)

// ErrUnhealthy is returned by doctor when a check failed
var ErrUnhealthy = errors.New("doctor found problems")

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string
	Details string // only shown if Status != StatusOK
}

// DoctorResult contains every check that ran
type DoctorResult struct {
	Checks  []CheckResult
	Healthy bool
}

// DoctorCommand checks the environment and the manifest
type DoctorCommand struct {
	store ports.ManifestStore
	git   ports.GitClient
	Path  string
}

// NewDoctorCommand creates a new DoctorCommand for the manifest at path
func NewDoctorCommand(store ports.ManifestStore, git ports.GitClient, path string) *DoctorCommand {
	return &DoctorCommand{store: store, git: git, Path: path}
}

// Execute runs the checks in order. Manifest checks stop at the first
// failure since later ones depend on it.
func (c *DoctorCommand) Execute(ctx context.Context) (*DoctorResult, error) {
	result := &DoctorResult{}
	result.Checks = append(result.Checks, c.checkGit(ctx))

	if check, ok := c.checkManifestFile(); !ok {
		result.Checks = append(result.Checks, check)
	} else {
		result.Checks = append(result.Checks, check)
		result.Checks = append(result.Checks, c.checkManifestContent(ctx)...)
	}

	result.Healthy = true
	for _, r := range result.Checks {
		if r.Status == StatusError {
			result.Healthy = false
			break
		}
	}
	if !result.Healthy {
		return result, ErrUnhealthy
	}
	return result, nil
}

func (c *DoctorCommand) checkGit(ctx context.Context) CheckResult {
	v, err := c.git.Version(ctx)
	if err != nil {
		return CheckResult{Name: "Git", Status: StatusError, Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Git", Status: StatusOK, Details: "  " + v}
}

func (c *DoctorCommand) checkManifestFile() (CheckResult, bool) {
	check := CheckResult{Name: "Manifest"}
	info, err := os.Stat(c.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		check.Status = StatusError
		check.Details = fmt.Sprintf("  %s not found, run `gitget setup`", c.Path)
	case err != nil:
		check.Status = StatusError
		check.Details = "  " + err.Error()
	case info.IsDir():
		check.Status = StatusError
		check.Details = fmt.Sprintf("  %s is a directory", c.Path)
	case !info.Mode().IsRegular():
		check.Status = StatusError
		check.Details = fmt.Sprintf("  %s is not a regular file", c.Path)
	default:
		check.Status = StatusOK
		check.Details = "  " + c.Path
		return check, true
	}
	return check, false
}

func (c *DoctorCommand) checkManifestContent(ctx context.Context) []CheckResult {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return []CheckResult{{Name: "YAML", Status: StatusError, Details: "  " + err.Error()}}
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return []CheckResult{{Name: "YAML", Status: StatusError, Details: "  " + err.Error()}}
	}
	checks := []CheckResult{{Name: "YAML", Status: StatusOK}}

	m, _, err := c.store.Load(ctx, c.Path, nil)
	if err != nil {
		return append(checks, CheckResult{Name: "Load", Status: StatusError, Details: "  " + err.Error()})
	}
	checks = append(checks, CheckResult{Name: "Load", Status: StatusOK})

	return append(checks, checkRecords(m), checkPaths(m), checkDuplicates(m))
}

func checkRecords(m *domain.Manifest) CheckResult {
	var problems []string
	for _, name := range domain.SortedNames(m.Packages) {
		for _, err := range application.ValidateRecord(name, m.Packages[name]) {
			problems = append(problems, fmt.Sprintf("  %s: %v", name, err))
		}
	}
	if len(problems) > 0 {
		return CheckResult{Name: "Records", Status: StatusError, Details: strings.Join(problems, "\n")}
	}
	return CheckResult{Name: "Records", Status: StatusOK, Details: fmt.Sprintf("  %d packages", len(m.Packages))}
}

func checkPaths(m *domain.Manifest) CheckResult {
	var problems []string
	for _, rec := range m.Records() {
		info, err := os.Stat(rec.Path)
		switch {
		case err != nil:
			problems = append(problems, fmt.Sprintf("  %s: %s does not exist", rec.Name, rec.Path))
		case !info.IsDir():
			problems = append(problems, fmt.Sprintf("  %s: %s is not a directory", rec.Name, rec.Path))
		}
	}
	if len(problems) > 0 {
		return CheckResult{Name: "Paths", Status: StatusError, Details: strings.Join(problems, "\n")}
	}
	return CheckResult{Name: "Paths", Status: StatusOK}
}

func checkDuplicates(m *domain.Manifest) CheckResult {
	dups := m.DuplicatePaths()
	if len(dups) == 0 {
		return CheckResult{Name: "Duplicates", Status: StatusOK}
	}
	var lines []string
	for _, path := range domain.SortedNames(dups) {
		lines = append(lines, fmt.Sprintf("  %s: %s", path, strings.Join(dups[path], ", ")))
	}
	return CheckResult{Name: "Duplicates", Status: StatusWarn, Details: strings.Join(lines, "\n")}
}
