package commands

import (
	"context"
	"fmt"

	"gitget/internal/application"
	"gitget/internal/domain"
)

// ConfigEntry is one configuration key and its value
type ConfigEntry struct {
	Key   string
	Value any
}

// ConfigResult contains the result of a config operation
type ConfigResult struct {
	Entries []ConfigEntry
	Message string
}

// ConfigListCommand lists every configuration key
type ConfigListCommand struct {
	ws *application.Workspace
}

// NewConfigListCommand creates a new ConfigListCommand
func NewConfigListCommand(ws *application.Workspace) *ConfigListCommand {
	return &ConfigListCommand{ws: ws}
}

// Execute returns the entries ordered by key
func (c *ConfigListCommand) Execute(ctx context.Context) (*ConfigResult, error) {
	m, _, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}
	entries := m.Configuration.Entries()
	result := &ConfigResult{}
	for _, key := range domain.SortedNames(entries) {
		result.Entries = append(result.Entries, ConfigEntry{Key: key, Value: entries[key]})
	}
	return result, nil
}

// ConfigGetCommand reads one configuration key
type ConfigGetCommand struct {
	ws  *application.Workspace
	Key string
}

// NewConfigGetCommand creates a new ConfigGetCommand
func NewConfigGetCommand(ws *application.Workspace, key string) *ConfigGetCommand {
	return &ConfigGetCommand{ws: ws, Key: key}
}

// Validate checks if the get operation is valid
func (c *ConfigGetCommand) Validate() error {
	return application.ValidateRequired("key", c.Key)
}

// Execute runs the config get command
func (c *ConfigGetCommand) Execute(ctx context.Context) (*ConfigResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m, _, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}
	v, err := m.Configuration.Get(c.Key)
	if err != nil {
		return nil, err
	}
	return &ConfigResult{Entries: []ConfigEntry{{Key: c.Key, Value: v}}}, nil
}

// ConfigSetCommand stores a configuration key
type ConfigSetCommand struct {
	ws    *application.Workspace
	Key   string
	Value string
}

// NewConfigSetCommand creates a new ConfigSetCommand. value is parsed as a
// YAML literal.
func NewConfigSetCommand(ws *application.Workspace, key, value string) *ConfigSetCommand {
	return &ConfigSetCommand{ws: ws, Key: key, Value: value}
}

// Validate checks if the set operation is valid
func (c *ConfigSetCommand) Validate() error {
	if err := application.ValidateRequired("key", c.Key); err != nil {
		return err
	}
	if c.Key == "version" {
		return &application.ValidationError{Field: "key", Message: "version is managed by gitget"}
	}
	return nil
}

// Execute runs the config set command
func (c *ConfigSetCommand) Execute(ctx context.Context) (*ConfigResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m, _, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.Configuration.Set(c.Key, c.Value); err != nil {
		return nil, &application.ValidationError{Field: "value", Message: err.Error()}
	}
	if err := c.ws.Save(m); err != nil {
		return nil, err
	}
	v, _ := m.Configuration.Get(c.Key)
	return &ConfigResult{
		Entries: []ConfigEntry{{Key: c.Key, Value: v}},
		Message: fmt.Sprintf("Set %s", c.Key),
	}, nil
}

// ConfigUnsetCommand removes a configuration key
type ConfigUnsetCommand struct {
	ws  *application.Workspace
	Key string
}

// NewConfigUnsetCommand creates a new ConfigUnsetCommand
func NewConfigUnsetCommand(ws *application.Workspace, key string) *ConfigUnsetCommand {
	return &ConfigUnsetCommand{ws: ws, Key: key}
}

// Validate checks if the unset operation is valid
func (c *ConfigUnsetCommand) Validate() error {
	if err := application.ValidateRequired("key", c.Key); err != nil {
		return err
	}
	if c.Key == "version" {
		return &application.ValidationError{Field: "key", Message: "version cannot be unset"}
	}
	return nil
}

// Execute runs the config unset command
func (c *ConfigUnsetCommand) Execute(ctx context.Context) (*ConfigResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m, _, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.Configuration.Unset(c.Key); err != nil {
		return nil, err
	}
	if err := c.ws.Save(m); err != nil {
		return nil, err
	}
	return &ConfigResult{Message: fmt.Sprintf("Unset %s", c.Key)}, nil
}
