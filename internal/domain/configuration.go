package domain

import (
	"fmt"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration is the persisted settings block of a manifest
type Configuration struct {
	Version string         `yaml:"version"`
	Editor  string         `yaml:"editor,omitempty"`
	Options Options        `yaml:"options"`
	Extra   map[string]any `yaml:",inline"`
}

// DefaultConfiguration returns an empty configuration stamped with version
func DefaultConfiguration(version string) Configuration {
	return Configuration{
		Version: version,
		Options: Options{},
	}
}

// Get returns the value stored under key. Keys starting with "-" are read
// from the options mapping.
func (c *Configuration) Get(key string) (any, error) {
	if IsOptionKey(key) {
		v, ok := c.Options[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrConfigKeyNotFound, key)
		}
		return v, nil
	}
	switch key {
	case "version":
		return c.Version, nil
	case "editor":
		if c.Editor == "" {
			return nil, fmt.Errorf("%w: %s", ErrConfigKeyNotFound, key)
		}
		return c.Editor, nil
	case "options":
		return c.Options, nil
	}
	v, ok := c.Extra[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConfigKeyNotFound, key)
	}
	return v, nil
}

// Set stores raw under key after parsing it as a YAML literal. Values that
// do not parse, or parse to null, are stored as the raw string.
func (c *Configuration) Set(key, raw string) error {
	value := ParseLiteral(raw)

	if IsOptionKey(key) {
		if c.Options == nil {
			c.Options = Options{}
		}
		c.Options[key] = value
		return nil
	}

	switch key {
	case "version", "editor":
		s, ok := value.(string)
		if !ok {
			s = raw
		}
		if key == "version" {
			c.Version = s
		} else {
			c.Editor = s
		}
		return nil
	case "options":
		m, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("options must be a mapping, got %q", raw)
		}
		c.Options = Options(m)
		return nil
	}

	if c.Extra == nil {
		c.Extra = map[string]any{}
	}
	c.Extra[key] = value
	return nil
}

// Unset removes key. The schema version cannot be removed.
func (c *Configuration) Unset(key string) error {
	if IsOptionKey(key) {
		if _, ok := c.Options[key]; !ok {
			return fmt.Errorf("%w: %s", ErrConfigKeyNotFound, key)
		}
		delete(c.Options, key)
		return nil
	}
	switch key {
	case "version":
		return fmt.Errorf("version cannot be unset")
	case "editor":
		if c.Editor == "" {
			return fmt.Errorf("%w: %s", ErrConfigKeyNotFound, key)
		}
		c.Editor = ""
		return nil
	case "options":
		c.Options = Options{}
		return nil
	}
	if _, ok := c.Extra[key]; !ok {
		return fmt.Errorf("%w: %s", ErrConfigKeyNotFound, key)
	}
	delete(c.Extra, key)
	return nil
}

// Entries flattens the configuration into key/value pairs for listing
func (c *Configuration) Entries() map[string]any {
	out := map[string]any{"version": c.Version}
	if c.Editor != "" {
		out["editor"] = c.Editor
	}
	for k, v := range c.Options {
		out[k] = v
	}
	maps.Copy(out, c.Extra)
	return out
}

// ParseLiteral interprets raw as a YAML scalar, mapping or sequence
func ParseLiteral(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	return v
}
