package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the mcomp.yaml configuration.
type Config struct {
	// Decorator is the decorator name that triggers the rewrite.
	// Defaults to "comprehend".
	Decorator string `yaml:"decorator,omitempty"`

	// Filters selects how filter clauses are handled: "reject" (default)
	// fails the decoration, "guard" rewrites them through the monad's zero.
	Filters FilterMode `yaml:"filters,omitempty"`

	// Names overrides the identifiers the rewritten body calls.
	Names NamesConfig `yaml:"names,omitempty"`

	// Color controls diagnostics colouring: auto, always or never.
	Color ColorMode `yaml:"color,omitempty"`
}

// NamesConfig holds the names bound to the monad operations.
type NamesConfig struct {
	Bind  string `yaml:"bind,omitempty"`
	Unit  string `yaml:"unit,omitempty"`
	Guard string `yaml:"guard,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads and parses a mcomp.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// LoadOptional is LoadConfig, except that a missing file yields Default().
func LoadOptional(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ParseConfig parses mcomp.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Decorator == "" {
		c.Decorator = DecoratorName
	}
	if c.Filters == "" {
		c.Filters = FilterReject
	}
	if c.Names.Bind == "" {
		c.Names.Bind = BindFuncName
	}
	if c.Names.Unit == "" {
		c.Names.Unit = UnitFuncName
	}
	if c.Names.Guard == "" {
		c.Names.Guard = GuardFuncName
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []string

	switch c.Filters {
	case FilterReject, FilterGuard:
	default:
		errs = append(errs, fmt.Sprintf("filters: unknown mode %q (want reject or guard)", c.Filters))
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Sprintf("color: unknown mode %q (want auto, always or never)", c.Color))
	}

	if !isIdentifier(c.Decorator) {
		errs = append(errs, fmt.Sprintf("decorator: %q is not a valid identifier", c.Decorator))
	}

	seen := map[string]string{}
	for _, n := range []struct{ key, value string }{
		{"names.bind", c.Names.Bind},
		{"names.unit", c.Names.Unit},
		{"names.guard", c.Names.Guard},
	} {
		if !isIdentifier(n.value) {
			errs = append(errs, fmt.Sprintf("%s: %q is not a valid identifier", n.key, n.value))
			continue
		}
		if prev, dup := seen[n.value]; dup {
			errs = append(errs, fmt.Sprintf("%s: %q is already used by %s", n.key, n.value, prev))
		}
		seen[n.value] = n.key
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
