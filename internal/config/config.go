// Package config loads project settings from package.json or
// .config/jsxtree.{yaml,json}.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// PackageKey is the package.json field holding the configuration.
const PackageKey = "jsxtree"

// ErrInvalid indicates a configuration file that could not be decoded.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the project configuration
type Config struct {
	// ClassAttribute names the attribute holding class tokens.
	// Default: "className"
	ClassAttribute string `json:"classAttribute,omitempty" yaml:"classAttribute,omitempty"`

	// Include lists doublestar patterns of source files, relative to Root.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`

	// Exclude removes matches of Include.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// TokensFiles lists DTCG token files (or patterns) that extend the
	// theme. Color tokens become colors, dimension tokens become spacing.
	TokensFiles []string `json:"tokensFiles,omitempty" yaml:"tokensFiles,omitempty"`

	// Theme adds or overrides keywords, by scale.
	// Example: {"colors": {"brand": "#0055ff"}}
	Theme tailwind.Theme `json:"theme,omitempty" yaml:"theme,omitempty"`

	// DebugIDs renders data-node-id attributes when printing.
	DebugIDs bool `json:"debugIds,omitempty" yaml:"debugIds,omitempty"`

	// Root is the directory the configuration was loaded for.
	Root string `json:"-" yaml:"-"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		ClassAttribute: "className",
		Include:        []string{"**/*.jsx", "**/*.js"},
		Exclude:        []string{"**/node_modules/**", "**/dist/**"},
	}
}

// Load reads the configuration for root. package.json's "jsxtree" field
// takes precedence over .config/jsxtree.yaml, which takes precedence over
// .config/jsxtree.json. Without any of them the defaults apply.
func Load(root string) (*Config, error) {
	cfg := Default()
	cfg.Root = root
	if root == "" {
		return cfg, nil
	}

	found, err := loadPackageJSON(root, cfg)
	if err != nil || found {
		return cfg, err
	}

	for _, name := range []string{"jsxtree.yaml", "jsxtree.yml"} {
		path := filepath.Join(root, ".config", name)
		data, err := os.ReadFile(path) //nolint:gosec // workspace config
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return cfg, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
		}
		log.Debug("Loaded configuration from %s", path)
		return cfg, nil
	}

	path := filepath.Join(root, ".config", "jsxtree.json")
	data, err := os.ReadFile(path) //nolint:gosec // workspace config
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	log.Debug("Loaded configuration from %s", path)
	return cfg, nil
}

// loadPackageJSON decodes the "jsxtree" field of root/package.json into
// cfg and reports whether the field was present.
func loadPackageJSON(root string, cfg *Config) (bool, error) {
	path := filepath.Join(root, "package.json")
	data, err := os.ReadFile(path) //nolint:gosec // workspace package.json
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read package.json: %w", err)
	}

	// Parse as JSONC (allows comments)
	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return false, fmt.Errorf("%w: package.json: %w", ErrInvalid, err)
	}
	raw, ok := pkg[PackageKey]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return true, fmt.Errorf("%w: package.json %q must be an object: %w", ErrInvalid, PackageKey, err)
	}
	log.Debug("Loaded configuration from %s", path)
	return true, nil
}

// Path resolves p against the configuration root.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}
