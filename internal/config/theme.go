package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	asimonimConfig "bennypowers.dev/asimonim/config"
	"bennypowers.dev/asimonim/fs"
	asimonimParser "bennypowers.dev/asimonim/parser"
	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"github.com/bmatcuk/doublestar/v4"
)

// token name prefixes dropped when a token becomes a theme keyword
var (
	colorPrefixes     = []string{"color-", "colors-"}
	dimensionPrefixes = []string{"spacing-", "space-", "size-", "dimension-"}
)

// ResolveTheme returns the built-in theme extended by the configured theme
// and by the design tokens in TokensFiles. Without TokensFiles, the files
// named by .config/design-tokens.{yaml,json} are used.
func (c *Config) ResolveTheme() (tailwind.Theme, error) {
	theme := tailwind.DefaultTheme().Extend(c.Theme)

	files, err := c.tokenFiles()
	if err != nil {
		return theme, err
	}

	var errs []error
	for _, path := range files {
		extension, err := tokenTheme(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		theme = theme.Extend(extension)
	}
	return theme, errors.Join(errs...)
}

func (c *Config) tokenFiles() ([]string, error) {
	if len(c.TokensFiles) == 0 {
		return c.asimonimFiles()
	}
	var files []string
	for _, entry := range c.TokensFiles {
		pattern := c.Path(entry)
		if !strings.ContainsAny(entry, "*?[{") {
			files = append(files, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: tokensFiles pattern %q: %w", ErrInvalid, entry, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

// asimonimFiles reads the shared design tokens configuration, if any.
func (c *Config) asimonimFiles() ([]string, error) {
	if c.Root == "" {
		return nil, nil
	}
	filesystem := fs.NewOSFileSystem()
	cfg, err := asimonimConfig.Load(filesystem, c.Root)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil // No config file found
	}
	paths, err := cfg.ExpandFiles(filesystem, c.Root)
	if err != nil {
		log.Warn("Failed to expand token file globs: %v", err)
		return nil, nil
	}
	return paths, nil
}

// tokenTheme maps the color and dimension tokens of one file onto theme
// scales.
func tokenTheme(path string) (tailwind.Theme, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("unsupported file type %s: %s", ext, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // workspace token file
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	// asimonim reads both JSON and YAML
	parser := asimonimParser.NewJSONParser()
	tokens, err := parser.Parse(data, asimonimParser.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse tokens in %s: %w", path, err)
	}

	theme := tailwind.Theme{"colors": {}, "spacing": {}}
	for _, t := range tokens {
		name := strings.ReplaceAll(t.Name, ".", "-")
		switch strings.ToLower(t.Type) {
		case "color":
			theme["colors"][trimAny(name, colorPrefixes)] = t.Value
		case "dimension":
			theme["spacing"][trimAny(name, dimensionPrefixes)] = t.Value
		}
	}
	log.Info("Loaded %d colors and %d dimensions from %s",
		len(theme["colors"]), len(theme["spacing"]), path)
	return theme, nil
}

func trimAny(name string, prefixes []string) string {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(name, p); ok && rest != "" {
			return rest
		}
	}
	return name
}
