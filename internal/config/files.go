package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Files lists the source files under the configuration root matching
// Include and not Exclude, as sorted paths joined to Root.
func (c *Config) Files() ([]string, error) {
	return c.Match(c.Include)
}

// Match lists files under Root matching any of patterns and none of
// Exclude.
func (c *Config) Match(patterns []string) ([]string, error) {
	root := c.Root
	if root == "" {
		root = "."
	}
	fsys := os.DirFS(root)

	seen := map[string]bool{}
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalid, pattern, err)
		}
		for _, m := range matches {
			if seen[m] || c.excluded(m) {
				continue
			}
			seen[m] = true
			out = append(out, filepath.Join(root, filepath.FromSlash(m)))
		}
	}
	slices.Sort(out)
	return out, nil
}

func (c *Config) excluded(path string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
