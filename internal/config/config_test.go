package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/jsxtree/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "className", cfg.ClassAttribute)
	assert.Equal(t, config.Default().Include, cfg.Include)
	assert.False(t, cfg.DebugIDs)
}

func TestLoadPackageJSON(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{
  // comments are allowed
  "name": "app",
  "jsxtree": {
    "classAttribute": "class",
    "include": ["src/**/*.jsx"],
    "theme": {"colors": {"brand": "#0055ff"}},
    "debugIds": true,
  }
}`)
	// package.json wins over .config
	write(t, root, ".config/jsxtree.yaml", "classAttribute: tw\n")

	cfg, err := config.Load(root)
	require.NoError(t, err)

	assert.Equal(t, "class", cfg.ClassAttribute)
	assert.Equal(t, []string{"src/**/*.jsx"}, cfg.Include)
	assert.Equal(t, config.Default().Exclude, cfg.Exclude, "unset fields keep defaults")
	assert.Equal(t, "#0055ff", cfg.Theme["colors"]["brand"])
	assert.True(t, cfg.DebugIDs)
	assert.Equal(t, root, cfg.Root)
}

func TestLoadPackageJSONWithoutKey(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"name": "app"}`)
	write(t, root, ".config/jsxtree.yaml", `
classAttribute: tw
theme:
  spacing:
    0.5: 3px
`)

	cfg, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "tw", cfg.ClassAttribute)
	assert.Equal(t, "3px", cfg.Theme["spacing"]["0.5"])
}

func TestLoadJSONConfig(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".config/jsxtree.json", `{"exclude": ["vendor/**"], /* c */ "debugIds": true}`)

	cfg, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/**"}, cfg.Exclude)
	assert.True(t, cfg.DebugIDs)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"package.json", "package.json", `{"jsxtree": "nope"}`},
		{"yaml", ".config/jsxtree.yaml", "include: {a: b}\n"},
		{"json", ".config/jsxtree.json", `{"include": 4}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			write(t, root, tt.file, tt.content)
			_, err := config.Load(root)
			require.Error(t, err)
			assert.True(t, errors.Is(err, config.ErrInvalid))
		})
	}
}

func TestFiles(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/App.jsx", "")
	write(t, root, "src/lib/util.js", "")
	write(t, root, "src/styles.css", "")
	write(t, root, "node_modules/pkg/index.js", "")

	cfg := config.Default()
	cfg.Root = root

	files, err := cfg.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "src", "App.jsx"),
		filepath.Join(root, "src", "lib", "util.js"),
	}, files)

	files, err = cfg.Match([]string{"src/*.jsx", "**/App.jsx"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "src", "App.jsx")}, files)
}

func TestResolveTheme(t *testing.T) {
	root := t.TempDir()
	write(t, root, "tokens.json", `{
  "color": {
    "brand": {"$type": "color", "$value": "#123456"}
  },
  "spacing": {
    "gutter": {"$type": "dimension", "$value": "18px"}
  }
}`)

	cfg := config.Default()
	cfg.Root = root
	cfg.TokensFiles = []string{"tokens.json"}
	cfg.Theme = map[string]map[string]string{"colors": {"accent": "#ff00ff"}}

	theme, err := cfg.ResolveTheme()
	require.NoError(t, err)

	colors := theme.Scale("colors")
	assert.Equal(t, "#ef4444", colors["red-500"], "built-in keywords remain")
	assert.Equal(t, "#ff00ff", colors["accent"])
	assert.Contains(t, valuesOf(colors), "#123456")
	assert.Contains(t, valuesOf(theme.Scale("spacing")), "18px")
}

func TestResolveThemeMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Root = t.TempDir()
	cfg.TokensFiles = []string{"missing.json", "tokens.txt"}

	theme, err := cfg.ResolveTheme()
	require.Error(t, err)
	assert.Equal(t, "#ef4444", theme.Scale("colors")["red-500"], "theme is usable despite token errors")
}

func valuesOf(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
