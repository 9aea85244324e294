package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "test", cfg.Generate.TestModule)
	assert.Equal(t, "test_", cfg.Generate.TestPrefix)
	assert.Equal(t, "%sTest", cfg.Generate.ClassFormat)
	assert.Equal(t, "test_%s", cfg.Generate.FunctionFormat)
	assert.Equal(t, -1, cfg.TabWidthOrDefault(), "tabs are kept by default")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/pystub.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	content := `
generate:
  test_module: tests/unit
  tab_width: 4
  classmethods: true
  excludes: [build, docs]
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "tests/unit", cfg.Generate.TestModule)
	assert.Equal(t, 4, cfg.TabWidthOrDefault())
	assert.True(t, cfg.Generate.ClassMethods)
	assert.Equal(t, []string{"build", "docs"}, cfg.Generate.Excludes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, "test_", cfg.Generate.TestPrefix)
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(configPath, []byte("generate: [unclosed"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte("generate:\n  test_prefix: check_\n"), 0644))

	cfg, err := LoadFromDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "check_", cfg.Generate.TestPrefix)
}

func TestLoadFromDir_HiddenDir(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".pystub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".pystub", "config.yaml"), []byte("generate:\n  internal: true\n"), 0644))

	cfg, err := LoadFromDir(tmpDir)
	require.NoError(t, err)
	assert.True(t, cfg.Generate.Internal)
}

func TestLoadFromDir_Defaults(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	width := 2
	cfg := DefaultConfig()
	cfg.Generate.TabWidth = &width
	cfg.Generate.Header = "header.txt"

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	negative := -3
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty test module", func(c *Config) { c.Generate.TestModule = "" }},
		{"negative tab width", func(c *Config) { c.Generate.TabWidth = &negative }},
		{"class format without placeholder", func(c *Config) { c.Generate.ClassFormat = "Test" }},
		{"function format with two placeholders", func(c *Config) { c.Generate.FunctionFormat = "%s_%s" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_EmptyPrefix(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.TestPrefix = ""
	assert.NoError(t, cfg.Validate())
}

func TestRenderOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.ClassFormat = "Test%s"
	cfg.Generate.ClassMethods = true

	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, "TestBar", opts.ClassFormat.Apply("Bar"))
	assert.Equal(t, "test_foo", opts.FunctionFormat.Apply("foo"))
	assert.True(t, opts.ClassMethods)
	assert.Empty(t, opts.ImportPrefix)
}
