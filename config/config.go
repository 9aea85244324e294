package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"pystub/internal/adapter/fs"
	"pystub/internal/adapter/render"
)

// FileName is the project configuration file looked up by LoadFromDir.
const FileName = "pystub.yaml"

// Config holds all configuration for the stub generator.
type Config struct {
	Generate GenerateConfig `yaml:"generate"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GenerateConfig holds stub generation configuration.
type GenerateConfig struct {
	TestModule     string   `yaml:"test_module"`
	TestPrefix     string   `yaml:"test_prefix"`
	TabWidth       *int     `yaml:"tab_width,omitempty"` // nil keeps tabs
	Includes       []string `yaml:"includes"`
	Excludes       []string `yaml:"excludes"`
	Internal       bool     `yaml:"internal"`
	ClassFormat    string   `yaml:"class_format"`
	FunctionFormat string   `yaml:"function_format"`
	ClassMethods   bool     `yaml:"classmethods"`
	Force          bool     `yaml:"force"`
	Header         string   `yaml:"header,omitempty"` // path of a file prepended to every stub
	Footer         string   `yaml:"footer,omitempty"` // path of a file appended to every stub
	ImportPrefix   string   `yaml:"import_prefix,omitempty"`
	MarkerFile     string   `yaml:"marker_file"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			TestModule:     "test",
			TestPrefix:     "test_",
			Includes:       append([]string(nil), fs.DefaultIncludes...),
			Excludes:       []string{".git", "__pycache__"},
			ClassFormat:    render.DefaultClassFormat,
			FunctionFormat: render.DefaultFunctionFormat,
			MarkerFile:     fs.DefaultMarker,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for pystub.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".pystub", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values that cannot be checked by YAML decoding.
func (c *Config) Validate() error {
	g := c.Generate
	if g.TestModule == "" {
		return errors.New("generate.test_module must not be empty")
	}
	if g.TabWidth != nil && *g.TabWidth < 0 {
		return errors.Newf("generate.tab_width must not be negative, got %d", *g.TabWidth)
	}
	if _, err := render.ParseNameFormat(g.ClassFormat); err != nil {
		return errors.Wrap(err, "generate.class_format")
	}
	if _, err := render.ParseNameFormat(g.FunctionFormat); err != nil {
		return errors.Wrap(err, "generate.function_format")
	}
	return nil
}

// RenderOptions converts the naming settings into renderer options. The
// import prefix is left to the caller since it depends on each file's
// directory.
func (c *Config) RenderOptions() (render.Options, error) {
	classFmt, err := render.ParseNameFormat(c.Generate.ClassFormat)
	if err != nil {
		return render.Options{}, err
	}
	funcFmt, err := render.ParseNameFormat(c.Generate.FunctionFormat)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		ClassFormat:    classFmt,
		FunctionFormat: funcFmt,
		ClassMethods:   c.Generate.ClassMethods,
	}, nil
}

// TabWidthOrDefault returns the configured tab width, or -1 to keep tabs.
func (c *Config) TabWidthOrDefault() int {
	if c.Generate.TabWidth == nil {
		return -1
	}
	return *c.Generate.TabWidth
}
