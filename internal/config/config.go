package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-root configuration file.
const FileName = "databundle.yaml"

// InvalidBehavior controls how files that fail to parse are handled.
type InvalidBehavior string

const (
	InvalidSilent InvalidBehavior = "silent"
	InvalidWarn   InvalidBehavior = "warn"
	InvalidFail   InvalidBehavior = "fail"
)

// MaxIndent is the largest indent width accepted for the generated script.
const MaxIndent = 8

// fileConfig is the raw YAML structure from databundle.yaml.
type fileConfig struct {
	Output    string `yaml:"output"`
	Extension string `yaml:"extension"`
	Variable  string `yaml:"variable"`
	Header    string `yaml:"header"`
	Indent    *int   `yaml:"indent"`
	Invalid   string `yaml:"invalid"`
}

// Config is the fully merged, resolved configuration.
type Config struct {
	// OutputFile is the generated script's name, relative to the root.
	OutputFile string
	// Extension selects the data files to embed, including the leading dot.
	Extension string
	// Variable is the global the generated script assigns to.
	Variable string
	// Header is the comment line written above the assignment.
	Header  string
	Indent  int
	Invalid InvalidBehavior
}

// Default returns a Config populated entirely with default values.
func Default() *Config {
	return &Config{
		OutputFile: "data.js",
		Extension:  ".json",
		Variable:   "window.QuranData",
		Header:     "// Auto-generated: embeds all JSON files",
		Indent:     2,
		Invalid:    InvalidWarn,
	}
}

// Load reads databundle.yaml from rootDir (if it exists) and merges it on top of defaults.
// If the file does not exist, defaults are returned with no error.
func Load(rootDir string) (*Config, error) {
	cfg := Default()

	cfgPath := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if fc.Output != "" {
		cfg.OutputFile = fc.Output
	}
	if fc.Extension != "" {
		cfg.Extension = fc.Extension
	}
	if fc.Variable != "" {
		cfg.Variable = fc.Variable
	}
	if fc.Header != "" {
		cfg.Header = fc.Header
	}
	if fc.Indent != nil {
		cfg.Indent = *fc.Indent
	}
	if fc.Invalid != "" {
		cfg.Invalid = InvalidBehavior(fc.Invalid)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", FileName, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot produce a usable bundle.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	if strings.TrimSpace(c.Variable) == "" {
		return fmt.Errorf("variable must not be empty")
	}
	if c.OutputFile == "" || filepath.Base(c.OutputFile) != c.OutputFile {
		return fmt.Errorf("output %q must be a plain file name", c.OutputFile)
	}
	if strings.ContainsAny(c.Header, "\r\n") {
		return fmt.Errorf("header must be a single line")
	}
	if !strings.HasPrefix(c.Header, "//") {
		return fmt.Errorf("header %q must be a // comment", c.Header)
	}
	if c.Indent < 0 || c.Indent > MaxIndent {
		return fmt.Errorf("indent %d out of range 0-%d", c.Indent, MaxIndent)
	}
	switch c.Invalid {
	case InvalidSilent, InvalidWarn, InvalidFail:
	default:
		return fmt.Errorf("invalid %q must be one of silent, warn, fail", c.Invalid)
	}
	return nil
}

// WithInvalid returns a copy of cfg with the InvalidBehavior overridden if override is non-empty.
func (c *Config) WithInvalid(override string) *Config {
	if override == "" {
		return c
	}
	copy := *c
	copy.Invalid = InvalidBehavior(override)
	return &copy
}

// DefaultRoot returns the data directory the tool serves when no root is
// given: the parent of the directory holding the running executable.
// Symlinks are resolved first so an installed link points back at its checkout.
func DefaultRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return rootFromExecutable(exe), nil
}

func rootFromExecutable(exe string) string {
	return filepath.Dir(filepath.Dir(exe))
}
