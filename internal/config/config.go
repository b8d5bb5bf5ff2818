// Package config loads the corpus-level harness configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up at the corpus root.
const FileName = "gild.yaml"

// Config describes how to run the subject tool over a corpus. Zero values
// fall back to defaults; CLI flags override loaded values.
type Config struct {
	// Tool is the subject tool binary, resolved via PATH when relative.
	Tool string `yaml:"tool"`

	// Args are base arguments prepended to every invocation.
	Args []string `yaml:"args"`

	// Extensions lists test source extensions, e.g. [".sg"].
	Extensions []string `yaml:"extensions"`

	// GoldenDir holds expectation files when set; empty keeps them next
	// to the test sources.
	GoldenDir string `yaml:"goldenDir"`

	// VendorPrefixes are corpus-relative path prefixes whose line:column
	// coordinates are scrubbed during normalization.
	VendorPrefixes []string `yaml:"vendorPrefixes"`

	// Timeout is the default per-execution timeout.
	Timeout time.Duration `yaml:"timeout"`

	// Parallel is the worker count; zero means GOMAXPROCS.
	Parallel int `yaml:"parallel"`
}

// UnmarshalYAML decodes the config, accepting timeout as a Go duration
// string ("30s", "2m").
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type raw struct {
		Tool           string   `yaml:"tool"`
		Args           []string `yaml:"args"`
		Extensions     []string `yaml:"extensions"`
		GoldenDir      string   `yaml:"goldenDir"`
		VendorPrefixes []string `yaml:"vendorPrefixes"`
		Timeout        string   `yaml:"timeout"`
		Parallel       int      `yaml:"parallel"`
	}

	var r raw
	if err := value.Decode(&r); err != nil {
		return err
	}

	c.Tool = r.Tool
	c.Args = r.Args
	c.Extensions = r.Extensions
	c.GoldenDir = r.GoldenDir
	c.VendorPrefixes = r.VendorPrefixes
	c.Parallel = r.Parallel

	if r.Timeout != "" {
		d, err := time.ParseDuration(r.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}

		c.Timeout = d
	}

	return nil
}

// Default returns the configuration used when no gild.yaml exists.
func Default() Config {
	return Config{
		Extensions: []string{".sg"},
		Timeout:    30 * time.Second,
	}
}

// Load reads gild.yaml from root, returning defaults when the file is
// absent. A present-but-malformed file is an error, never silently ignored.
func Load(root string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(filepath.Join(root, FileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = Default().Extensions
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = Default().Timeout
	}

	return cfg, nil
}
