// Package config loads the harness configuration file, which declares where
// fixtures live and which checks are known to diverge.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bitshepherds/conform/internal/harness"
)

// HarnessConfigFile is the default configuration file name, looked up in the
// working directory when no --config flag is given.
const HarnessConfigFile = "conform.yml"

// Config declares the fixture locations and the known-failure table.
// Relative paths are resolved against the config file's directory.
type Config struct {
	DataDir     string   `yaml:"dataDir"`
	SchemaDir   string   `yaml:"schemaDir"`
	DataFiles   []string `yaml:"dataFiles"`
	SchemaFiles []string `yaml:"schemaFiles"`

	Fudge harness.FudgeTable `yaml:"fudge"`

	baseDir string
}

// New reads and validates the configuration at the given path.
func New(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingConfigError{Path: path}
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &InvalidYAMLError{Path: path, Wrapped: err}
	}

	cfg.baseDir = filepath.Dir(path)
	return &cfg, nil
}

// DataFixturePaths resolves the configured data fixture files, sorted for a
// deterministic load order.
func (c *Config) DataFixturePaths() ([]string, error) {
	return c.fixturePaths(c.DataDir, c.DataFiles)
}

// SchemaFixturePaths resolves the configured schema fixture files, sorted for
// a deterministic load order.
func (c *Config) SchemaFixturePaths() ([]string, error) {
	return c.fixturePaths(c.SchemaDir, c.SchemaFiles)
}

func (c *Config) fixturePaths(dir string, files []string) ([]string, error) {
	var paths []string

	if dir != "" {
		matches, err := filepath.Glob(filepath.Join(c.resolve(dir), "*.json"))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	for _, f := range files {
		paths = append(paths, c.resolve(f))
	}

	sort.Strings(paths)
	return paths, nil
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.baseDir == "" {
		return path
	}
	return filepath.Join(c.baseDir, path)
}
