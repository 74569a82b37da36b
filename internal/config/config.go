// Package config loads workspace settings from .urscript-lsp.yaml, a .env
// file and URSCRIPT_LSP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jarredhawkins/urscript-lsp/internal/format"
	"github.com/jarredhawkins/urscript-lsp/internal/source"
	"github.com/jarredhawkins/urscript-lsp/internal/workspace"
)

const (
	FileName = ".urscript-lsp.yaml"
	EnvFile  = ".env"

	EnvTabSize         = "URSCRIPT_LSP_TAB_SIZE"
	EnvStreamThreshold = "URSCRIPT_LSP_STREAM_THRESHOLD"
	EnvCatalogs        = "URSCRIPT_LSP_CATALOGS"
)

// Config is the resolved workspace configuration
type Config struct {
	ScriptExtensions   []string `yaml:"script_extensions" json:"script_extensions"`
	VariableExtensions []string `yaml:"variable_extensions" json:"variable_extensions"`
	IgnoreDirs         []string `yaml:"ignore_dirs" json:"ignore_dirs"`
	StreamThreshold    int64    `yaml:"stream_threshold" json:"stream_threshold"`
	ChunkSize          int      `yaml:"chunk_size" json:"chunk_size"`
	TabSize            int      `yaml:"tab_size" json:"tab_size"`
	InsertSpaces       bool     `yaml:"insert_spaces" json:"insert_spaces"`
	Catalogs           []string `yaml:"catalogs,omitempty" json:"catalogs,omitempty"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		ScriptExtensions:   append([]string(nil), workspace.DefaultScriptExts...),
		VariableExtensions: append([]string(nil), workspace.DefaultVariableExts...),
		IgnoreDirs:         append([]string(nil), workspace.DefaultIgnoreDirs...),
		StreamThreshold:    source.DefaultStreamThreshold,
		ChunkSize:          source.DefaultChunkSize,
		TabSize:            format.DefaultTabSize,
		InsertSpaces:       true,
	}
}

// Path returns the config file location for a workspace root
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads the config for root. A missing file yields defaults. Values
// from the environment, including a .env file at root, override the file.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(root))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", Path(root), err)
		}
	}

	// existing environment variables win over .env entries
	_ = godotenv.Load(filepath.Join(root, EnvFile))

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvTabSize)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTabSize, err)
		}
		c.TabSize = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvStreamThreshold)); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvStreamThreshold, err)
		}
		c.StreamThreshold = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvCatalogs)); v != "" {
		c.Catalogs = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Catalogs = append(c.Catalogs, p)
			}
		}
	}
	return nil
}

func (c *Config) normalize() {
	if c.TabSize <= 0 {
		c.TabSize = format.DefaultTabSize
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = source.DefaultChunkSize
	}
	if c.StreamThreshold < 0 {
		c.StreamThreshold = source.DefaultStreamThreshold
	}
	c.ScriptExtensions = normalizeExts(c.ScriptExtensions)
	c.VariableExtensions = normalizeExts(c.VariableExtensions)
}

// normalizeExts makes every extension start with a dot
func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// CatalogPaths resolves catalog entries against root
func (c *Config) CatalogPaths(root string) []string {
	paths := make([]string, len(c.Catalogs))
	for i, p := range c.Catalogs {
		if filepath.IsAbs(p) {
			paths[i] = p
		} else {
			paths[i] = filepath.Join(root, p)
		}
	}
	return paths
}

// FormatOptions returns the formatter settings
func (c *Config) FormatOptions() format.Options {
	return format.Options{TabSize: c.TabSize, InsertSpaces: c.InsertSpaces}
}

// Walker returns a workspace walker for root using the configured
// extensions and ignored directories
func (c *Config) Walker(root string) *workspace.Walker {
	w := workspace.NewWalker(root)
	w.ScriptExts = c.ScriptExtensions
	w.VariableExts = c.VariableExtensions
	w.IgnoreDirs = c.IgnoreDirs
	return w
}
