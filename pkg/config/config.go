// Package config holds the user-configurable settings for edgebuild.
//
// Settings come from three layers, later layers winning: compiled
// defaults, an optional TOML file, and EDGEBUILD_* environment
// variables for the directory roots.
package config

import (
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/edge-suite/edgebuild/pkg/errors"
	"github.com/edge-suite/edgebuild/pkg/logging"
)

var log = logging.GetLogger("config")

// Config represents the edgebuild configuration
type Config struct {
	// BaseDir is the writable root under which projects and the shared
	// library store live. Empty means the XDG default from pkg/paths.
	BaseDir string `toml:"base_dir"`

	// AllowedExtensions lists the asset file extensions (without dot,
	// case insensitive) that the relocator moves into the project
	// directory. Everything else is left behind and reported.
	AllowedExtensions []string `toml:"allowed_extensions"`

	// ExcludedPrefix names the subtree of the composition working
	// directory that is never relocated nor reported.
	ExcludedPrefix string `toml:"excluded_prefix"`

	// LibraryDir overrides the shared library store location.
	// Empty means <base_dir>/edge_includes.
	LibraryDir string `toml:"library_dir"`
}

// Default returns the compiled default configuration
func Default() *Config {
	return &Config{
		AllowedExtensions: []string{
			"jpg", "jpeg", "png", "gif", "svg",
			"js", "json", "css", "woff", "ttf",
		},
		ExcludedPrefix: "publish",
	}
}

// Load reads the configuration file at path merged over the defaults.
// A missing file is not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("No config file, using defaults")
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to parse TOML in %s", path)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Int("allowed_extensions", len(cfg.AllowedExtensions)).
		Msg("Config loaded")

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot work with
func (c *Config) Validate() error {
	if len(c.AllowedExtensions) == 0 {
		return errors.New(errors.ErrConfigInvalid, "allowed_extensions must not be empty")
	}
	for _, ext := range c.AllowedExtensions {
		if strings.ContainsAny(ext, "./\\") {
			return errors.Newf(errors.ErrConfigInvalid, "allowed extension %q must be a bare extension without dot or path separators", ext)
		}
	}
	if strings.Contains(c.ExcludedPrefix, "..") {
		return errors.Newf(errors.ErrConfigInvalid, "excluded_prefix %q must not traverse upwards", c.ExcludedPrefix)
	}
	return nil
}

// AllowsExtension reports whether the given extension (with or without
// leading dot) is in the relocation allow-list.
func (c *Config) AllowsExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range c.AllowedExtensions {
		if strings.ToLower(allowed) == ext {
			return true
		}
	}
	return false
}

// applyEnv overlays environment overrides for the directory roots
func applyEnv(cfg *Config) {
	if dir := os.Getenv("EDGEBUILD_BASE_DIR"); dir != "" {
		cfg.BaseDir = dir
	}
	if dir := os.Getenv("EDGEBUILD_LIBRARY_DIR"); dir != "" {
		cfg.LibraryDir = dir
	}
}
