// Package paths provides centralized path handling for edgebuild.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/edge-suite/edgebuild/pkg/errors"
)

// Environment variable names
const (
	// EnvBaseDir is the primary environment variable for the build root
	EnvBaseDir = "EDGEBUILD_BASE_DIR"

	// EnvDataDir overrides the XDG data directory for edgebuild
	EnvDataDir = "EDGEBUILD_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for edgebuild
	EnvConfigDir = "EDGEBUILD_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for edgebuild
	EnvCacheDir = "EDGEBUILD_CACHE_DIR"
)

// Fixed directory names inside the base directory. These define the
// on-disk layout shared by every edgebuild installation and are not
// user-configurable; the configurable roots live in pkg/config.
const (
	// AppDirName is the directory name for edgebuild-specific files
	AppDirName = "edgebuild"

	// ProjectsDirName holds one subdirectory per built composition
	ProjectsDirName = "projects"

	// LibraryDirName is the shared runtime library store
	LibraryDirName = "edge_includes"

	// WorkspaceDirName holds per-run temporary extraction trees
	WorkspaceDirName = "workspace"
)

// Paths provides centralized path management for edgebuild
type Paths interface {
	BaseDir() string
	ProjectsDir() string
	ProjectDir(name string) string
	LibraryStoreDir() string
	WorkspaceDir() string
	ConfigDir() string
	ConfigFilePath() string
}

type paths struct {
	baseDir   string
	xdgConfig string
	xdgCache  string
}

// New creates a new Paths instance rooted at baseDir. If baseDir is
// empty it is resolved from EDGEBUILD_BASE_DIR, falling back to the
// XDG data home.
func New(baseDir string) (Paths, error) {
	p := &paths{}

	if baseDir == "" {
		baseDir = findBaseDir()
	} else {
		baseDir = expandHome(baseDir)
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "failed to get absolute path for base directory")
	}
	p.baseDir = absBase

	p.setupXDGDirs()

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, AppDirName)
	}
}

// findBaseDir resolves the base directory from the environment,
// defaulting to the XDG data home.
func findBaseDir() string {
	if dir := os.Getenv(EnvBaseDir); dir != "" {
		return expandHome(dir)
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.DataHome, AppDirName)
}

func (p *paths) BaseDir() string {
	return p.baseDir
}

func (p *paths) ProjectsDir() string {
	return filepath.Join(p.baseDir, ProjectsDirName)
}

func (p *paths) ProjectDir(name string) string {
	return filepath.Join(p.ProjectsDir(), name)
}

func (p *paths) LibraryStoreDir() string {
	return filepath.Join(p.baseDir, LibraryDirName)
}

func (p *paths) WorkspaceDir() string {
	return filepath.Join(p.xdgCache, WorkspaceDirName)
}

func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, "edgebuild.toml")
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
