package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edge-suite/edgebuild/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "publish", cfg.ExcludedPrefix)
	assert.True(t, cfg.AllowsExtension("png"))
	assert.True(t, cfg.AllowsExtension(".js"))
	assert.False(t, cfg.AllowsExtension("html"))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "edgebuild.toml"))
	require.NoError(t, err)

	assert.Equal(t, Default().ExcludedPrefix, cfg.ExcludedPrefix)
	assert.Equal(t, Default().AllowedExtensions, cfg.AllowedExtensions)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edgebuild.toml")
	content := `
base_dir = "/srv/edge"
allowed_extensions = ["png", "js"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/edge", cfg.BaseDir)
	assert.Equal(t, []string{"png", "js"}, cfg.AllowedExtensions)
	// Untouched keys keep their defaults
	assert.Equal(t, "publish", cfg.ExcludedPrefix)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edgebuild.toml")
	require.NoError(t, os.WriteFile(path, []byte("allowed_extensions = {"), 0644))

	_, err := Load(path)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edgebuild.toml")
	require.NoError(t, os.WriteFile(path, []byte(`base_dir = "/from/file"`), 0644))
	t.Setenv("EDGEBUILD_BASE_DIR", "/from/env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.BaseDir)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.AllowedExtensions = nil
	assert.True(t, errors.IsErrorCode(cfg.Validate(), errors.ErrConfigInvalid))

	cfg = Default()
	cfg.AllowedExtensions = []string{".png"}
	assert.True(t, errors.IsErrorCode(cfg.Validate(), errors.ErrConfigInvalid))

	cfg = Default()
	cfg.ExcludedPrefix = "../escape"
	assert.True(t, errors.IsErrorCode(cfg.Validate(), errors.ErrConfigInvalid))
}

func TestAllowsExtensionCaseInsensitive(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.AllowsExtension("PNG"))
	assert.True(t, cfg.AllowsExtension(".JPeG"))
}
