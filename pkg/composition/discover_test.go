package composition

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edge-suite/edgebuild/pkg/errors"
	"github.com/edge-suite/edgebuild/pkg/filesystem"
	"github.com/edge-suite/edgebuild/pkg/testutil"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	entry := testutil.CreateFile(t, root, "demo_edge.js", "entry")
	testutil.CreateFile(t, root, "demo_edgePreload.js", "preload")
	testutil.CreateFile(t, root, "assets/bg.png", "png")

	comp, extra, err := Discover(filesystem.NewOS(), root)
	require.NoError(t, err)

	assert.Equal(t, "demo", comp.Name)
	assert.Equal(t, entry, comp.EntryScript)
	assert.Equal(t, root, comp.WorkDir)
	assert.Equal(t, filepath.Join(root, "demo_edgePreload.js"), comp.PreloaderScript)
	assert.Empty(t, extra)
}

func TestDiscoverNestedEntryScript(t *testing.T) {
	root := t.TempDir()
	entry := testutil.CreateFile(t, root, "export/demo_edge.js", "entry")
	testutil.CreateFile(t, root, "readme.txt", "hi")

	comp, _, err := Discover(filesystem.NewOS(), root)
	require.NoError(t, err)

	assert.Equal(t, "demo", comp.Name)
	assert.Equal(t, entry, comp.EntryScript)
	assert.Equal(t, filepath.Join(root, "export"), comp.WorkDir)
	assert.False(t, comp.HasPreloader())
}

func TestDiscoverNoEntryScript(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "assets/bg.png", "png")
	// The preloader suffix alone must not qualify as an entry script
	testutil.CreateFile(t, root, "demo_edgePreload.js", "preload")

	_, _, err := Discover(filesystem.NewOS(), root)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoEntryScript))
}

func TestDiscoverMultipleEntryScriptsFirstWins(t *testing.T) {
	root := t.TempDir()
	first := testutil.CreateFile(t, root, "a/alpha_edge.js", "entry")
	second := testutil.CreateFile(t, root, "b/beta_edge.js", "entry")

	comp, extra, err := Discover(filesystem.NewOS(), root)
	require.NoError(t, err)

	assert.Equal(t, "alpha", comp.Name)
	assert.Equal(t, first, comp.EntryScript)
	assert.Equal(t, []string{second}, extra)
}

func TestDiscoverInvalidProjectName(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "bad name_edge.js", "entry")

	_, _, err := Discover(filesystem.NewOS(), root)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidProjectName))
}

func TestDiscoverDerivedNames(t *testing.T) {
	tests := []struct {
		file string
		name string
	}{
		{"demo_edge.js", "demo"},
		{"My-Comp_2_edge.js", "My-Comp_2"},
		{"_edge.js", ""},
	}

	for _, tt := range tests {
		root := t.TempDir()
		testutil.CreateFile(t, root, tt.file, "entry")

		comp, _, err := Discover(filesystem.NewOS(), root)
		require.NoError(t, err, tt.file)
		assert.Equal(t, tt.name, comp.Name, tt.file)
	}
}
