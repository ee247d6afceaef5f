package assets

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edge-suite/edgebuild/pkg/config"
	"github.com/edge-suite/edgebuild/pkg/filesystem"
	"github.com/edge-suite/edgebuild/pkg/report"
	"github.com/edge-suite/edgebuild/pkg/testutil"
	"github.com/edge-suite/edgebuild/pkg/types"
)

func setup(t *testing.T) (*types.Composition, string) {
	t.Helper()
	tempDir := t.TempDir()
	comp := &types.Composition{
		Name:    "demo",
		WorkDir: testutil.CreateDir(t, tempDir, "work"),
	}
	return comp, testutil.CreateDir(t, tempDir, "dest")
}

func TestRelocatePreservesRelativePaths(t *testing.T) {
	comp, dest := setup(t)
	testutil.CreateFile(t, comp.WorkDir, "a/b/c.png", "png")
	testutil.CreateFile(t, comp.WorkDir, "demo_edge.js", "entry")

	err := Relocate(filesystem.NewOS(), comp, dest, config.Default())
	require.NoError(t, err)

	assert.Equal(t, "png", testutil.ReadFile(t, filepath.Join(dest, "a", "b", "c.png")))
	assert.Equal(t, "entry", testutil.ReadFile(t, filepath.Join(dest, "demo_edge.js")))
	assert.False(t, testutil.FileExists(t, filepath.Join(comp.WorkDir, "a", "b", "c.png")))
}

func TestRelocateSkipsExcludedSubtree(t *testing.T) {
	comp, dest := setup(t)
	testutil.CreateFile(t, comp.WorkDir, "publish/web/demo.png", "published")
	testutil.CreateFile(t, comp.WorkDir, "assets/bg.png", "png")

	err := Relocate(filesystem.NewOS(), comp, dest, config.Default())
	require.NoError(t, err)

	assert.False(t, testutil.FileExists(t, filepath.Join(dest, "publish", "web", "demo.png")))
	assert.True(t, testutil.FileExists(t, filepath.Join(comp.WorkDir, "publish", "web", "demo.png")))
	assert.True(t, testutil.FileExists(t, filepath.Join(dest, "assets", "bg.png")))
}

func TestRelocateLeavesDisallowedExtensions(t *testing.T) {
	comp, dest := setup(t)
	testutil.CreateFile(t, comp.WorkDir, "demo.html", "<html/>")
	testutil.CreateFile(t, comp.WorkDir, "demo.edge", "project file")
	testutil.CreateFile(t, comp.WorkDir, "bg.png", "png")

	err := Relocate(filesystem.NewOS(), comp, dest, config.Default())
	require.NoError(t, err)

	assert.True(t, testutil.FileExists(t, filepath.Join(comp.WorkDir, "demo.html")))
	assert.True(t, testutil.FileExists(t, filepath.Join(comp.WorkDir, "demo.edge")))
	assert.False(t, testutil.FileExists(t, filepath.Join(dest, "demo.html")))
	assert.True(t, testutil.FileExists(t, filepath.Join(dest, "bg.png")))
}

func TestLeftoversClassification(t *testing.T) {
	comp, _ := setup(t)
	testutil.CreateFile(t, comp.WorkDir, "demo.edge", "project file")
	testutil.CreateFile(t, comp.WorkDir, "demo.html", "<html/>")
	testutil.CreateFile(t, comp.WorkDir, "notes.txt", "scratch")
	testutil.CreateFile(t, comp.WorkDir, "publish/out.html", "published")

	rep := report.New()
	err := Leftovers(filesystem.NewOS(), comp, config.Default(), rep)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"demo.edge", "demo.html"}, rep.Files(report.CategoryObsolete))
	assert.Equal(t, []string{"notes.txt"}, rep.Files(report.CategoryIgnored))
}

func TestExcluded(t *testing.T) {
	sep := string(filepath.Separator)

	assert.True(t, excluded("publish", "publish"))
	assert.True(t, excluded("publish"+sep+"web"+sep+"a.png", "publish"))
	assert.False(t, excluded("published"+sep+"a.png", "publish"))
	assert.False(t, excluded("assets"+sep+"publish.png", "publish"))
	assert.False(t, excluded("a.png", ""))
}
