package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edge-suite/edgebuild/pkg/errors"
	"github.com/edge-suite/edgebuild/pkg/filesystem"
	"github.com/edge-suite/edgebuild/pkg/testutil"
	"github.com/edge-suite/edgebuild/pkg/types"
)

func TestExtractRuntimeVersion(t *testing.T) {
	assert.Equal(t, "0.5.4", ExtractRuntimeVersion(testutil.CompanionDocument("0.5.4")))
	assert.Equal(t, "1.0.0", ExtractRuntimeVersion(`src="edge_includes/edge.1.0.0.js"`))
	assert.Equal(t, "", ExtractRuntimeVersion(`<html><body>no runtime here</body></html>`))
	assert.Equal(t, "", ExtractRuntimeVersion(`src="other_includes/edge.1.0.0.js" oops`+"\n"))
}

func TestRuntimeVersionFromCompanion(t *testing.T) {
	workDir := t.TempDir()
	testutil.CreateFile(t, workDir, "demo.html", testutil.CompanionDocument("0.5.4"))
	comp := &types.Composition{Name: "demo", WorkDir: workDir}

	version, err := RuntimeVersionFromCompanion(filesystem.NewOS(), comp)
	require.NoError(t, err)
	assert.Equal(t, "0.5.4", version)
}

func TestRuntimeVersionFromCompanionMissingFile(t *testing.T) {
	comp := &types.Composition{Name: "demo", WorkDir: t.TempDir()}

	_, err := RuntimeVersionFromCompanion(filesystem.NewOS(), comp)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCompanionMissing))
}

func TestRuntimeVersionFromCompanionNoPattern(t *testing.T) {
	workDir := t.TempDir()
	testutil.CreateFile(t, workDir, "demo.html", "<html></html>")
	comp := &types.Composition{Name: "demo", WorkDir: workDir}

	version, err := RuntimeVersionFromCompanion(filesystem.NewOS(), comp)
	require.NoError(t, err)
	assert.Equal(t, "", version)
}
