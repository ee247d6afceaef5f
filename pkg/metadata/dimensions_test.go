package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edge-suite/edgebuild/pkg/testutil"
	"github.com/edge-suite/edgebuild/pkg/types"
)

func TestExtractDimensionsPretty(t *testing.T) {
	set, ok := ExtractDimensions(testutil.EntryScriptPretty("EDGE-130892332"))
	require.True(t, ok)

	assert.Equal(t, "600px", set.Width.String())
	assert.Equal(t, "280px", set.Height.String())
	assert.False(t, set.MinWidth.IsSet())
	assert.False(t, set.MaxWidth.IsSet())
	assert.False(t, set.MinHeight.IsSet())
	assert.False(t, set.MaxHeight.IsSet())
}

func TestExtractDimensionsPrettyAllKeys(t *testing.T) {
	// Key order in the source must not matter
	src := `var symbols = {
"stage": {
   states: {
      "Base State": {
         "${_Stage}": [
            ["style", "max-height", '900px'],
            ["color", "background-color", 'rgba(255,255,255,1)'],
            ["style", "height", '50%'],
            ["style", "min-width", '320px'],
            ["style", "width", '600px'],
            ["style", "min-height", '200px'],
            ["style", "max-width", '100%']
         ]
      }
   }
}
};`

	set, ok := ExtractDimensions(src)
	require.True(t, ok)

	assert.Equal(t, "600px", set.Width.String())
	assert.Equal(t, "50%", set.Height.String())
	assert.Equal(t, "320px", set.MinWidth.String())
	assert.Equal(t, "100%", set.MaxWidth.String())
	assert.Equal(t, "200px", set.MinHeight.String())
	assert.Equal(t, "900px", set.MaxHeight.String())
}

func TestExtractDimensionsPrettyIgnoresOtherSymbols(t *testing.T) {
	// Triples outside the stage block must not leak in
	src := `"${_Stage}": [
            ["style", "width", '600px']
         ],
         "${_bg}": [
            ["style", "height", '40px']
         ]`

	set, ok := ExtractDimensions(src)
	require.True(t, ok)

	assert.Equal(t, "600px", set.Width.String())
	assert.False(t, set.Height.IsSet())
}

func TestExtractDimensionsMinified(t *testing.T) {
	set, ok := ExtractDimensions(testutil.EntryScriptMinified("EDGE-130892332"))
	require.True(t, ok)

	assert.Equal(t, "600px", set.Width.String())
	assert.Equal(t, "280px", set.Height.String())
	// The minified encoding never sets the min/max variants
	assert.False(t, set.MinWidth.IsSet())
	assert.False(t, set.MaxWidth.IsSet())
	assert.False(t, set.MinHeight.IsSet())
	assert.False(t, set.MaxHeight.IsSet())
}

func TestExtractDimensionsMinifiedPercent(t *testing.T) {
	src := `var A7="${_Stage}";e.An(A7,[0,0]).P(h,100,f,f,"%").P(w,50,f,f,'%').c();`

	set, ok := ExtractDimensions(src)
	require.True(t, ok)

	assert.Equal(t, types.UnitPercent, set.Height.Unit)
	assert.Equal(t, "100", set.Height.Value)
	assert.Equal(t, "50%", set.Width.String())
}

func TestExtractDimensionsMinifiedUnknownMarkerSkipped(t *testing.T) {
	src := `var A7="${_Stage}";e.An(A7,[0,0]).P(h,280,f,f,'em').P(w,600).c();`

	set, ok := ExtractDimensions(src)
	require.True(t, ok)

	assert.False(t, set.Height.IsSet(), "unknown unit marker must skip the entry")
	assert.Equal(t, "600px", set.Width.String())
}

func TestExtractDimensionsNoEncoding(t *testing.T) {
	set, ok := ExtractDimensions(`var x = 1; // nothing stage-like here`)

	assert.False(t, ok)
	assert.True(t, set.IsEmpty())
}

func TestExtractDimensionsPrettyWinsOverMinified(t *testing.T) {
	// Both encodings present: the pretty extractor is attempted first
	src := `"${_Stage}": [
            ["style", "width", '640px']
         ]
         var B2="${_Stage}";e.An(B2).P(w,999).c();`

	set, ok := ExtractDimensions(src)
	require.True(t, ok)

	assert.Equal(t, "640px", set.Width.String())
}
