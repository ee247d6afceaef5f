package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/edge-suite/edgebuild/pkg/builder"
	"github.com/edge-suite/edgebuild/pkg/report"
	"github.com/edge-suite/edgebuild/pkg/types"
)

func sampleResult() *builder.Result {
	return &builder.Result{
		Success:    true,
		ProjectDir: "/data/projects/demo",
		Composition: &types.Composition{
			Name:           "demo",
			StageID:        "EDGE-130892332",
			RuntimeVersion: "0.5.4",
			Libraries:      []string{"edge.0.5.4.min.js"},
			Dimensions: types.DimensionSet{
				Width:  types.Dimension{Value: "600", Unit: types.UnitPixel},
				Height: types.Dimension{Value: "280", Unit: types.UnitPixel},
			},
		},
		Messages: []report.Message{
			{Severity: report.SeverityStatus, Text: "Added files: edge.0.5.4.min.js"},
			{Severity: report.SeverityWarning, Text: "Obsolete files: demo.html"},
		},
	}
}

func TestTextRenderer(t *testing.T) {
	out, err := (&TextRenderer{}).RenderResult(sampleResult())
	require.NoError(t, err)

	assert.Contains(t, out, "demo\n")
	assert.Contains(t, out, "stage: EDGE-130892332")
	assert.Contains(t, out, "size: 600px x 280px")
	assert.Contains(t, out, "runtime: 0.5.4")
	assert.Contains(t, out, "libraries: edge.0.5.4.min.js")
	assert.Contains(t, out, "project: /data/projects/demo")
	assert.Contains(t, out, "status: Added files: edge.0.5.4.min.js")
	assert.Contains(t, out, "warning: Obsolete files: demo.html")
	assert.NotContains(t, out, "Build failed")
}

func TestTextRendererFailure(t *testing.T) {
	result := &builder.Result{
		Messages: []report.Message{
			{Severity: report.SeverityWarning, Text: "no entry script found"},
		},
	}
	out, err := (&TextRenderer{}).RenderResult(result)
	require.NoError(t, err)

	assert.Contains(t, out, "Build failed")
	assert.NotContains(t, out, "project:")
}

func TestRichRendererIncludesMessages(t *testing.T) {
	out, err := (&RichRenderer{}).RenderResult(sampleResult())
	require.NoError(t, err)

	assert.Contains(t, out, "demo")
	assert.Contains(t, out, "Obsolete files: demo.html")
}

func TestYAMLRendererRoundTrip(t *testing.T) {
	out, err := (&YAMLRenderer{}).RenderResult(sampleResult())
	require.NoError(t, err)

	var decoded builder.Result
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.True(t, decoded.Success)
	assert.Equal(t, "demo", decoded.Composition.Name)
	assert.Len(t, decoded.Messages, 2)
}

func TestRenderDimensionsPartial(t *testing.T) {
	dims := types.DimensionSet{
		Width:    types.Dimension{Value: "100", Unit: types.UnitPercent},
		MinWidth: types.Dimension{Value: "320", Unit: types.UnitPixel},
	}
	assert.Equal(t, "width 100%, min-width 320px", renderDimensions(dims))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatAuto},
		{"auto", FormatAuto},
		{"term", FormatTerminal},
		{"TEXT", FormatText},
		{"yaml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown format"))
}

func TestNewRenderer(t *testing.T) {
	assert.IsType(t, &YAMLRenderer{}, NewRenderer(FormatYAML))
	assert.IsType(t, &TextRenderer{}, NewRenderer(FormatText))
	assert.IsType(t, &RichRenderer{}, NewRenderer(FormatTerminal))
}
