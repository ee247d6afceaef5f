package display

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edge-suite/edgebuild/pkg/builder"
	"github.com/edge-suite/edgebuild/pkg/style"
	"github.com/edge-suite/edgebuild/pkg/types"
)

// Renderer turns a build result into a display string
type Renderer interface {
	RenderResult(result *builder.Result) (string, error)
}

// NewRenderer returns the renderer for the given format. FormatAuto
// must be resolved with DetectFormat before calling.
func NewRenderer(format Format) Renderer {
	switch format {
	case FormatYAML:
		return &YAMLRenderer{}
	case FormatText:
		return &TextRenderer{}
	default:
		return &RichRenderer{}
	}
}

// RichRenderer renders with lipgloss/pterm styling for terminals
type RichRenderer struct{}

// RenderResult renders the composition header, its extracted facts and
// the collected report lines.
func (r *RichRenderer) RenderResult(result *builder.Result) (string, error) {
	var output strings.Builder

	if comp := result.Composition; comp != nil {
		output.WriteString(style.TitleStyle.Render(comp.Name) + "\n")
		for _, fact := range compositionFacts(comp) {
			output.WriteString(style.ListItemStyle.Render(
				style.MutedStyle.Render(fact.label+": ")+fact.value) + "\n")
		}
		output.WriteString(style.ListItemStyle.Render(
			style.MutedStyle.Render("project: ")+style.PathStyle.Render(result.ProjectDir)) + "\n")
		if len(result.Messages) > 0 {
			output.WriteString("\n")
		}
	}

	for _, msg := range result.Messages {
		output.WriteString(style.RenderMessage(msg) + "\n")
	}

	if !result.Success {
		output.WriteString(style.ErrorStyle.Render("Build failed") + "\n")
	}
	return output.String(), nil
}

// TextRenderer renders plain text for pipes and NO_COLOR terminals
type TextRenderer struct{}

func (r *TextRenderer) RenderResult(result *builder.Result) (string, error) {
	var output strings.Builder

	if comp := result.Composition; comp != nil {
		output.WriteString(comp.Name + "\n")
		for _, fact := range compositionFacts(comp) {
			output.WriteString("  " + fact.label + ": " + fact.value + "\n")
		}
		output.WriteString("  project: " + result.ProjectDir + "\n")
	}

	for _, msg := range result.Messages {
		output.WriteString(string(msg.Severity) + ": " + msg.Text + "\n")
	}

	if !result.Success {
		output.WriteString("Build failed\n")
	}
	return output.String(), nil
}

// YAMLRenderer encodes the result for machine consumption
type YAMLRenderer struct{}

func (r *YAMLRenderer) RenderResult(result *builder.Result) (string, error) {
	data, err := yaml.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}

type fact struct {
	label string
	value string
}

// compositionFacts lists the extracted metadata worth showing, in a
// fixed order, skipping whatever was not found.
func compositionFacts(comp *types.Composition) []fact {
	var facts []fact

	if comp.StageID != "" {
		facts = append(facts, fact{"stage", comp.StageID})
	}
	if !comp.Dimensions.IsEmpty() {
		facts = append(facts, fact{"size", renderDimensions(comp.Dimensions)})
	}
	if comp.RuntimeVersion != "" {
		facts = append(facts, fact{"runtime", comp.RuntimeVersion})
	}
	if len(comp.Libraries) > 0 {
		facts = append(facts, fact{"libraries", strings.Join(comp.Libraries, ", ")})
	}
	return facts
}

// renderDimensions shows width x height when both are set, otherwise
// whichever dimensions exist, labeled.
func renderDimensions(dims types.DimensionSet) string {
	if dims.Width.IsSet() && dims.Height.IsSet() {
		return dims.Width.String() + " x " + dims.Height.String()
	}

	var parts []string
	for _, d := range []struct {
		label string
		dim   types.Dimension
	}{
		{"width", dims.Width},
		{"height", dims.Height},
		{"min-width", dims.MinWidth},
		{"max-width", dims.MaxWidth},
		{"min-height", dims.MinHeight},
		{"max-height", dims.MaxHeight},
	} {
		if d.dim.IsSet() {
			parts = append(parts, d.label+" "+d.dim.String())
		}
	}
	return strings.Join(parts, ", ")
}
