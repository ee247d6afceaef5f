package style

import (
	"github.com/pterm/pterm"

	"github.com/edge-suite/edgebuild/pkg/report"
)

// CategoryVerbs maps a report category to the verb used in rendered
// file lines.
var CategoryVerbs = map[report.Category]string{
	report.CategoryAdded:    "added to library store",
	report.CategoryUpdated:  "updated in library store",
	report.CategoryIgnored:  "ignored",
	report.CategoryObsolete: "obsolete",
}

// SeverityStyle returns the pterm style for a message severity
func SeverityStyle(sev report.Severity) *pterm.Style {
	switch sev {
	case report.SeverityWarning:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGreen)
	}
}

// SeverityPrefix returns the glyph shown before a message line
func SeverityPrefix(sev report.Severity) string {
	switch sev {
	case report.SeverityWarning:
		return "!"
	default:
		return "•"
	}
}

// RenderMessage renders one report line with its severity glyph
func RenderMessage(msg report.Message) string {
	prefix := SeverityStyle(msg.Severity).Sprint(SeverityPrefix(msg.Severity))
	return prefix + " " + msg.Text
}
