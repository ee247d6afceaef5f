// Package metadata extracts structured facts from the generated
// composition scripts: stage dimensions, the stage identifier and the
// runtime version. The scripts come in two encodings, pretty-printed
// and build-time minified, each handled by its own extractor; the
// extractors are attempted in a fixed order and the first success wins.
package metadata

import (
	"regexp"

	"github.com/edge-suite/edgebuild/pkg/logging"
	"github.com/edge-suite/edgebuild/pkg/types"
)

var (
	// prettyBlockStartRe anchors the pretty-printed stage style block
	prettyBlockStartRe = regexp.MustCompile(`"\$\{_Stage\}"\s*:\s*\[`)

	// prettyTripleRe matches one ["style", "<key>", '<number><unit>'] triple
	prettyTripleRe = regexp.MustCompile(`\[\s*"style"\s*,\s*"(min-width|max-width|min-height|max-height|width|height)"\s*,\s*'(\d+(?:\.\d+)?)(px|%)'\s*\]`)

	// minifiedStageVarRe finds the short variable bound to the stage sentinel
	minifiedStageVarRe = regexp.MustCompile(`([A-Za-z]\d+)\s*=\s*"\$\{_Stage\}"`)

	// minifiedPropRe matches one chained property-set call: the 2-argument
	// pixel form P(k,v) or the 5-argument form P(k,v,_,_,unit)
	minifiedPropRe = regexp.MustCompile(`\.P\(\s*['"]?([wh])['"]?\s*,\s*(\d+(?:\.\d+)?)\s*(?:,\s*[^,()]*,\s*[^,()]*,\s*['"]?([^'",)]+)['"]?[^)]*)?\)`)
)

// ExtractDimensions parses the stage dimensions out of an entry
// script. The pretty encoding is attempted first, then the minified
// one; the bool result reports whether either produced a value.
// Failure is not fatal, the caller downgrades it to a warning.
func ExtractDimensions(src string) (types.DimensionSet, bool) {
	log := logging.GetLogger("metadata")

	if set, ok := extractPretty(src); ok {
		log.Debug().Str("encoding", "pretty").Msg("Dimensions extracted")
		return set, true
	}
	if set, ok := extractMinified(src); ok {
		log.Debug().Str("encoding", "minified").Msg("Dimensions extracted")
		return set, true
	}

	log.Debug().Msg("No dimension encoding matched")
	return types.DimensionSet{}, false
}

// extractPretty handles the uncompressed export: a stage block keyed by
// the sentinel containing repeated style triples.
func extractPretty(src string) (types.DimensionSet, bool) {
	loc := prettyBlockStartRe.FindStringIndex(src)
	if loc == nil {
		return types.DimensionSet{}, false
	}

	block := bracketBlock(src[loc[1]:])
	if block == "" {
		return types.DimensionSet{}, false
	}

	var set types.DimensionSet
	matched := false
	for _, m := range prettyTripleRe.FindAllStringSubmatch(block, -1) {
		if assignDimension(&set, m[1], m[2], types.Unit(m[3])) {
			matched = true
		}
	}
	return set, matched
}

// extractMinified handles the compressed export: the stage sentinel is
// bound to a short variable and dimensions are set through a chained
// call expression anchored on it. Only the w/h keys exist in this
// encoding; the min/max variants never appear in minified exports.
func extractMinified(src string) (types.DimensionSet, bool) {
	varMatch := minifiedStageVarRe.FindStringSubmatch(src)
	if varMatch == nil {
		return types.DimensionSet{}, false
	}

	chainRe := regexp.MustCompile(`[\w$]+\(\s*` + regexp.QuoteMeta(varMatch[1]) + `\b[^;]*;`)
	chain := chainRe.FindString(src)
	if chain == "" {
		return types.DimensionSet{}, false
	}

	var set types.DimensionSet
	matched := false
	for _, m := range minifiedPropRe.FindAllStringSubmatch(chain, -1) {
		unit, ok := minifiedUnit(m[3])
		if !ok {
			continue
		}
		key := m[1]
		switch key {
		case "w":
			key = "width"
		case "h":
			key = "height"
		}
		if assignDimension(&set, key, m[2], unit) {
			matched = true
		}
	}
	return set, matched
}

// minifiedUnit maps the unit marker of the 5-argument form; the
// 2-argument form carries no marker and defaults to pixels. Unknown
// markers cause the entry to be skipped.
func minifiedUnit(marker string) (types.Unit, bool) {
	switch marker {
	case "":
		return types.UnitPixel, true
	case "%":
		return types.UnitPercent, true
	case "p":
		return types.UnitPixel, true
	default:
		return "", false
	}
}

// assignDimension stores value/unit under the named dimension key
func assignDimension(set *types.DimensionSet, key, value string, unit types.Unit) bool {
	dim := types.Dimension{Value: value, Unit: unit}
	switch key {
	case "width":
		set.Width = dim
	case "height":
		set.Height = dim
	case "min-width":
		set.MinWidth = dim
	case "max-width":
		set.MaxWidth = dim
	case "min-height":
		set.MinHeight = dim
	case "max-height":
		set.MaxHeight = dim
	default:
		return false
	}
	return true
}

// bracketBlock returns the text up to the bracket matching an already
// consumed opening bracket. The stage block nests style triples, so a
// depth count is needed; generated code never embeds brackets in the
// style strings this scans over.
func bracketBlock(src string) string {
	depth := 1
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return src[:i]
			}
		}
	}
	return ""
}
