package metadata

import (
	"regexp"

	"github.com/edge-suite/edgebuild/pkg/errors"
)

// stageIDRe anchors the trailing invocation of the entry script's
// wrapper: })(<jqueryRef>, AdobeEdge, "<identifier>"). The jQuery
// reference is spelled either "jQuery" or "$" depending on the
// authoring tool version.
var stageIDRe = regexp.MustCompile(`\}\)\s*\(\s*(?:jQuery|\$)\s*,\s*AdobeEdge\s*,\s*"([^"]+)"\s*\)`)

// ExtractStageID returns the composition identifier embedded in the
// entry script's closing invocation. Downstream rewriting depends on
// it, so failure to match is fatal.
func ExtractStageID(src string) (string, error) {
	matches := stageIDRe.FindAllStringSubmatch(src, -1)
	if len(matches) == 0 {
		return "", errors.New(errors.ErrStageIDNotFound, "entry script carries no stage identifier invocation")
	}
	// The wrapper invocation closes the script; take the last match in
	// case an embedded string earlier in the body happens to look alike.
	return matches[len(matches)-1][1], nil
}
