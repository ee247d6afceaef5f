package metadata

import (
	"path/filepath"
	"regexp"

	"github.com/edge-suite/edgebuild/pkg/errors"
	"github.com/edge-suite/edgebuild/pkg/logging"
	"github.com/edge-suite/edgebuild/pkg/types"
)

// runtimeURLRe matches the runtime include reference inside the
// exported companion document.
var runtimeURLRe = regexp.MustCompile(`edge_includes/edge\.(\d+\.\d+\.\d+)(?:\.min)?\.js`)

// ExtractRuntimeVersion scans document text for the runtime include
// URL and returns its three-part version, or "" when absent.
func ExtractRuntimeVersion(doc string) string {
	m := runtimeURLRe.FindStringSubmatch(doc)
	if m == nil {
		return ""
	}
	return m[1]
}

// RuntimeVersionFromCompanion reads the composition's companion
// document (<name>.html next to the entry script) and extracts the
// runtime version from it. A missing companion file is fatal; a
// companion without the version pattern is not, the version just
// stays empty.
func RuntimeVersionFromCompanion(fsys types.FS, comp *types.Composition) (string, error) {
	log := logging.GetLogger("metadata")

	path := filepath.Join(comp.WorkDir, comp.Name+".html")
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrCompanionMissing, "companion document %s not readable", path)
	}

	version := ExtractRuntimeVersion(string(data))
	if version == "" {
		log.Warn().Str("path", path).Msg("Companion document carries no runtime version")
	}
	return version, nil
}
