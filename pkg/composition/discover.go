// Package composition locates the composition inside an extracted
// archive tree and derives its project identity.
package composition

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/edge-suite/edgebuild/pkg/errors"
	"github.com/edge-suite/edgebuild/pkg/logging"
	"github.com/edge-suite/edgebuild/pkg/types"
)

// Filename conventions of the authoring tool's export
const (
	EntrySuffix     = "_edge.js"
	PreloaderSuffix = "_edgePreload.js"
)

// projectNameRe is the allowed character set for derived project names
var projectNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)

// Discover scans the extraction tree for entry scripts and builds the
// Composition for this run. The first entry script in lexical walk
// order is authoritative; any further candidates are returned so the
// caller can report them, they are not an error.
func Discover(fsys types.FS, root string) (*types.Composition, []string, error) {
	log := logging.GetLogger("composition")

	candidates, err := findEntryScripts(fsys, root)
	if err != nil {
		return nil, nil, err
	}
	if len(candidates) == 0 {
		return nil, nil, errors.Newf(errors.ErrNoEntryScript, "no file matching *%s found in archive", EntrySuffix)
	}

	entry := candidates[0]
	name := strings.TrimSuffix(filepath.Base(entry), EntrySuffix)
	if !projectNameRe.MatchString(name) {
		return nil, nil, errors.Newf(errors.ErrInvalidProjectName,
			"project name %q contains characters outside [A-Za-z0-9_-]", name)
	}

	comp := &types.Composition{
		Name:        name,
		WorkDir:     filepath.Dir(entry),
		EntryScript: entry,
	}

	preloader := filepath.Join(comp.WorkDir, name+PreloaderSuffix)
	if _, err := fsys.Stat(preloader); err == nil {
		comp.PreloaderScript = preloader
	}

	log.Info().
		Str("project", name).
		Str("workDir", comp.WorkDir).
		Bool("preloader", comp.HasPreloader()).
		Int("candidates", len(candidates)).
		Msg("Composition discovered")

	return comp, candidates[1:], nil
}

// findEntryScripts walks the tree depth-first in lexical order and
// collects every file ending in EntrySuffix.
func findEntryScripts(fsys types.FS, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to list %s", dir)
	}

	var found []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			nested, err := findEntryScripts(fsys, path)
			if err != nil {
				return nil, err
			}
			found = append(found, nested...)
			continue
		}
		if strings.HasSuffix(entry.Name(), EntrySuffix) {
			found = append(found, path)
		}
	}
	return found, nil
}
