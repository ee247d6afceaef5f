package libraries

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/edge-suite/edgebuild/pkg/logging"
	"github.com/edge-suite/edgebuild/pkg/report"
	"github.com/edge-suite/edgebuild/pkg/types"
)

// FolderName is the libraries subfolder inside the composition export
const FolderName = "edge_includes"

// libVersionRe matches the versioned runtime library naming convention
var libVersionRe = regexp.MustCompile(`^edge\.(\d+\.\d+\.\d+)(?:\.min)?\.js$`)

// locker is implemented by stores that serialize cross-process access
type locker interface {
	Lock() error
	Unlock() error
}

// Reconcile deduplicates the composition's bundled libraries against
// the shared store. Policy per file: with overwrite the store copy is
// replaced ("updated") or the file is installed ("added"); without
// overwrite an already-stored file causes the incoming copy to be
// discarded ("ignored"), otherwise it is installed ("added"). Every
// processed filename lands in the composition's library list, and the
// first versioned library filename fixes the runtime version. Move
// failures are reported and skipped, never fatal.
func Reconcile(fsys types.FS, comp *types.Composition, store Store, overwrite bool, rep *report.Report) error {
	log := logging.GetLogger("libraries")

	libDir := filepath.Join(comp.WorkDir, FolderName)
	entries, err := fsys.ReadDir(libDir)
	if err != nil {
		// An export without a libraries folder has nothing to reconcile
		log.Debug().Str("dir", libDir).Msg("No libraries folder in composition")
		return nil
	}

	if l, ok := store.(locker); ok {
		if err := l.Lock(); err != nil {
			return err
		}
		defer func() { _ = l.Unlock() }()
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".js") {
			continue
		}
		name := entry.Name()
		src := filepath.Join(libDir, name)

		comp.Libraries = append(comp.Libraries, name)
		inferVersion(comp, name)

		exists, err := store.Contains(name)
		if err != nil {
			rep.Warning("Library %s skipped: %v", name, err)
			continue
		}

		switch {
		case exists && !overwrite:
			if err := fsys.Remove(src); err != nil {
				rep.Warning("Library %s could not be discarded: %v", name, err)
				continue
			}
			rep.File(report.CategoryIgnored, name)
			log.Debug().Str("library", name).Msg("Library already in store, incoming copy discarded")

		case exists && overwrite:
			if err := store.Put(name, src); err != nil {
				rep.Warning("Library %s could not be moved to the store: %v", name, err)
				continue
			}
			rep.File(report.CategoryUpdated, name)
			log.Info().Str("library", name).Msg("Library updated in store")

		default:
			if err := store.Put(name, src); err != nil {
				rep.Warning("Library %s could not be moved to the store: %v", name, err)
				continue
			}
			rep.File(report.CategoryAdded, name)
			log.Info().Str("library", name).Msg("Library added to store")
		}
	}

	return nil
}

// inferVersion sets the composition's runtime version from the first
// versioned library filename; later matches are not consulted.
func inferVersion(comp *types.Composition, name string) {
	if comp.RuntimeVersion != "" {
		return
	}
	if m := libVersionRe.FindStringSubmatch(name); m != nil {
		comp.RuntimeVersion = m[1]
	}
}
