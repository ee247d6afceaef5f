// Package assets moves the permitted composition files from the
// extraction tree into the final project directory, preserving their
// relative layout, and classifies whatever stays behind.
package assets

import (
	"path/filepath"
	"strings"

	"github.com/edge-suite/edgebuild/pkg/config"
	"github.com/edge-suite/edgebuild/pkg/errors"
	"github.com/edge-suite/edgebuild/pkg/filesystem"
	"github.com/edge-suite/edgebuild/pkg/logging"
	"github.com/edge-suite/edgebuild/pkg/report"
	"github.com/edge-suite/edgebuild/pkg/types"
)

// Relocate moves every file under the composition working directory
// whose extension is allow-listed into destDir, recreating the
// relative directory structure. The configured excluded subtree is
// skipped entirely: neither moved nor reported.
func Relocate(fsys types.FS, comp *types.Composition, destDir string, cfg *config.Config) error {
	log := logging.GetLogger("assets")

	moved := 0
	err := walkFiles(fsys, comp.WorkDir, comp.WorkDir, cfg.ExcludedPrefix, func(path, rel string) error {
		if !cfg.AllowsExtension(filepath.Ext(path)) {
			return nil
		}

		target := filepath.Join(destDir, rel)
		if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", target)
		}
		if err := filesystem.Move(fsys, path, target); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to move asset %s", rel)
		}
		moved++
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Str("project", comp.Name).Str("dest", destDir).Int("moved", moved).Msg("Assets relocated")
	return nil
}

// Leftovers classifies the files still in the working tree after
// relocation: the authoring tool's own project artifacts are obsolete,
// everything else is ignored. The excluded subtree stays unreported.
func Leftovers(fsys types.FS, comp *types.Composition, cfg *config.Config, rep *report.Report) error {
	obsoleteNames := map[string]bool{
		comp.Name + ".edge": true,
		comp.Name + ".html": true,
	}

	return walkFiles(fsys, comp.WorkDir, comp.WorkDir, cfg.ExcludedPrefix, func(path, rel string) error {
		if obsoleteNames[filepath.Base(path)] {
			rep.File(report.CategoryObsolete, rel)
		} else {
			rep.File(report.CategoryIgnored, rel)
		}
		return nil
	})
}

// walkFiles visits every file under dir in lexical order, passing the
// path and its root-relative form. The excluded prefix subtree is
// pruned without descending.
func walkFiles(fsys types.FS, root, dir, excludePrefix string, visit func(path, rel string) error) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to list %s", dir)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to relativize %s", path)
		}
		if excluded(rel, excludePrefix) {
			continue
		}

		if entry.IsDir() {
			if err := walkFiles(fsys, root, path, excludePrefix, visit); err != nil {
				return err
			}
			continue
		}
		if err := visit(path, rel); err != nil {
			return err
		}
	}
	return nil
}

// excluded reports whether the relative path falls under the excluded prefix
func excluded(rel, prefix string) bool {
	if prefix == "" {
		return false
	}
	return rel == prefix || strings.HasPrefix(rel, prefix+string(filepath.Separator))
}
