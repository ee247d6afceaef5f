// Package builder sequences the composition build pipeline: workspace
// extraction, structure validation, metadata extraction, script
// rewriting, library reconciliation and asset relocation. Each stage
// completes fully before the next begins; every failure aborts the run
// after a best-effort cleanup of the temporary workspace.
package builder

import (
	"os"
	"strings"
	"time"

	"github.com/edge-suite/edgebuild/pkg/assets"
	"github.com/edge-suite/edgebuild/pkg/composition"
	"github.com/edge-suite/edgebuild/pkg/config"
	"github.com/edge-suite/edgebuild/pkg/errors"
	"github.com/edge-suite/edgebuild/pkg/libraries"
	"github.com/edge-suite/edgebuild/pkg/logging"
	"github.com/edge-suite/edgebuild/pkg/metadata"
	"github.com/edge-suite/edgebuild/pkg/paths"
	"github.com/edge-suite/edgebuild/pkg/report"
	"github.com/edge-suite/edgebuild/pkg/rewrite"
	"github.com/edge-suite/edgebuild/pkg/types"
	"github.com/edge-suite/edgebuild/pkg/workspace"
)

// Options are the caller-supplied inputs for one pipeline run
type Options struct {
	// Archive is the path of the zipped composition export
	Archive string

	// Destination is the project subdirectory name under the projects root
	Destination string

	// Replace purges an existing project at the destination instead of
	// aborting with DEST_EXISTS
	Replace bool

	// OverwriteLibraries replaces conflicting files in the shared
	// library store instead of discarding the incoming copies
	OverwriteLibraries bool
}

// Result is the outcome of a pipeline run. Messages are collected even
// on failure so callers can surface what happened before the abort.
type Result struct {
	Success     bool               `yaml:"success"`
	ProjectDir  string             `yaml:"projectDir"`
	Composition *types.Composition `yaml:"composition,omitempty"`
	Messages    []report.Message   `yaml:"messages,omitempty"`
}

// Builder runs composition builds against a fixed set of collaborators
type Builder struct {
	fs    types.FS
	cfg   *config.Config
	paths paths.Paths
	store libraries.Store
}

// New creates a builder. The store seam lets callers decide where the
// shared library directory lives and how access to it is serialized.
func New(fsys types.FS, cfg *config.Config, p paths.Paths, store libraries.Store) *Builder {
	return &Builder{fs: fsys, cfg: cfg, paths: p, store: store}
}

// Build runs the full pipeline for one archive. The returned Result is
// non-nil even on failure and carries the report messages collected up
// to the abort.
func (b *Builder) Build(opts Options) (*Result, error) {
	log := logging.GetLogger("builder")
	defer logging.LogDuration(time.Now(), "build")

	rep := report.New()
	result := &Result{}
	fail := func(err error) (*Result, error) {
		result.Messages = rep.Messages()
		log.Error().Err(err).Str("archive", opts.Archive).Msg("Build failed")
		return result, err
	}

	if err := validateDestinationName(opts.Destination); err != nil {
		return fail(err)
	}

	// Both filesystem roots must be usable before anything else runs
	if err := workspace.EnsureWritableDir(b.fs, b.paths.BaseDir()); err != nil {
		return fail(err)
	}
	if err := workspace.EnsureWritableDir(b.fs, b.paths.ProjectsDir()); err != nil {
		return fail(err)
	}

	destDir := b.paths.ProjectDir(opts.Destination)
	result.ProjectDir = destDir
	if err := b.checkDestination(destDir, opts.Replace); err != nil {
		return fail(err)
	}

	manager := workspace.New(b.fs, b.paths.WorkspaceDir())
	run, err := manager.NewRun()
	if err != nil {
		return fail(err)
	}
	defer run.Cleanup()

	if err := run.Extract(opts.Archive); err != nil {
		return fail(err)
	}

	comp, extraEntries, err := composition.Discover(b.fs, run.Dir())
	if err != nil {
		return fail(err)
	}
	result.Composition = comp
	if len(extraEntries) > 0 {
		rep.Warning("Archive contains %d additional entry scripts; only %s was processed", len(extraEntries), comp.Name)
	}

	if err := b.extractMetadata(comp, rep); err != nil {
		return fail(err)
	}

	alteredEntry, err := rewrite.Entry(b.fs, comp)
	if err != nil {
		return fail(err)
	}
	alteredPreloader := false
	if comp.HasPreloader() {
		alteredPreloader, err = rewrite.Preloader(b.fs, comp)
		if err != nil {
			return fail(err)
		}
	}

	if err := libraries.Reconcile(b.fs, comp, b.store, opts.OverwriteLibraries, rep); err != nil {
		return fail(err)
	}

	// Last resort for the runtime version: the companion document. Only
	// consulted when neither the library filenames nor a script rewrite
	// tied the composition to a runtime.
	if comp.RuntimeVersion == "" && !alteredEntry && !alteredPreloader {
		version, err := metadata.RuntimeVersionFromCompanion(b.fs, comp)
		if err != nil {
			return fail(err)
		}
		comp.RuntimeVersion = version
	}

	if err := assets.Relocate(b.fs, comp, destDir, b.cfg); err != nil {
		return fail(err)
	}
	if err := assets.Leftovers(b.fs, comp, b.cfg, rep); err != nil {
		return fail(err)
	}

	rep.Status("Composition %s built into %s", comp.Name, destDir)
	if comp.RuntimeVersion != "" {
		rep.Status("Runtime version %s", comp.RuntimeVersion)
	}
	rep.Summarize()

	result.Success = true
	result.Messages = rep.Messages()
	log.Info().Str("project", comp.Name).Str("dest", destDir).Msg("Build succeeded")
	return result, nil
}

// extractMetadata populates dimensions and the stage identifier.
// Dimension failure is a warning; a missing stage identifier is fatal
// because the preloader rewrite is keyed on it.
func (b *Builder) extractMetadata(comp *types.Composition, rep *report.Report) error {
	data, err := b.fs.ReadFile(comp.EntryScript)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to read entry script %s", comp.EntryScript)
	}
	src := string(data)

	dims, ok := metadata.ExtractDimensions(src)
	if !ok {
		rep.Warning("Stage dimensions could not be extracted from %s", comp.Name+composition.EntrySuffix)
	}
	comp.Dimensions = dims

	stageID, err := metadata.ExtractStageID(src)
	if err != nil {
		return err
	}
	comp.StageID = stageID
	return nil
}

// checkDestination aborts or purges when a prior build occupies the
// destination, then guarantees the (possibly empty) project directory
// exists.
func (b *Builder) checkDestination(destDir string, replace bool) error {
	if _, err := b.fs.Stat(destDir); err == nil {
		if !replace {
			return errors.Newf(errors.ErrDestinationExists, "project directory %s already exists", destDir)
		}
		if err := b.fs.RemoveAll(destDir); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to purge existing project %s", destDir)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrConfigInvalid, "failed to probe destination %s", destDir)
	}

	return workspace.EnsureWritableDir(b.fs, destDir)
}

// validateDestinationName keeps the destination a plain subdirectory name
func validateDestinationName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "destination name must not be empty")
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return errors.Newf(errors.ErrInvalidInput, "destination name %q must be a plain directory name", name)
	}
	return nil
}
